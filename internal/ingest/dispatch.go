package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	docstreamv1 "github.com/docstreamhq/docstream/gen/proto/docstream/v1"
)

// GRPCDispatcher dispatches uploads to the worker's ProcessingService.
type GRPCDispatcher struct {
	client docstreamv1.ProcessingServiceClient
}

// DialWorker opens the client connection docstreamd uses for dispatch.
// The worker lives on the same trusted network segment, hence insecure
// transport credentials.
func DialWorker(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func NewGRPCDispatcher(conn *grpc.ClientConn) *GRPCDispatcher {
	return &GRPCDispatcher{client: docstreamv1.NewProcessingServiceClient(conn)}
}

func (d *GRPCDispatcher) StartProcessing(ctx context.Context, req DispatchRequest) (uuid.UUID, error) {
	resp, err := d.client.StartProcessing(ctx, &docstreamv1.StartProcessingRequest{
		DocumentId: req.DocumentID.String(),
		OwnerId:    req.OwnerID.String(),
		StorageKey: req.StorageKey,
		MimeType:   req.MimeType,
	})
	if err != nil {
		return uuid.Nil, err
	}
	jobID, err := uuid.Parse(resp.GetJobId())
	if err != nil {
		return uuid.Nil, fmt.Errorf("worker returned invalid job id %q: %w", resp.GetJobId(), err)
	}
	return jobID, nil
}
