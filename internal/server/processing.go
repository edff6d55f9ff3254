package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/docstreamhq/docstream/constants"
	docstreamv1 "github.com/docstreamhq/docstream/gen/proto/docstream/v1"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
	"github.com/docstreamhq/docstream/internal/worker"
)

// ProcessingService implements docstream.v1.ProcessingService.
type ProcessingService struct {
	docstreamv1.UnimplementedProcessingServiceServer
	store  repository.Store
	bus    bus.Bus
	engine *worker.Engine
	logger *slog.Logger
}

func NewProcessingService(store repository.Store, b bus.Bus, engine *worker.Engine, logger *slog.Logger) *ProcessingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingService{store: store, bus: b, engine: engine, logger: logger}
}

// StartProcessing accepts a job for the given document and hands it to the
// execution engine without waiting. Calling it again while a RUNNING job
// exists returns that job's id and creates nothing.
func (s *ProcessingService) StartProcessing(ctx context.Context, req *docstreamv1.StartProcessingRequest) (*docstreamv1.StartProcessingResponse, error) {
	docIDRaw := strings.TrimSpace(req.GetDocumentId())
	if docIDRaw == "" {
		return nil, common.InvalidArgumentError("document_id is required")
	}
	ownerIDRaw := strings.TrimSpace(req.GetOwnerId())
	if ownerIDRaw == "" {
		return nil, common.InvalidArgumentError("owner_id is required")
	}
	documentID, err := uuid.Parse(docIDRaw)
	if err != nil {
		return nil, common.InvalidArgumentError("document_id must be a UUID")
	}
	ownerID, err := uuid.Parse(ownerIDRaw)
	if err != nil {
		return nil, common.InvalidArgumentError("owner_id must be a UUID")
	}

	if _, err := s.store.DocumentByID(ctx, documentID, &ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, common.NotFoundError("document not found")
		}
		s.logger.Error("document lookup failed", "document_id", documentID, "err", err)
		return nil, common.InternalError("document lookup failed")
	}

	running, err := s.store.RunningJobForDocument(ctx, documentID)
	if err != nil {
		s.logger.Error("running job lookup failed", "document_id", documentID, "err", err)
		return nil, common.InternalError("job lookup failed")
	}
	if running != nil {
		s.logger.Info("job already running, returning existing id", "document_id", documentID, "job_id", running.ID)
		return acceptedResponse(running), nil
	}

	// The upload transaction already created a PENDING job; reuse it so a
	// committed upload keeps exactly one job row. A fresh job is created
	// only when the document is re-driven after a terminal run.
	job, err := s.store.PendingJobForDocument(ctx, documentID)
	if err != nil {
		s.logger.Error("pending job lookup failed", "document_id", documentID, "err", err)
		return nil, common.InternalError("job lookup failed")
	}
	if job == nil {
		job, err = s.store.CreateJob(ctx, documentID)
		if err != nil {
			s.logger.Error("job create failed", "document_id", documentID, "err", err)
			return nil, common.InternalError("job create failed")
		}
	}

	docStatus := constants.DocumentStatusProcessing
	if err := s.store.UpdateDocument(ctx, documentID, repository.DocumentPatch{Status: &docStatus}); err != nil {
		s.logger.Error("document transition failed", "document_id", documentID, "err", err)
		return nil, common.InternalError("document transition failed")
	}

	s.engine.Start(job.ID, documentID)
	s.logger.Info("job accepted", "document_id", documentID, "job_id", job.ID)
	return acceptedResponse(job), nil
}

// ObserveProgress streams progress updates for one job until it reaches a
// terminal status. A terminal job yields a single synthetic update built
// from the stored row.
func (s *ProcessingService) ObserveProgress(req *docstreamv1.ObserveProgressRequest, stream docstreamv1.ProcessingService_ObserveProgressServer) error {
	jobID, err := uuid.Parse(strings.TrimSpace(req.GetJobId()))
	if err != nil {
		return common.InvalidArgumentError("job_id must be a UUID")
	}
	ctx := stream.Context()

	job, err := s.store.JobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return common.NotFoundError("job not found")
		}
		s.logger.Error("job lookup failed", "job_id", jobID, "err", err)
		return common.InternalError("job lookup failed")
	}

	if job.Status.Terminal() {
		return stream.Send(updateFromJob(job))
	}

	sub, err := s.bus.Subscribe(ctx, entity.ProgressChannel(jobID))
	if err != nil {
		s.logger.Error("subscribe failed", "job_id", jobID, "err", err)
		return common.InternalError("subscribe failed")
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-sub.Events():
			if !ok {
				if err := sub.Err(); err != nil {
					s.logger.Warn("subscription ended", "job_id", jobID, "err", err)
					return common.InternalError("subscription lost")
				}
				return nil
			}
			event, err := entity.DecodeProgressEvent(payload)
			if err != nil {
				s.logger.Warn("skipping malformed progress event", "job_id", jobID, "err", err)
				continue
			}
			if err := stream.Send(updateFromEvent(event)); err != nil {
				return err
			}
			if event.Status.Terminal() {
				return nil
			}
		}
	}
}

func acceptedResponse(job *entity.ProcessingJob) *docstreamv1.StartProcessingResponse {
	return &docstreamv1.StartProcessingResponse{
		JobId:      job.ID.String(),
		Status:     protoStatus(job.Status),
		AcceptedAt: timestamppb.Now(),
	}
}

func updateFromJob(job *entity.ProcessingJob) *docstreamv1.ProgressUpdate {
	update := &docstreamv1.ProgressUpdate{
		JobId:     job.ID.String(),
		Status:    protoStatus(job.Status),
		Progress:  int32(job.Progress),
		UpdatedAt: timestamppb.New(job.UpdatedAt),
	}
	if job.ErrorMessage != nil {
		update.ErrorMessage = *job.ErrorMessage
	}
	return update
}

func updateFromEvent(event entity.ProgressEvent) *docstreamv1.ProgressUpdate {
	return &docstreamv1.ProgressUpdate{
		JobId:        event.JobID.String(),
		Status:       protoStatus(event.Status),
		Progress:     int32(event.Progress),
		ErrorMessage: event.ErrorMessage,
		UpdatedAt:    timestamppb.New(event.PublishedAt),
	}
}

func protoStatus(s constants.JobStatus) docstreamv1.JobStatus {
	switch s {
	case constants.JobStatusPending:
		return docstreamv1.JobStatus_JOB_STATUS_PENDING
	case constants.JobStatusRunning:
		return docstreamv1.JobStatus_JOB_STATUS_RUNNING
	case constants.JobStatusCompleted:
		return docstreamv1.JobStatus_JOB_STATUS_COMPLETED
	case constants.JobStatusFailed:
		return docstreamv1.JobStatus_JOB_STATUS_FAILED
	default:
		return docstreamv1.JobStatus_JOB_STATUS_UNSPECIFIED
	}
}
