// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.2
// - protoc             (unknown)
// source: docstream/v1/worker.proto

package docstreamv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	ProcessingService_StartProcessing_FullMethodName = "/docstream.v1.ProcessingService/StartProcessing"
	ProcessingService_ObserveProgress_FullMethodName = "/docstream.v1.ProcessingService/ObserveProgress"
)

// ProcessingServiceClient is the client API for ProcessingService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// ProcessingService is the worker-side surface. StartProcessing accepts a
// job and returns immediately; the execution engine runs it in the
// background. ObserveProgress forwards live progress until the job is
// terminal.
type ProcessingServiceClient interface {
	StartProcessing(ctx context.Context, in *StartProcessingRequest, opts ...grpc.CallOption) (*StartProcessingResponse, error)
	ObserveProgress(ctx context.Context, in *ObserveProgressRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProgressUpdate], error)
}

type processingServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProcessingServiceClient(cc grpc.ClientConnInterface) ProcessingServiceClient {
	return &processingServiceClient{cc}
}

func (c *processingServiceClient) StartProcessing(ctx context.Context, in *StartProcessingRequest, opts ...grpc.CallOption) (*StartProcessingResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(StartProcessingResponse)
	err := c.cc.Invoke(ctx, ProcessingService_StartProcessing_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *processingServiceClient) ObserveProgress(ctx context.Context, in *ObserveProgressRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProgressUpdate], error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	stream, err := c.cc.NewStream(ctx, &ProcessingService_ServiceDesc.Streams[0], ProcessingService_ObserveProgress_FullMethodName, cOpts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ObserveProgressRequest, ProgressUpdate]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type ProcessingService_ObserveProgressClient = grpc.ServerStreamingClient[ProgressUpdate]

// ProcessingServiceServer is the server API for ProcessingService service.
// All implementations must embed UnimplementedProcessingServiceServer
// for forward compatibility.
//
// ProcessingService is the worker-side surface. StartProcessing accepts a
// job and returns immediately; the execution engine runs it in the
// background. ObserveProgress forwards live progress until the job is
// terminal.
type ProcessingServiceServer interface {
	StartProcessing(context.Context, *StartProcessingRequest) (*StartProcessingResponse, error)
	ObserveProgress(*ObserveProgressRequest, grpc.ServerStreamingServer[ProgressUpdate]) error
	mustEmbedUnimplementedProcessingServiceServer()
}

// UnimplementedProcessingServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedProcessingServiceServer struct{}

func (UnimplementedProcessingServiceServer) StartProcessing(context.Context, *StartProcessingRequest) (*StartProcessingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartProcessing not implemented")
}
func (UnimplementedProcessingServiceServer) ObserveProgress(*ObserveProgressRequest, grpc.ServerStreamingServer[ProgressUpdate]) error {
	return status.Error(codes.Unimplemented, "method ObserveProgress not implemented")
}
func (UnimplementedProcessingServiceServer) mustEmbedUnimplementedProcessingServiceServer() {}
func (UnimplementedProcessingServiceServer) testEmbeddedByValue()                           {}

// UnsafeProcessingServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to ProcessingServiceServer will
// result in compilation errors.
type UnsafeProcessingServiceServer interface {
	mustEmbedUnimplementedProcessingServiceServer()
}

func RegisterProcessingServiceServer(s grpc.ServiceRegistrar, srv ProcessingServiceServer) {
	// If the following call panics, it indicates UnimplementedProcessingServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&ProcessingService_ServiceDesc, srv)
}

func _ProcessingService_StartProcessing_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StartProcessingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProcessingServiceServer).StartProcessing(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ProcessingService_StartProcessing_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProcessingServiceServer).StartProcessing(ctx, req.(*StartProcessingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ProcessingService_ObserveProgress_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ObserveProgressRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ProcessingServiceServer).ObserveProgress(m, &grpc.GenericServerStream[ObserveProgressRequest, ProgressUpdate]{ServerStream: stream})
}

// This type alias is provided for backwards compatibility with existing code that references the prior non-generic stream type by name.
type ProcessingService_ObserveProgressServer = grpc.ServerStreamingServer[ProgressUpdate]

// ProcessingService_ServiceDesc is the grpc.ServiceDesc for ProcessingService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var ProcessingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "docstream.v1.ProcessingService",
	HandlerType: (*ProcessingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartProcessing",
			Handler:    _ProcessingService_StartProcessing_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ObserveProgress",
			Handler:       _ProcessingService_ObserveProgress_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "docstream/v1/worker.proto",
}
