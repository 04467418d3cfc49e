package grpc

// proto.go hand-writes the service descriptor for fraudalert.v1.FraudDetectionService.
// Messages are plain Go structs carried by the JSON codec in codec.go.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Full method names, used by interceptors and clients.
const (
	ServiceName             = "fraudalert.v1.FraudDetectionService"
	AnalyzeTextFullMethod   = "/" + ServiceName + "/AnalyzeText"
	GetAssessmentFullMethod = "/" + ServiceName + "/GetAssessment"
)

// FraudDetectionServiceServer is the server API for FraudDetectionService.
type FraudDetectionServiceServer interface {
	AnalyzeText(context.Context, *AnalyzeTextRequest) (*AnalyzeTextResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	mustEmbedUnimplementedFraudDetectionServiceServer()
}

// UnimplementedFraudDetectionServiceServer provides forward-compatible default implementations.
type UnimplementedFraudDetectionServiceServer struct{}

func (UnimplementedFraudDetectionServiceServer) AnalyzeText(context.Context, *AnalyzeTextRequest) (*AnalyzeTextResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeText not implemented")
}
func (UnimplementedFraudDetectionServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedFraudDetectionServiceServer) mustEmbedUnimplementedFraudDetectionServiceServer() {}

// RegisterFraudDetectionServiceServer registers srv with the gRPC server.
func RegisterFraudDetectionServiceServer(s grpclib.ServiceRegistrar, srv FraudDetectionServiceServer) {
	s.RegisterService(&fraudDetectionServiceDesc, srv)
}

var fraudDetectionServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FraudDetectionServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AnalyzeText", Handler: analyzeTextHandler},
		{MethodName: "GetAssessment", Handler: getAssessmentHandler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "fraudalert/v1/fraud_detection.proto",
}

func analyzeTextHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(AnalyzeTextRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FraudDetectionServiceServer).AnalyzeText(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: AnalyzeTextFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FraudDetectionServiceServer).AnalyzeText(ctx, req.(*AnalyzeTextRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func getAssessmentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FraudDetectionServiceServer).GetAssessment(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: GetAssessmentFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FraudDetectionServiceServer).GetAssessment(ctx, req.(*GetAssessmentRequest))
	}
	return interceptor(ctx, req, info, handler)
}
