package grpc

import (
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ReportingServiceName = "internship.reporting.v1.Reporting"

// ReportingServer is the read-only reporting API. Messages are well-known
// types so no generated code is needed.
type ReportingServer interface {
	Overview(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	TableSample(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RunQuery(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var ReportingServiceDesc = gogrpc.ServiceDesc{
	ServiceName: ReportingServiceName,
	HandlerType: (*ReportingServer)(nil),
	Methods: []gogrpc.MethodDesc{
		{MethodName: "Overview", Handler: overviewHandler},
		{MethodName: "TableSample", Handler: tableSampleHandler},
		{MethodName: "RunQuery", Handler: runQueryHandler},
	},
	Streams:  []gogrpc.StreamDesc{},
	Metadata: "internship/reporting/v1/reporting.proto",
}

func RegisterReportingServer(s gogrpc.ServiceRegistrar, srv ReportingServer) {
	s.RegisterService(&ReportingServiceDesc, srv)
}

func overviewHandler(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportingServer).Overview(ctx, in)
	}
	info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ReportingServiceName + "/Overview"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(ReportingServer).Overview(ctx, req.(*emptypb.Empty))
	})
}

func tableSampleHandler(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportingServer).TableSample(ctx, in)
	}
	info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ReportingServiceName + "/TableSample"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(ReportingServer).TableSample(ctx, req.(*structpb.Struct))
	})
}

func runQueryHandler(srv any, ctx context.Context, dec func(any) error, interceptor gogrpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReportingServer).RunQuery(ctx, in)
	}
	info := &gogrpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ReportingServiceName + "/RunQuery"}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return srv.(ReportingServer).RunQuery(ctx, req.(*structpb.Struct))
	})
}

// ReportingClient calls a ReportingServer over cc.
type ReportingClient struct {
	cc gogrpc.ClientConnInterface
}

func NewReportingClient(cc gogrpc.ClientConnInterface) *ReportingClient {
	return &ReportingClient{cc: cc}
}

func (c *ReportingClient) Overview(ctx context.Context, in *emptypb.Empty, opts ...gogrpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ReportingServiceName+"/Overview", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReportingClient) TableSample(ctx context.Context, in *structpb.Struct, opts ...gogrpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ReportingServiceName+"/TableSample", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReportingClient) RunQuery(ctx context.Context, in *structpb.Struct, opts ...gogrpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ReportingServiceName+"/RunQuery", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
