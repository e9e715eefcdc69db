// Package wearpb describes the wear.v1.WearService gRPC service. Requests
// and responses are google.protobuf.Struct documents.
package wearpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "wear.v1.WearService"

const (
	WearService_ListEquipment_FullMethodName      = "/wear.v1.WearService/ListEquipment"
	WearService_GetEquipmentStatus_FullMethodName = "/wear.v1.WearService/GetEquipmentStatus"
	WearService_GetPartStatus_FullMethodName      = "/wear.v1.WearService/GetPartStatus"
	WearService_RecordUsage_FullMethodName        = "/wear.v1.WearService/RecordUsage"
	WearService_RecordShift_FullMethodName        = "/wear.v1.WearService/RecordShift"
	WearService_SetLimiter_FullMethodName         = "/wear.v1.WearService/SetLimiter"
)

type WearServiceServer interface {
	ListEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEquipmentStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPartStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordUsage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordShift(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedWearServiceServer must be embedded to have forward compatible implementations.
type UnimplementedWearServiceServer struct{}

func (UnimplementedWearServiceServer) ListEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListEquipment not implemented")
}
func (UnimplementedWearServiceServer) GetEquipmentStatus(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetEquipmentStatus not implemented")
}
func (UnimplementedWearServiceServer) GetPartStatus(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPartStatus not implemented")
}
func (UnimplementedWearServiceServer) RecordUsage(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordUsage not implemented")
}
func (UnimplementedWearServiceServer) RecordShift(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordShift not implemented")
}
func (UnimplementedWearServiceServer) SetLimiter(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetLimiter not implemented")
}

func RegisterWearServiceServer(s grpc.ServiceRegistrar, srv WearServiceServer) {
	s.RegisterService(&WearService_ServiceDesc, srv)
}

type unaryCall func(WearServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(WearServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(WearServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var WearService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WearServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListEquipment",
			Handler:    unaryHandler(WearService_ListEquipment_FullMethodName, WearServiceServer.ListEquipment),
		},
		{
			MethodName: "GetEquipmentStatus",
			Handler:    unaryHandler(WearService_GetEquipmentStatus_FullMethodName, WearServiceServer.GetEquipmentStatus),
		},
		{
			MethodName: "GetPartStatus",
			Handler:    unaryHandler(WearService_GetPartStatus_FullMethodName, WearServiceServer.GetPartStatus),
		},
		{
			MethodName: "RecordUsage",
			Handler:    unaryHandler(WearService_RecordUsage_FullMethodName, WearServiceServer.RecordUsage),
		},
		{
			MethodName: "RecordShift",
			Handler:    unaryHandler(WearService_RecordShift_FullMethodName, WearServiceServer.RecordShift),
		},
		{
			MethodName: "SetLimiter",
			Handler:    unaryHandler(WearService_SetLimiter_FullMethodName, WearServiceServer.SetLimiter),
		},
	},
	Streams: []grpc.StreamDesc{},
}

type WearServiceClient interface {
	ListEquipment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEquipmentStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPartStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RecordUsage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RecordShift(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type wearServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWearServiceClient(cc grpc.ClientConnInterface) WearServiceClient {
	return &wearServiceClient{cc}
}

func (c *wearServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *wearServiceClient) ListEquipment(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_ListEquipment_FullMethodName, in, opts...)
}

func (c *wearServiceClient) GetEquipmentStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_GetEquipmentStatus_FullMethodName, in, opts...)
}

func (c *wearServiceClient) GetPartStatus(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_GetPartStatus_FullMethodName, in, opts...)
}

func (c *wearServiceClient) RecordUsage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_RecordUsage_FullMethodName, in, opts...)
}

func (c *wearServiceClient) RecordShift(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_RecordShift_FullMethodName, in, opts...)
}

func (c *wearServiceClient) SetLimiter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WearService_SetLimiter_FullMethodName, in, opts...)
}
