package relay

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "walkbuddy.v1.PanicRelay"

	sendAlertMethod    = "/" + ServiceName + "/SendAlert"
	getLastAlertMethod = "/" + ServiceName + "/GetLastAlert"
)

// PanicRelayServer is the server API of the PanicRelay service.
type PanicRelayServer interface {
	SendAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetLastAlert(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterPanicRelayServer registers srv on the gRPC server.
func RegisterPanicRelayServer(registrar grpc.ServiceRegistrar, srv PanicRelayServer) {
	registrar.RegisterService(&panicRelayServiceDesc, srv)
}

//nolint:gochecknoglobals // gRPC service descriptors are package-level by convention.
var panicRelayServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PanicRelayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendAlert",
			Handler:    sendAlertHandler,
		},
		{
			MethodName: "GetLastAlert",
			Handler:    getLastAlertHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "walkbuddy/v1/relay.proto",
}

func sendAlertHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(PanicRelayServer).SendAlert(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: sendAlertMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PanicRelayServer).SendAlert(ctx, req.(*structpb.Struct)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

func getLastAlertHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(PanicRelayServer).GetLastAlert(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getLastAlertMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PanicRelayServer).GetLastAlert(ctx, req.(*emptypb.Empty)) //nolint:forcetypeassert // Same as above.
	}

	return interceptor(ctx, in, info, handler)
}

// PanicRelayClient is the client API of the PanicRelay service.
type PanicRelayClient struct {
	// cc is the underlying connection.
	cc grpc.ClientConnInterface
}

// NewPanicRelayClient returns a client stub using cc.
func NewPanicRelayClient(cc grpc.ClientConnInterface) *PanicRelayClient {
	return &PanicRelayClient{
		cc: cc,
	}
}

// SendAlert invokes PanicRelay.SendAlert.
func (c *PanicRelayClient) SendAlert(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, sendAlertMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// GetLastAlert invokes PanicRelay.GetLastAlert.
func (c *PanicRelayClient) GetLastAlert(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getLastAlertMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
