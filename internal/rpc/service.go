// Package rpc exposes a calculator session over gRPC.
//
// Messages are protobuf well-known wrapper types, so the service needs no
// generated code beyond what ships with google.golang.org/protobuf.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "caltwo.v1.Calculator"

	pressMethod   = "/" + ServiceName + "/Press"
	displayMethod = "/" + ServiceName + "/Display"
	clearMethod   = "/" + ServiceName + "/Clear"
)

// CalculatorServer is the server API for the calculator service.
type CalculatorServer interface {
	// Press applies space-separated button labels and returns the display.
	Press(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Display(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Clear(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// RegisterCalculatorServer attaches srv to a gRPC service registrar.
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Press", Handler: pressHandler},
		{MethodName: "Display", Handler: displayHandler},
		{MethodName: "Clear", Handler: clearHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "caltwo/v1/calculator.proto",
}

func pressHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Press(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: pressMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServer).Press(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func displayHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Display(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: displayMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServer).Display(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func clearHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Clear(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: clearMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalculatorServer).Clear(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
