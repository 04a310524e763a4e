package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rbright/caltwo/internal/calc"
	"github.com/rbright/caltwo/internal/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// calculatorService adapts a session controller to CalculatorServer.
type calculatorService struct {
	controller *session.Controller
}

func (s calculatorService) Press(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	state, err := s.controller.Press(ctx, in.GetValue())
	if err != nil {
		if errors.Is(err, calc.ErrUnknownButton) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(state.Display()), nil
}

func (s calculatorService) Display(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.controller.Display()), nil
}

func (s calculatorService) Clear(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.controller.Clear(ctx).Display()), nil
}

// NewServer builds a gRPC server exposing controller plus the health service.
func NewServer(controller *session.Controller, logger *slog.Logger) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(logUnary(logger)))
	RegisterCalculatorServer(srv, calculatorService{controller: controller})

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// Serve runs srv on listener until ctx is cancelled.
func Serve(ctx context.Context, srv *grpc.Server, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		srv.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve grpc: %w", err)
		}
		return nil
	}
}

func logUnary(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)
		if logger != nil {
			logger.Debug("grpc call",
				"method", info.FullMethod,
				"code", status.Code(err).String(),
				"duration_ms", time.Since(started).Milliseconds(),
			)
		}
		return resp, err
	}
}
