package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/rbright/caltwo/internal/indicator"
	"github.com/rbright/caltwo/internal/ipc"
	"github.com/rbright/caltwo/internal/rpc"
	"github.com/rbright/caltwo/internal/session"
)

// serve owns the session socket and, when enabled, the gRPC listener until a
// stop request or ctx cancellation. The final display goes to stdout.
func (r Runner) serve(ctx context.Context, e env) int {
	cfg := e.loaded.Config

	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		return r.fail(err)
	}
	listener, err := ipc.Acquire(ctx, socketPath, ipc.AcquireOptions{ProbeTimeout: 180 * time.Millisecond, Retries: 8})
	if err != nil {
		return r.fail(err)
	}
	defer func() {
		_ = listener.Close()
		_ = os.Remove(socketPath)
	}()

	var grpcListener net.Listener
	if cfg.GRPC.Enable {
		grpcListener, err = net.Listen("tcp", cfg.GRPC.Listen)
		if err != nil {
			return r.fail(fmt.Errorf("listen grpc %s: %w", cfg.GRPC.Listen, err))
		}
		e.logger.Info("grpc listening", "addr", grpcListener.Addr().String())
	}

	sound := indicator.NewSound(cfg.Sound, e.logger)
	defer sound.Wait()
	controller := session.NewController(e.logger, sound)

	serverCtx, stopServers := context.WithCancel(ctx)
	defer stopServers()

	errs := make(chan error, 2)
	servers := 1
	go func() {
		if err := ipc.Serve(serverCtx, listener, controller); err != nil {
			errs <- fmt.Errorf("ipc server failed: %w", err)
			return
		}
		errs <- nil
	}()
	if grpcListener != nil {
		servers++
		srv := rpc.NewServer(controller, e.logger)
		go func() {
			if err := rpc.Serve(serverCtx, srv, grpcListener); err != nil {
				errs <- fmt.Errorf("grpc server failed: %w", err)
				return
			}
			errs <- nil
		}()
	}

	result := controller.Run(ctx)
	stopServers()

	var serveErr error
	for range servers {
		serveErr = errors.Join(serveErr, <-errs)
	}
	logSessionResult(e.logger, result)
	if serveErr != nil {
		return r.fail(serveErr)
	}

	fmt.Fprintln(r.Stdout, result.Display)
	return exitOK
}

func logSessionResult(logger *slog.Logger, result session.Result) {
	if logger == nil {
		return
	}
	fields := []any{
		"phase", result.Phase,
		"display", result.Display,
		"presses", result.Presses,
		"started_at", result.StartedAt.Format(time.RFC3339Nano),
		"finished_at", result.FinishedAt.Format(time.RFC3339Nano),
		"duration_ms", result.FinishedAt.Sub(result.StartedAt).Milliseconds(),
	}

	if result.Err != nil && !errors.Is(result.Err, context.Canceled) {
		logger.Error("session failed", append(fields, "error", result.Err.Error())...)
		return
	}
	logger.Info("session complete", fields...)
}
