package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ClientConfig controls client connection setup.
type ClientConfig struct {
	Endpoint    string
	DialTimeout time.Duration
	// Dialer overrides the transport dialer (tests use bufconn).
	Dialer func(context.Context, string) (net.Conn, error)
}

// Client is a connected calculator service client.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to endpoint and waits until the channel is ready.
func Dial(ctx context.Context, cfg ClientConfig) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("grpc endpoint is empty")
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 3 * time.Second
	}

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.Dialer != nil {
		opts = append(opts, grpc.WithContextDialer(cfg.Dialer))
	}

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial calculator grpc %q: %w", endpoint, err)
	}

	readyCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := awaitReady(readyCtx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("wait for calculator grpc readiness: %w", err)
	}

	return &Client{conn: conn}, nil
}

// awaitReady leaves Idle and blocks until conn is Ready or ctx ends.
func awaitReady(ctx context.Context, conn *grpc.ClientConn) error {
	conn.Connect()
	for state := conn.GetState(); state != connectivity.Ready; state = conn.GetState() {
		if state == connectivity.Shutdown {
			return errors.New("calculator connection closed")
		}
		if !conn.WaitForStateChange(ctx, state) {
			return fmt.Errorf("calculator not ready (last state %s): %w", state, ctx.Err())
		}
	}
	return nil
}

// Press sends space-separated button labels and returns the display.
func (c *Client) Press(ctx context.Context, buttons string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, pressMethod, wrapperspb.String(buttons), out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Display returns the current display.
func (c *Client) Display(ctx context.Context) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, displayMethod, &emptypb.Empty{}, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Clear resets the remote session and returns the display.
func (c *Client) Clear(ctx context.Context) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, clearMethod, &emptypb.Empty{}, out); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Healthy reports whether the calculator service is SERVING.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return false, fmt.Errorf("health check: %w", err)
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Probe dials endpoint and runs one health check.
func Probe(ctx context.Context, cfg ClientConfig) error {
	client, err := Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ok, err := client.Healthy(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("calculator service is not serving")
	}
	return nil
}
