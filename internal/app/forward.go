package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rbright/caltwo/internal/calc"
	"github.com/rbright/caltwo/internal/ipc"
)

const forwardTimeout = 220 * time.Millisecond

var errNoSession = errors.New("no active caltwo session")

func ipcPress(buttons []string) ipc.Request {
	return ipc.Request{Command: ipc.CommandPress, Buttons: buttons}
}

// forward sends req to the session owner. handled is false when no owner is
// reachable, in which case the caller may fall back to local behavior.
func forward(ctx context.Context, req ipc.Request) (ipc.Response, bool, error) {
	socketPath, err := ipc.RuntimeSocketPath()
	if err != nil {
		return ipc.Response{}, false, nil
	}
	return tryForward(ctx, socketPath, req)
}

func tryForward(ctx context.Context, socketPath string, req ipc.Request) (ipc.Response, bool, error) {
	resp, err := ipc.Send(ctx, socketPath, req, forwardTimeout)
	switch {
	case err == nil && resp.OK:
		return resp, true, nil
	case err == nil:
		return resp, true, errors.New(resp.Error)
	case ipc.Unreachable(err):
		return ipc.Response{}, false, nil
	default:
		return ipc.Response{}, true, fmt.Errorf("forward command %q: %w", req.Command, err)
	}
}

// currentDisplay reads the live session display, or the identity display
// when no session owns the socket.
func (r Runner) currentDisplay(ctx context.Context) (string, error) {
	resp, handled, err := forward(ctx, ipc.Request{Command: ipc.CommandStatus})
	switch {
	case !handled || (err == nil && resp.Display == ""):
		return calc.New().Display(), nil
	case err != nil:
		return "", err
	default:
		return resp.Display, nil
	}
}

// forwardOrFail runs a command that only makes sense against a live session.
func (r Runner) forwardOrFail(ctx context.Context, command string) int {
	if _, err := ipc.RuntimeSocketPath(); err != nil {
		return r.fail(err)
	}

	resp, handled, err := forward(ctx, ipc.Request{Command: command})
	switch {
	case !handled:
		return r.fail(errNoSession)
	case err != nil:
		return r.fail(err)
	}
	if resp.Message != "" {
		fmt.Fprintln(r.Stdout, resp.Message)
	}
	return exitOK
}
