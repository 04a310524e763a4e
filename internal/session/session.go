// Package session owns the live calculator state shared by every front end.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rbright/caltwo/internal/calc"
	"github.com/rbright/caltwo/internal/ipc"
)

// Result is the lifecycle summary returned by one Run invocation.
type Result struct {
	Display    string
	Phase      calc.Phase
	Presses    int
	StartedAt  time.Time
	FinishedAt time.Time
	Err        error
}

// Indicator is the session-facing subset of cue behavior.
type Indicator interface {
	CueKey(context.Context)
	CueResult(context.Context)
	CueError(context.Context)
	CueClear(context.Context)
}

// noopIndicator preserves session flow when no indicator is wired.
type noopIndicator struct{}

func (noopIndicator) CueKey(context.Context)    {}
func (noopIndicator) CueResult(context.Context) {}
func (noopIndicator) CueError(context.Context)  {}
func (noopIndicator) CueClear(context.Context)  {}

// Controller serializes button presses against one calculator state.
type Controller struct {
	logger    *slog.Logger
	indicator Indicator

	mu      sync.RWMutex
	state   calc.State
	presses int

	stop     chan struct{}
	stopOnce sync.Once
}

// NewController constructs a controller at the identity state.
func NewController(logger *slog.Logger, indicator Indicator) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if indicator == nil {
		indicator = noopIndicator{}
	}

	return &Controller{
		logger:    logger,
		indicator: indicator,
		state:     calc.New(),
		stop:      make(chan struct{}),
	}
}

// Snapshot returns the current calculator state.
func (c *Controller) Snapshot() calc.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Display returns the current display text.
func (c *Controller) Display() string {
	return c.Snapshot().Display()
}

// Apply runs events through the engine in order and returns the final state.
func (c *Controller) Apply(ctx context.Context, events ...calc.Event) calc.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range events {
		c.applyLocked(ctx, e)
	}
	return c.state
}

// Press parses and applies button labels in order as one unit; no other
// request interleaves. It stops at the first unknown label and presses
// before it stay applied.
func (c *Controller) Press(ctx context.Context, labels ...string) (calc.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, arg := range labels {
		for _, label := range strings.Fields(arg) {
			e, err := calc.ParseButton(label)
			if err != nil {
				return c.state, err
			}
			c.applyLocked(ctx, e)
		}
	}
	return c.state, nil
}

// applyLocked transitions the state by one event. c.mu must be held.
func (c *Controller) applyLocked(ctx context.Context, e calc.Event) {
	prev := c.state
	next := calc.Transition(prev, e)
	c.state = next
	c.presses++

	c.cue(ctx, prev, next, e)
	c.logger.Debug("button",
		"label", calc.Label(e),
		"display", next.Display(),
		"phase", next.Phase(),
	)
	if next.Err() && !prev.Err() {
		c.logger.Info("evaluation failed", "display", prev.Display())
	}
}

// Clear resets to the identity state.
func (c *Controller) Clear(ctx context.Context) calc.State {
	return c.Apply(ctx, calc.Clear{})
}

// RequestStop asks Run to return. It reports false when already requested.
func (c *Controller) RequestStop() bool {
	requested := false
	c.stopOnce.Do(func() {
		close(c.stop)
		requested = true
	})
	return requested
}

// Run blocks until a stop is requested or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) Result {
	result := Result{StartedAt: time.Now()}

	select {
	case <-ctx.Done():
		result.Err = ctx.Err()
	case <-c.stop:
	}

	c.mu.RLock()
	result.Display = c.state.Display()
	result.Phase = c.state.Phase()
	result.Presses = c.presses
	c.mu.RUnlock()

	result.FinishedAt = time.Now()
	return result
}

// Handle serves IPC commands for the active owner session.
func (c *Controller) Handle(ctx context.Context, req ipc.Request) ipc.Response {
	switch req.Command {
	case ipc.CommandStatus:
		return respond(c.Snapshot(), "status")
	case ipc.CommandPress:
		if len(req.Buttons) == 0 {
			return ipc.Response{OK: false, Display: c.Display(), Error: "press requires at least one button"}
		}
		state, err := c.Press(ctx, req.Buttons...)
		if err != nil {
			resp := respond(state, "")
			resp.OK = false
			resp.Error = err.Error()
			return resp
		}
		return respond(state, "")
	case ipc.CommandClear:
		return respond(c.Clear(ctx), "cleared")
	case ipc.CommandStop:
		if c.RequestStop() {
			return respond(c.Snapshot(), "stop requested")
		}
		return respond(c.Snapshot(), "stop already requested")
	default:
		return ipc.Response{OK: false, State: string(c.Snapshot().Phase()), Error: fmt.Sprintf("unknown command: %s", req.Command)}
	}
}

func respond(state calc.State, message string) ipc.Response {
	return ipc.Response{
		OK:      true,
		State:   string(state.Phase()),
		Display: state.Display(),
		Message: message,
	}
}

// cue picks the audio cue for one transition.
func (c *Controller) cue(ctx context.Context, prev, next calc.State, e calc.Event) {
	if next.Err() && !prev.Err() {
		c.indicator.CueError(ctx)
		return
	}

	_, _, pending := prev.Pending()
	switch e.(type) {
	case calc.Clear:
		c.indicator.CueClear(ctx)
	case calc.Equals:
		if pending && !prev.Err() {
			c.indicator.CueResult(ctx)
			return
		}
		c.indicator.CueKey(ctx)
	case calc.Press:
		if pending && !prev.AwaitingOperand() && !prev.Err() {
			c.indicator.CueResult(ctx)
			return
		}
		c.indicator.CueKey(ctx)
	default:
		c.indicator.CueKey(ctx)
	}
}
