// Package app wires parsed CLI commands to the calculator runtime.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rbright/caltwo/internal/calc"
	"github.com/rbright/caltwo/internal/cli"
	"github.com/rbright/caltwo/internal/config"
	"github.com/rbright/caltwo/internal/doctor"
	"github.com/rbright/caltwo/internal/logging"
	"github.com/rbright/caltwo/internal/mcptool"
	"github.com/rbright/caltwo/internal/output"
	"github.com/rbright/caltwo/internal/session"
	"github.com/rbright/caltwo/internal/version"
)

const binaryName = "caltwo"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// env is the per-invocation runtime shared by command handlers.
type env struct {
	loaded config.Loaded
	logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	switch {
	case err != nil:
		fmt.Fprintf(r.Stderr, "error: %v\n\n%s", err, cli.HelpText(binaryName))
		return exitUsage
	case parsed.ShowHelp:
		fmt.Fprint(r.Stdout, cli.HelpText(binaryName))
		return exitOK
	case parsed.Command == cli.CommandVersion:
		fmt.Fprintln(r.Stdout, version.String())
		return exitOK
	}

	logRuntime, err := logging.New()
	if err != nil {
		return r.fail(fmt.Errorf("setup logging: %w", err))
	}
	defer func() { _ = logRuntime.Close() }()

	e := env{logger: r.Logger}
	if e.logger == nil {
		e.logger = logRuntime.Logger
	}

	e.loaded, err = config.Load(parsed.ConfigPath)
	if err != nil {
		e.logger.Error("load config failed", "error", err.Error())
		return r.fail(err)
	}
	// mcp owns stdout and stderr is often surfaced by the host; warnings go
	// to the log only there.
	r.reportWarnings(e, parsed.Command != cli.CommandMCP)
	if level, err := config.ParseLevel(e.loaded.Config.Log.Level); err == nil {
		logRuntime.Level.Set(level)
	}

	e.logger.Info("command start",
		"command", parsed.Command,
		"config", e.loaded.Path,
		"log", logRuntime.Path,
	)
	return r.dispatch(ctx, parsed, e)
}

func (r Runner) dispatch(ctx context.Context, parsed cli.Parsed, e env) int {
	switch parsed.Command {
	case cli.CommandServe:
		return r.serve(ctx, e)
	case cli.CommandPress:
		return r.press(ctx, parsed.Buttons)
	case cli.CommandDisplay:
		display, err := r.currentDisplay(ctx)
		if err != nil {
			return r.fail(err)
		}
		fmt.Fprintln(r.Stdout, display)
		return exitOK
	case cli.CommandClear, cli.CommandStop:
		return r.forwardOrFail(ctx, string(parsed.Command))
	case cli.CommandCopy:
		return r.copyDisplay(ctx, e)
	case cli.CommandMCP:
		return r.mcp(e)
	case cli.CommandDoctor:
		report := doctor.Run(e.loaded)
		fmt.Fprintln(r.Stdout, report.String())
		if !report.OK() {
			return exitFailure
		}
		return exitOK
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return exitUsage
	}
}

func (r Runner) reportWarnings(e env, toStderr bool) {
	for _, w := range e.loaded.Warnings {
		e.logger.Warn("config warning", "line", w.Line, "message", w.Message)
		if !toStderr {
			continue
		}
		if w.Line > 0 {
			fmt.Fprintf(r.Stderr, "warning: line %d: %s\n", w.Line, w.Message)
		} else {
			fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		}
	}
}

// press sends buttons to the live session, or evaluates them from the
// identity state when no session owns the socket. Unknown labels are a usage
// error either way and nothing is pressed.
func (r Runner) press(ctx context.Context, buttons []string) int {
	events, err := calc.ParseButtons(buttons)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return exitUsage
	}

	resp, handled, err := forward(ctx, ipcPress(buttons))
	switch {
	case !handled:
		fmt.Fprintln(r.Stdout, calc.Replay(events...).Display())
		return exitOK
	case err != nil:
		return r.fail(err)
	}
	fmt.Fprintln(r.Stdout, resp.Display)
	return exitOK
}

func (r Runner) copyDisplay(ctx context.Context, e env) int {
	display, err := r.currentDisplay(ctx)
	if err != nil {
		return r.fail(err)
	}
	if err := output.NewCopier(e.loaded.Config, e.logger).Copy(ctx, display); err != nil {
		return r.fail(err)
	}
	fmt.Fprintln(r.Stdout, display)
	return exitOK
}

// mcp serves a private in-process session over stdio.
func (r Runner) mcp(e env) int {
	controller := session.NewController(e.logger, nil)
	if err := mcptool.Serve(mcptool.NewServer(binaryName, version.Version, controller)); err != nil {
		e.logger.Error("mcp server failed", "error", err.Error())
		return r.fail(err)
	}
	return exitOK
}

func (r Runner) fail(err error) int {
	fmt.Fprintf(r.Stderr, "error: %v\n", err)
	return exitFailure
}
