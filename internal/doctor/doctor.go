// Package doctor checks that the environment can host a caltwo session.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/rbright/caltwo/internal/config"
	"github.com/rbright/caltwo/internal/indicator"
	"github.com/rbright/caltwo/internal/ipc"
	"github.com/rbright/caltwo/internal/rpc"
)

var probePulse = indicator.ProbeServer

type Check struct {
	Name    string
	Pass    bool
	Message string
}

func pass(name, format string, args ...any) Check {
	return Check{Name: name, Pass: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Check {
	return Check{Name: name, Message: fmt.Sprintf(format, args...)}
}

type Report struct {
	Checks []Check
}

func (r Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// String renders one "[OK|FAIL] name: message" line per check.
func (r Report) String() string {
	lines := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		status := "OK"
		if !c.Pass {
			status = "FAIL"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", status, c.Name, c.Message))
	}
	return strings.Join(lines, "\n")
}

// Run checks the loaded config against the current environment. Sound and
// gRPC checks only run when those features are enabled.
func Run(loaded config.Loaded) Report {
	cfg := loaded.Config
	checks := []Check{
		pass("config", "loaded %q", loaded.Path),
		checkSession(),
		checkClipboard(cfg.Clipboard.Argv),
	}
	if cfg.Sound.Enable {
		checks = append(checks, checkSound())
		checks = append(checks, checkCueFiles(cfg.Sound)...)
	}
	if cfg.GRPC.Enable {
		checks = append(checks, checkGRPCListen(cfg.GRPC.Listen))
	}
	return Report{Checks: checks}
}

// checkSession reports whether the runtime socket directory is usable and
// whether a session already owns it.
func checkSession() Check {
	path, err := ipc.RuntimeSocketPath()
	if err != nil {
		return fail("session", "%v; serve and forwarding are unavailable", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	alive, _ := ipc.Probe(ctx, path, 200*time.Millisecond)
	if alive {
		return pass("session", "session running at %s", path)
	}
	return pass("session", "no session running; serve will listen at %s", path)
}

func checkClipboard(argv []string) Check {
	if len(argv) == 0 {
		return fail("clipboard_cmd", "command is empty")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fail("clipboard_cmd", "binary not found in PATH: %s", argv[0])
	}
	return pass("clipboard_cmd", "using %s", path)
}

func checkSound() Check {
	if err := probePulse(); err != nil {
		return fail("sound", "%v", err)
	}
	return pass("sound", "pulse server reachable")
}

// checkCueFiles validates configured WAV overrides and the player they need.
func checkCueFiles(cfg config.SoundConfig) []Check {
	files := []struct{ key, path string }{
		{"sound.result_file", cfg.ResultFile},
		{"sound.error_file", cfg.ErrorFile},
	}

	var checks []Check
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(indicator.ExpandHome(f.path)); err != nil {
			checks = append(checks, fail(f.key, "%v", err))
			continue
		}
		checks = append(checks, pass(f.key, "%s", f.path))
	}
	if len(checks) > 0 {
		if _, err := exec.LookPath("pw-play"); err != nil {
			checks = append(checks, fail("pw-play", "required for sound file overrides"))
		}
	}
	return checks
}

// checkGRPCListen passes when addr is free or already served by caltwo.
func checkGRPCListen(addr string) Check {
	const name = "grpc.listen"

	listener, err := net.Listen("tcp", addr)
	switch {
	case err == nil:
		_ = listener.Close()
		return pass(name, "%s is available", addr)
	case !errors.Is(err, syscall.EADDRINUSE):
		return fail(name, "%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rpc.Probe(ctx, rpc.ClientConfig{Endpoint: addr, DialTimeout: time.Second}); err != nil {
		return fail(name, "%s is in use by another process", addr)
	}
	return pass(name, "caltwo already serving at %s", addr)
}
