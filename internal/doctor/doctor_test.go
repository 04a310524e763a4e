package doctor

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/rbright/caltwo/internal/config"
	"github.com/rbright/caltwo/internal/ipc"
	"github.com/rbright/caltwo/internal/rpc"
	"github.com/rbright/caltwo/internal/session"
	"github.com/stretchr/testify/require"
)

func TestReportRendering(t *testing.T) {
	report := Report{Checks: []Check{
		pass("config", "loaded %q", "/x.jsonc"),
		fail("sound", "refused"),
	}}

	require.False(t, report.OK())
	require.Equal(t, "[OK] config: loaded \"/x.jsonc\"\n[FAIL] sound: refused", report.String())
	require.True(t, Report{}.OK())
}

func TestCheckClipboard(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fake-copy"), []byte("#!/bin/sh\nexit 0\n"), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	tests := []struct {
		name string
		argv []string
		pass bool
		text string
	}{
		{name: "empty", argv: nil, text: "command is empty"},
		{name: "missing", argv: []string{"definitely-not-a-real-binary"}, text: "binary not found"},
		{name: "found", argv: []string{"fake-copy", "--trim"}, pass: true, text: filepath.Join(dir, "fake-copy")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			check := checkClipboard(tc.argv)
			require.Equal(t, tc.pass, check.Pass)
			require.Contains(t, check.Message, tc.text)
		})
	}
}

func TestCheckSession(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	require.False(t, checkSession().Pass)

	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	check := checkSession()
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "no session running")

	listener, err := net.Listen("unix", filepath.Join(runtimeDir, ipc.SocketName))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ipc.Serve(ctx, listener, session.NewController(nil, nil)) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	check = checkSession()
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "session running")
}

func stubPulse(t *testing.T, err error) {
	t.Helper()
	original := probePulse
	probePulse = func() error { return err }
	t.Cleanup(func() { probePulse = original })
}

func TestCheckSound(t *testing.T) {
	stubPulse(t, nil)
	require.True(t, checkSound().Pass)

	stubPulse(t, errors.New("connect pulse server: refused"))
	check := checkSound()
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "refused")
}

func TestCheckCueFiles(t *testing.T) {
	require.Empty(t, checkCueFiles(config.SoundConfig{}))

	dir := t.TempDir()
	wav := filepath.Join(dir, "done.wav")
	require.NoError(t, os.WriteFile(wav, []byte("RIFF"), 0o600))

	checks := checkCueFiles(config.SoundConfig{
		ResultFile: wav,
		ErrorFile:  filepath.Join(dir, "missing.wav"),
	})
	require.GreaterOrEqual(t, len(checks), 2)
	require.Equal(t, "sound.result_file", checks[0].Name)
	require.True(t, checks[0].Pass)
	require.Equal(t, "sound.error_file", checks[1].Name)
	require.False(t, checks[1].Pass)
}

func TestCheckGRPCListen(t *testing.T) {
	check := checkGRPCListen("127.0.0.1:0")
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "available")

	foreign, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = foreign.Close() })
	check = checkGRPCListen(foreign.Addr().String())
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "in use")
}

func TestCheckGRPCListenAlreadyServedByCaltwo(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rpc.Serve(ctx, rpc.NewServer(session.NewController(nil, nil), nil), listener) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	check := checkGRPCListen(listener.Addr().String())
	require.True(t, check.Pass)
	require.Contains(t, check.Message, "already serving")
}

func TestRunSkipsDisabledChecks(t *testing.T) {
	stubPulse(t, nil)
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := config.Default()
	cfg.Clipboard = config.CommandConfig{Raw: "sh", Argv: []string{"sh"}}
	cfg.Sound.Enable = false
	cfg.GRPC.Enable = false

	report := Run(config.Loaded{Path: "/tmp/caltwo.jsonc", Config: cfg})
	require.True(t, report.OK(), report.String())
	require.Len(t, report.Checks, 3)

	cfg.Sound.Enable = true
	report = Run(config.Loaded{Path: "/tmp/caltwo.jsonc", Config: cfg})
	require.Len(t, report.Checks, 4)
	require.Contains(t, report.String(), "[OK] sound: pulse server reachable")
}
