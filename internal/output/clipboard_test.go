package output

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rbright/caltwo/internal/config"
	"github.com/stretchr/testify/require"
)

func TestCopierCopy(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "clipboard.txt")
	failing := writeScript(t, dir, "fail.sh", "echo 'no display server' >&2\nexit 3\n")

	tests := []struct {
		name    string
		argv    []string
		display string
		want    string
		errIs   error
		errText string
	}{
		{name: "writes display", argv: []string{"tee", target}, display: "-0.25", want: "-0.25"},
		{name: "refuses error", argv: []string{"tee", target}, display: "Error", errIs: ErrNothingToCopy},
		{name: "refuses blank", argv: []string{"tee", target}, display: "", errIs: ErrNothingToCopy},
		{name: "empty argv", argv: nil, display: "1", errText: "clipboard command is empty"},
		{name: "command stderr surfaces", argv: []string{failing}, display: "7", errText: "no display server"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_ = os.Remove(target)
			cfg := config.Default()
			cfg.Clipboard = config.CommandConfig{Argv: tc.argv}

			err := NewCopier(cfg, nil).Copy(context.Background(), tc.display)
			switch {
			case tc.errIs != nil:
				require.ErrorIs(t, err, tc.errIs)
				require.NoFileExists(t, target)
			case tc.errText != "":
				require.ErrorContains(t, err, "set clipboard")
				require.ErrorContains(t, err, tc.errText)
			default:
				require.NoError(t, err)
				data, readErr := os.ReadFile(target)
				require.NoError(t, readErr)
				require.Equal(t, tc.want, string(data))
			}
		})
	}
}

func TestPipeToHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pipeTo(ctx, []string{"sleep", "5"}, "")
	require.Error(t, err)
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}
