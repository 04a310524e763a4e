package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  string
		wantWarn string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty clipboard", mutate: func(c *Config) { c.Clipboard.Argv = nil }, wantErr: "clipboard_cmd"},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "log.level"},
		{name: "grpc without listen", mutate: func(c *Config) {
			c.GRPC = GRPCConfig{Enable: true}
		}, wantErr: "grpc.listen must not be empty"},
		{name: "disabled grpc without listen", mutate: func(c *Config) { c.GRPC = GRPCConfig{} }},
		{name: "listen without port", mutate: func(c *Config) { c.GRPC.Listen = "127.0.0.1" }, wantErr: "host:port"},
		{name: "listen with empty port", mutate: func(c *Config) { c.GRPC.Listen = "127.0.0.1:" }, wantErr: "include a port"},
		{name: "public listen", mutate: func(c *Config) {
			c.GRPC = GRPCConfig{Enable: true, Listen: "0.0.0.0:50151"}
		}, wantWarn: "beyond loopback"},
		{name: "public listen while disabled", mutate: func(c *Config) { c.GRPC.Listen = "0.0.0.0:50151" }},
		{name: "localhost listen", mutate: func(c *Config) {
			c.GRPC = GRPCConfig{Enable: true, Listen: "localhost:50151"}
		}},
		{name: "overrides with sound off", mutate: func(c *Config) {
			c.Sound = SoundConfig{ResultFile: "~/done.wav"}
		}, wantWarn: "sound.enable=false"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			warnings, err := Validate(cfg)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			if tc.wantWarn == "" {
				require.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1)
			require.Contains(t, warnings[0].Message, tc.wantWarn)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for raw, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		" info ":  slog.LevelInfo,
		"Debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
	} {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
