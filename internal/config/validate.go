package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
)

// Validate rejects configs caltwo cannot run with and returns warnings for
// settings that are legal but likely unintended.
func Validate(cfg Config) ([]Warning, error) {
	if len(cfg.Clipboard.Argv) == 0 {
		return nil, errors.New("clipboard_cmd must not be empty")
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	var warnings []Warning
	grpcWarnings, err := validateGRPC(cfg.GRPC)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, grpcWarnings...)

	if !cfg.Sound.Enable {
		if cfg.Sound.KeyClicks {
			warnings = append(warnings, Warning{Message: "sound.key_clicks has no effect while sound.enable=false"})
		}
		if cfg.Sound.ResultFile != "" || cfg.Sound.ErrorFile != "" {
			warnings = append(warnings, Warning{Message: "sound file overrides are ignored while sound.enable=false"})
		}
	}
	return warnings, nil
}

func validateGRPC(cfg GRPCConfig) ([]Warning, error) {
	listen := strings.TrimSpace(cfg.Listen)
	if listen == "" {
		if cfg.Enable {
			return nil, errors.New("grpc.listen must not be empty when grpc.enable=true")
		}
		return nil, nil
	}

	host, port, err := net.SplitHostPort(listen)
	switch {
	case err != nil:
		return nil, fmt.Errorf("grpc.listen must be host:port: %w", err)
	case port == "":
		return nil, errors.New("grpc.listen must include a port")
	case !cfg.Enable || host == "" || host == "localhost":
		return nil, nil
	}

	if ip := net.ParseIP(host); ip != nil && !ip.IsLoopback() {
		return []Warning{{Message: fmt.Sprintf("grpc.listen %q is reachable beyond loopback", listen)}}, nil
	}
	return nil, nil
}

// ParseLevel maps log.level onto a slog level. Empty means info.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.New("log.level must be one of: debug, info, warn, error")
}
