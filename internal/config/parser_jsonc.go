package config

import (
	"fmt"
	"strings"
)

type jsoncConfig struct {
	Sound        *jsoncSound `json:"sound"`
	GRPC         *jsoncGRPC  `json:"grpc"`
	ClipboardCmd *string     `json:"clipboard_cmd"`
	Log          *jsoncLog   `json:"log"`
}

type jsoncSound struct {
	Enable     *bool   `json:"enable"`
	KeyClicks  *bool   `json:"key_clicks"`
	ResultFile *string `json:"result_file"`
	ErrorFile  *string `json:"error_file"`
}

type jsoncGRPC struct {
	Enable *bool   `json:"enable"`
	Listen *string `json:"listen"`
}

type jsoncLog struct {
	Level *string `json:"level"`
}

func parseJSONC(content string, base Config) (Config, []Warning, error) {
	var payload jsoncConfig
	if err := decodeJSONC(content, &payload); err != nil {
		return Config{}, nil, err
	}

	cfg := base
	if err := payload.applyTo(&cfg); err != nil {
		return Config{}, nil, err
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, warnings, nil
}

// applyTo overlays the fields present in payload onto cfg.
func (payload jsoncConfig) applyTo(cfg *Config) error {
	if s := payload.Sound; s != nil {
		overlay(&cfg.Sound.Enable, s.Enable)
		overlay(&cfg.Sound.KeyClicks, s.KeyClicks)
		overlay(&cfg.Sound.ResultFile, trimmed(s.ResultFile))
		overlay(&cfg.Sound.ErrorFile, trimmed(s.ErrorFile))
	}
	if g := payload.GRPC; g != nil {
		overlay(&cfg.GRPC.Enable, g.Enable)
		overlay(&cfg.GRPC.Listen, trimmed(g.Listen))
	}
	if payload.Log != nil && payload.Log.Level != nil {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*payload.Log.Level))
	}

	if payload.ClipboardCmd != nil {
		clipboard, err := ParseCommand(*payload.ClipboardCmd)
		if err != nil {
			return fmt.Errorf("invalid clipboard_cmd: %w", err)
		}
		cfg.Clipboard = clipboard
	}
	return nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
