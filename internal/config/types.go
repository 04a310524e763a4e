// Package config resolves, parses, validates, and defaults caltwo configuration.
package config

// Config is the fully materialized runtime configuration used by caltwo.
type Config struct {
	Sound     SoundConfig
	GRPC      GRPCConfig
	Clipboard CommandConfig
	Log       LogConfig
}

// SoundConfig controls audio cue playback.
type SoundConfig struct {
	Enable     bool
	KeyClicks  bool
	ResultFile string
	ErrorFile  string
}

// GRPCConfig controls the optional network surface started by serve.
type GRPCConfig struct {
	Enable bool
	Listen string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// LogConfig controls the JSONL log level.
type LogConfig struct {
	Level string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
