package config

// DefaultGRPCListen is the loopback address used when grpc.listen is unset.
const DefaultGRPCListen = "127.0.0.1:50151"

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Sound: SoundConfig{Enable: true},
		GRPC:  GRPCConfig{Listen: DefaultGRPCListen},
		Clipboard: CommandConfig{
			Raw:  "wl-copy --trim-newline",
			Argv: []string{"wl-copy", "--trim-newline"},
		},
		Log: LogConfig{Level: "info"},
	}
}
