package config

import (
	_ "embed"
)

//go:embed defaults/qisge.yaml
var defaultYAML []byte

// Default returns the built-in configuration: a 28x16 screen at 30 frames per
// second with the file-exchange transport in the current directory.
func Default() Config {
	return Config{
		Screen: ScreenConfig{
			Width:  28,
			Height: 16,
			FPS:    30,
		},
		Transport: TransportConfig{
			Type:           "exchange",
			ExchangeDir:    ".",
			PollIntervalMs: 10,
			HostTimeoutMs:  5000,
		},
		Host: HostConfig{
			AssetDir: "assets",
			Audio:    false,
		},
		Storage: StorageConfig{
			DBPath: "~/.qisge/sessions.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
