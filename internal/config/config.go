// Package config provides YAML-based configuration loading for the bridge
// runtime: screen geometry, frame rate, transport selection, and host options.
package config

import (
	"fmt"
	"time"
)

// Config is the top-level runtime configuration.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Transport TransportConfig `yaml:"transport"`
	Host      HostConfig      `yaml:"host"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ScreenConfig defines the logical play area and pacing.
type ScreenConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	FPS    int   `yaml:"fps"`
	Seed   int64 `yaml:"seed"` // 0 means a time-based seed
}

// TransportConfig selects and tunes the frame/input transport.
type TransportConfig struct {
	// Type is "exchange", "ws", or "memory".
	Type string `yaml:"type"`

	// Exchange transport: directory holding the frame and input files.
	ExchangeDir string `yaml:"exchange_dir"`
	// PollIntervalMs is the busy-poll interval for the exchange files.
	PollIntervalMs int `yaml:"poll_interval_ms"`
	// HostTimeoutMs bounds how long a frame may sit unconsumed before the
	// host is declared unresponsive. 0 waits forever.
	HostTimeoutMs int `yaml:"host_timeout_ms"`
	// NoWait overwrites unconsumed frames instead of waiting.
	NoWait bool `yaml:"no_wait"`

	// WebSocket transport: host bridge URL for the game, listen address for
	// the host.
	WSURL    string `yaml:"ws_url"`
	WSListen string `yaml:"ws_listen"`
}

// HostConfig tunes the terminal host.
type HostConfig struct {
	AssetDir string `yaml:"asset_dir"`
	Audio    bool   `yaml:"audio"`
	// SSHListen enables the SSH host when non-empty.
	SSHListen  string `yaml:"ssh_listen"`
	SSHHostKey string `yaml:"ssh_host_key"`
}

// StorageConfig locates the session log database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// PollInterval returns the exchange poll interval as a duration.
func (t TransportConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalMs) * time.Millisecond
}

// HostTimeout returns the frame-consumption deadline as a duration.
func (t TransportConfig) HostTimeout() time.Duration {
	return time.Duration(t.HostTimeoutMs) * time.Millisecond
}

// Validate rejects configurations the runtime cannot honor.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen %dx%d is not positive", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.FPS <= 0 {
		return fmt.Errorf("config: fps %d is not positive", c.Screen.FPS)
	}
	switch c.Transport.Type {
	case "exchange", "ws", "memory":
	default:
		return fmt.Errorf("config: unknown transport type %q", c.Transport.Type)
	}
	if c.Transport.PollIntervalMs < 0 || c.Transport.HostTimeoutMs < 0 {
		return fmt.Errorf("config: negative transport timings")
	}
	return nil
}
