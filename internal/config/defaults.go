package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/laserpunk.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			StartRoom:   "first_floor",
			StartAccess: 0,
			MaxHealth:   3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			DBPath: "~/.laserpunk/scores.db",
		},
		Server: ServerConfig{
			Address:     "0.0.0.0:23234",
			HostKeyPath: ".ssh/laserpunk_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		TUI: TUIConfig{
			TickRate: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
