// Package config provides YAML-based configuration loading for laserpunk.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Config is the top-level laserpunk configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	TUI     TUIConfig     `yaml:"tui"`
}

// GameConfig selects the rooms a session plays.
type GameConfig struct {
	StartRoom   string `yaml:"start_room"`
	LevelsDir   string `yaml:"levels_dir"`   // empty = built-in campaign
	StartAccess int    `yaml:"start_access"` // access level a new player holds
	MaxHealth   int    `yaml:"max_health"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// TUIConfig defines the terminal front end.
type TUIConfig struct {
	TickRate int `yaml:"tick_rate"` // redraws per second
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Game.StartRoom == "" {
		errs = append(errs, errors.New("game.start_room is required"))
	}
	if c.Game.StartAccess < 0 {
		errs = append(errs, fmt.Errorf("game.start_access must be >= 0, got %d", c.Game.StartAccess))
	}
	if c.Game.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("game.max_health must be positive, got %d", c.Game.MaxHealth))
	}
	if c.TUI.TickRate <= 0 || c.TUI.TickRate > 120 {
		errs = append(errs, fmt.Errorf("tui.tick_rate must be in 1..120, got %d", c.TUI.TickRate))
	}
	if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
		errs = append(errs, fmt.Errorf("server.address: %w", err))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}
