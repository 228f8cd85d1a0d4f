package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"battlelens/roster"
)

// Config is the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Stream  StreamConfig  `toml:"stream"`
	Tracker TrackerConfig `toml:"tracker"`
	Replay  ReplayConfig  `toml:"replay"`
	App     AppConfig     `toml:"app"`
}

// ServerConfig contains the local HTTP server settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`          // Listen address
	DatabasePath string `toml:"database_path"` // SQLite battle history (empty = disabled)
}

// StreamConfig contains the battle stream connection settings.
type StreamConfig struct {
	URL        string `toml:"url"`         // Websocket endpoint of the battle engine
	RoomPrefix string `toml:"room_prefix"` // Prefix added to bare room IDs
}

// TrackerConfig contains state reconstruction settings.
type TrackerConfig struct {
	LogRetention int    `toml:"log_retention"` // Max categorized log entries kept
	TieBreak     string `toml:"tie_break"`     // Mirror-match disambiguation rule
}

// ReplayConfig contains saved-log analysis settings.
type ReplayConfig struct {
	FilePath  string `toml:"file_path"` // Battle log to analyze (empty = disabled)
	Follow    bool   `toml:"follow"`    // Tail the file for new lines
	Templates string `toml:"templates"` // Optional JSON message-template overrides
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":42069",
			DatabasePath: "battles.db",
		},
		Stream: StreamConfig{
			URL:        "wss://sim.psim.us/showdown/websocket",
			RoomPrefix: "battle-",
		},
		Tracker: TrackerConfig{
			LogRetention: 200,
			TieBreak:     string(roster.TieBreakRecentActive),
		},
		Replay: ReplayConfig{
			Follow: true,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".battlelens")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if the file
// doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if c.Stream.URL == "" {
		return fmt.Errorf("stream url cannot be empty")
	}
	if c.Tracker.LogRetention < 0 {
		return fmt.Errorf("log retention cannot be negative: %d", c.Tracker.LogRetention)
	}
	switch roster.TieBreak(c.Tracker.TieBreak) {
	case roster.TieBreakRecentActive, roster.TieBreakFirstRegistered, "":
	default:
		return fmt.Errorf("unknown tie_break %q", c.Tracker.TieBreak)
	}
	return nil
}

// GetTieBreak returns the configured mirror-match tie-break rule.
func (c *Config) GetTieBreak() roster.TieBreak {
	if c.Tracker.TieBreak == "" {
		return roster.TieBreakRecentActive
	}
	return roster.TieBreak(c.Tracker.TieBreak)
}
