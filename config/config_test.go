package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlelens/roster"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":42069", cfg.Server.Addr)
	assert.Equal(t, "battle-", cfg.Stream.RoomPrefix)
	assert.Equal(t, 200, cfg.Tracker.LogRetention)
	assert.NoError(t, cfg.Validate())
}

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.Addr = ":9999"
	cfg.Tracker.TieBreak = string(roster.TieBreakFirstRegistered)
	cfg.App.DebugMode = true
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"empty stream url", func(c *Config) { c.Stream.URL = "" }, true},
		{"negative retention", func(c *Config) { c.Tracker.LogRetention = -1 }, true},
		{"unknown tie break", func(c *Config) { c.Tracker.TieBreak = "coin_flip" }, true},
		{"blank tie break is allowed", func(c *Config) { c.Tracker.TieBreak = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, roster.TieBreakRecentActive, cfg.GetTieBreak())

	cfg.Tracker.TieBreak = ""
	assert.Equal(t, roster.TieBreakRecentActive, cfg.GetTieBreak())

	cfg.Tracker.TieBreak = string(roster.TieBreakFirstRegistered)
	assert.Equal(t, roster.TieBreakFirstRegistered, cfg.GetTieBreak())
}
