package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nscalrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Len(t, cfg.FeedFiles, 1)
	assert.Equal(t, 7, cfg.ZoomDays)
	assert.Equal(t, "timeline", cfg.StartupView)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 60*time.Second, cfg.RefreshRate)
	assert.NotEmpty(t, cfg.Colors)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
# nscal config
set feed_files /tmp/a.json, /tmp/b.json
set timezone UTC
set zoom_days 14
set custom_order Zuzalu, Edge City, Prospera
set startup_view agenda
set auto_refresh false
set refresh_rate 30s

color live 160
color header underline

alias "Edge City" EdgeCity, Edge Esmeralda
alias "Edge City" Edge City Lanna
`)

	cfg := DefaultConfig()
	require.NoError(t, cfg.loadFromFile(path))

	assert.Equal(t, []string{"/tmp/a.json", "/tmp/b.json"}, cfg.FeedFiles)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 14, cfg.ZoomDays)
	assert.Equal(t, []string{"Zuzalu", "Edge City", "Prospera"}, cfg.CustomOrder)
	assert.Equal(t, "agenda", cfg.StartupView)
	assert.False(t, cfg.AutoRefresh)
	assert.Equal(t, 30*time.Second, cfg.RefreshRate)

	assert.Equal(t, "160", cfg.Colors["live"])
	assert.Equal(t, "underline", cfg.Colors["header"])

	assert.Equal(t,
		[]string{"EdgeCity", "Edge Esmeralda", "Edge City Lanna"},
		cfg.Aliases["Edge City"])
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown directive", "frobnicate everything"},
		{"unknown variable", "set no_such_thing 1"},
		{"bad zoom_days", "set zoom_days zero"},
		{"negative zoom_days", "set zoom_days -3"},
		{"bad timezone", "set timezone Mars/Olympus"},
		{"bad startup_view", "set startup_view dashboard"},
		{"bad refresh_rate", "set refresh_rate soonish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.loadFromFile(writeConfig(t, tt.line))
			assert.Error(t, err)
			assert.ErrorContains(t, err, "line 1")
		})
	}
}

func TestRefreshRateAcceptsBareSeconds(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.loadFromFile(writeConfig(t, "set refresh_rate 120")))
	assert.Equal(t, 120*time.Second, cfg.RefreshRate)
}

func TestLoadConfigHonorsEnvOverride(t *testing.T) {
	path := writeConfig(t, "set zoom_days 3")
	t.Setenv("NSCAL_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ZoomDays)
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "UTC"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.Local, cfg.Location())
}
