package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "techlabel-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "usb", cfg.Printer.Mode)
	assert.Equal(t, 9, cfg.Printer.MockTapeWidthMM)
	assert.Equal(t, 5, cfg.Printer.InitRetries)
	assert.Equal(t, 2*time.Second, cfg.Printer.InitRetryDelay)
	assert.Equal(t, "/data/backups", cfg.Storage.BackupPath)
	assert.Equal(t, "/data/techlabel.db", cfg.Database.Path)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Printer.Mode = "mock"
	cfg.Printer.MockTapeWidthMM = 12
	cfg.App.Port = "9090"
	applyDefaults(cfg)

	assert.Equal(t, "mock", cfg.Printer.Mode)
	assert.Equal(t, 12, cfg.Printer.MockTapeWidthMM)
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestValidate(t *testing.T) {
	newValid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("valid defaults", func(t *testing.T) {
		assert.NoError(t, newValid().validate())
	})

	t.Run("unknown printer mode", func(t *testing.T) {
		cfg := newValid()
		cfg.Printer.Mode = "bluetooth"
		assert.Error(t, cfg.validate())
	})

	t.Run("negative retention", func(t *testing.T) {
		cfg := newValid()
		cfg.Storage.RetentionDays = -1
		assert.Error(t, cfg.validate())
	})

	t.Run("tiny body limit", func(t *testing.T) {
		cfg := newValid()
		cfg.HTTP.MaxBodySize = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("mock printer rejected in production", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		cfg.Printer.Mode = "mock"
		cfg.HTTP.CORSAllowOrigins = []string{"https://labels.example.com"}
		assert.Error(t, cfg.validate())
	})

	t.Run("wildcard cors rejected in production", func(t *testing.T) {
		cfg := newValid()
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())
	})
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TECHLABEL_PRINTER_MODE", "mock")
	t.Setenv("TECHLABEL_APP_PORT", "9191")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mock", cfg.Printer.Mode)
	assert.Equal(t, "9191", cfg.App.Port)
}

func TestIsProduction(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
}
