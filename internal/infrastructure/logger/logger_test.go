package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{
			name: "console to stdout",
			cfg:  &Config{Level: "info", Format: "console", Output: "stdout"},
		},
		{
			name: "json to stderr",
			cfg:  &Config{Level: "debug", Format: "json", Output: "stderr"},
		},
		{
			name: "empty fields use defaults",
			cfg:  &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printer.log")

	logger, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("tape loaded", zap.Int("width_mm", 9))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tape loaded")
}

func TestNew_UnwritableFileOutput(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "printer.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log output")
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFor(tt.level))
		})
	}
}

func TestNewEncoder(t *testing.T) {
	console := newEncoder(&Config{Format: "console"})
	assert.NotNil(t, console)

	jsonEnc := newEncoder(&Config{Format: "json", TimeFormat: "2006-01-02"})
	assert.NotNil(t, jsonEnc)
}

func TestSync(t *testing.T) {
	logger, err := New(&Config{Format: "console", Output: "stdout"})
	require.NoError(t, err)

	// stdout may reject Sync on some platforms; it must not panic.
	_ = Sync(logger)
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		newEncoder(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	logger := zap.New(core)

	logger.Info("print queued", zap.String("kind", "cable"))

	var output map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "print queued", output["msg"])
	assert.Equal(t, "info", output["level"])
	assert.Equal(t, "cable", output["kind"])
	assert.NotEmpty(t, output["time"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		newEncoder(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		levelFor("info"),
	)
	logger := zap.New(core)

	logger.Debug("raster line detail")
	assert.False(t, strings.Contains(buf.String(), "raster line detail"))

	logger.Info("job finished")
	assert.True(t, strings.Contains(buf.String(), "job finished"))
}
