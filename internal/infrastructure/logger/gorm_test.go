package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)

	require.NotNil(t, gormLog)
	assert.Equal(t, gormlogger.Info, gormLog.level)
	assert.Equal(t, defaultSlowQuery, gormLog.slow)

	var _ gormlogger.Interface = gormLog
}

func TestLedgerLogger_LogMode(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)
	quieter := gormLog.LogMode(gormlogger.Warn)

	// LogMode returns a copy, the original keeps its level.
	assert.Equal(t, gormlogger.Info, gormLog.level)

	clone, ok := quieter.(*LedgerLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.level)
}

func TestLedgerLogger_Info(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)
	gormLog.Info(context.Background(), "migrating %s", "print_jobs")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "migrating print_jobs")
}

func TestLedgerLogger_Info_Suppressed(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Silent)
	gormLog.Info(context.Background(), "migrating print_jobs")

	assert.Empty(t, recorded.All())
}

func TestLedgerLogger_Warn(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Warn)
	gormLog.Warn(context.Background(), "retrying after %d failures", 2)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "retrying after 2 failures")
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestLedgerLogger_Error(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)
	gormLog.Error(context.Background(), "ledger unavailable")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestLedgerLogger_Trace_Error(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)
	fc := func() (string, int64) {
		return "INSERT INTO print_jobs", 0
	}

	gormLog.Trace(context.Background(), time.Now(), fc, errors.New("disk full"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "ledger query failed", logs[0].Message)
}

func TestLedgerLogger_Trace_RecordNotFoundSkipped(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Error)
	fc := func() (string, int64) {
		return "SELECT * FROM print_jobs WHERE id = ?", 0
	}

	gormLog.Trace(context.Background(), time.Now(), fc, gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestLedgerLogger_Trace_SlowQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Warn)
	gormLog.slow = time.Nanosecond

	begin := time.Now().Add(-time.Second)
	fc := func() (string, int64) {
		return "SELECT * FROM print_jobs", 10
	}

	gormLog.Trace(context.Background(), begin, fc, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "slow ledger query")
}

func TestLedgerLogger_Trace_NormalQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)
	fc := func() (string, int64) {
		return "SELECT * FROM print_jobs", 5
	}

	gormLog.Trace(context.Background(), time.Now(), fc, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "ledger query", logs[0].Message)
	assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
}

func TestLedgerLogger_Trace_Silent(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Silent)
	fc := func() (string, int64) {
		return "SELECT * FROM print_jobs", 5
	}

	gormLog.Trace(context.Background(), time.Now(), fc, nil)

	assert.Empty(t, recorded.All())
}

func TestLedgerLogger_Trace_WithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	gormLog := NewGormLogger(zap.New(core), gormlogger.Info)
	ctx := context.WithValue(context.Background(), RequestIDKey, "test-req-id")
	fc := func() (string, int64) {
		return "SELECT * FROM print_jobs", 5
	}

	gormLog.Trace(ctx, time.Now(), fc, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	hasRequestID := false
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			hasRequestID = true
			assert.Equal(t, "test-req-id", field.String)
		}
	}
	assert.True(t, hasRequestID, "request_id should be in log fields")
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGormLogLevel(tt.level))
		})
	}
}
