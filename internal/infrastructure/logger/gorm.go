package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// defaultSlowQuery is generous for a local sqlite ledger; anything
// slower usually means the disk is struggling.
const defaultSlowQuery = 200 * time.Millisecond

// LedgerLogger adapts zap to gorm's logger interface for the print-job
// ledger database. Record-not-found errors are not logged; looking up
// a job that does not exist is an expected path the repository handles.
type LedgerLogger struct {
	log   *zap.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

// NewGormLogger returns a ledger logger at the given gorm log level.
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel) *LedgerLogger {
	return &LedgerLogger{
		log:   zapLogger.Named("ledger"),
		level: level,
		slow:  defaultSlowQuery,
	}
}

// LogMode implements gormlogger.Interface.
func (l *LedgerLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface.
func (l *LedgerLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface.
func (l *LedgerLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface.
func (l *LedgerLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

// Trace logs each executed statement with its duration and row count,
// tagged with the request id when the query runs inside a request.
func (l *LedgerLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		fields = append(fields, zap.Error(err))
		l.log.Error("ledger query failed", fields...)

	case l.slow != 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		l.log.Warn(fmt.Sprintf("slow ledger query >= %v", l.slow), fields...)

	case l.level >= gormlogger.Info:
		l.log.Debug("ledger query", fields...)
	}
}

// MapGormLogLevel translates the service log level into the gorm one so
// a single log.level config setting drives both.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "warn":
		return gormlogger.Warn
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
