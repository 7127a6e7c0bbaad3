package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm's statement log into zap, tagged with the request
// and trace IDs carried by the query context.
type GormLogger struct {
	logger        *zap.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is reported as
// slow. Zero turns slow-query reporting off.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// WithIgnoreRecordNotFoundError controls whether lookups that find nothing
// are logged as failures. They are skipped by default.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) {
		l.skipNotFound = ignore
	}
}

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		logger:        zapLogger.Named("gorm"),
		logLevel:      level,
		slowThreshold: defaultSlowQueryThreshold,
		skipNotFound:  true,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) printf(ctx context.Context, enabledAt gormlogger.LogLevel, lvl zapcore.Level, msg string, data []any) {
	if l.logLevel < enabledAt {
		return
	}
	Enrich(ctx, l.logger).Sugar().Logf(lvl, msg, data...)
}

// Trace logs one executed statement. Failures win over slowness, and plain
// statements are only logged at debug level when gorm runs at Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !(l.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		lvl   zapcore.Level
		msg   string
		extra zap.Field
	)
	switch {
	case failed && l.logLevel >= gormlogger.Error:
		lvl, msg, extra = zapcore.ErrorLevel, "Query failed", zap.Error(err)
	case err != nil:
		return
	case slow && l.logLevel >= gormlogger.Warn:
		lvl, msg, extra = zapcore.WarnLevel, "Slow query", zap.Duration("threshold", l.slowThreshold)
	case l.logLevel >= gormlogger.Info:
		lvl, msg, extra = zapcore.DebugLevel, "Query", zap.Skip()
	default:
		return
	}

	sql, rows := fc()
	Enrich(ctx, l.logger).Log(lvl, msg,
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
		extra,
	)
}

// MapGormLogLevel translates the application log level into gorm's scale.
// Unknown levels fall back to Warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
