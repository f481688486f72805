package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

// SlogGormLogger 慢 SQL 与错误走 Warn/Error，普通语句只在 Debug 级别输出
type SlogGormLogger struct {
	LogLevel logger.LogLevel
	Dialect  string
}

// NewGormLogger dialect 只用于日志消息前缀
func NewGormLogger(dialect string) *SlogGormLogger {
	return &SlogGormLogger{LogLevel: logger.Info, Dialect: dialect}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &SlogGormLogger{LogLevel: level, Dialect: l.Dialect}
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, data)
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, data)
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, data)
}

func (l *SlogGormLogger) printf(ctx context.Context, need logger.LogLevel, level slog.Level, msg string, data []interface{}) {
	if l.LogLevel >= need {
		slog.Log(ctx, level, msg, "dialect", l.Dialect, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	msg := l.Dialect + " " + sqlOperation(sql)
	fields := []any{"sql", truncate(sql), "latency", elapsed, "rows", rows}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound) && l.LogLevel >= logger.Error:
		slog.ErrorContext(ctx, msg+" Error", append(fields, "err", err)...)
	case elapsed > slow.SQL && l.LogLevel >= logger.Warn:
		slog.WarnContext(ctx, msg+" Slow", fields...)
	case l.LogLevel >= logger.Info:
		slog.DebugContext(ctx, msg, fields...)
	}
}

// sqlOperation 取第一个关键字，如 SELECT / UPDATE
func sqlOperation(sql string) string {
	sql = strings.TrimSpace(sql)
	if i := strings.IndexAny(sql, " \n\t"); i > 0 {
		return strings.ToUpper(sql[:i])
	}
	return "QUERY"
}
