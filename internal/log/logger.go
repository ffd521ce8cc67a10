package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) slog() slog.Level {
	switch l {
	case Debug:
		return slog.LevelDebug
	case Warn:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "err", "error":
		return Error
	default:
		return Info
	}
}

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	Setup(os.Stderr, "text")
}

// Setup replaces the output writer and format ("text" or "json").
func Setup(w io.Writer, format string) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger.Store(slog.New(h))
}

func SetLevel(l Level) { level.Set(l.slog()) }

// Logger exposes the underlying structured logger.
func Logger() *slog.Logger { return logger.Load() }

func logf(l Level, format string, v ...any) {
	lg := logger.Load()
	if !lg.Enabled(context.Background(), l.slog()) {
		return
	}
	lg.Log(context.Background(), l.slog(), fmt.Sprintf(format, v...))
}

func Debugf(format string, v ...any) { logf(Debug, format, v...) }
func Infof(format string, v ...any)  { logf(Info, format, v...) }
func Warnf(format string, v ...any)  { logf(Warn, format, v...) }
func Errorf(format string, v ...any) { logf(Error, format, v...) }

// InitFromEnvFallback sets level and format from config, letting
// CLEANWEB_LOG_LEVEL and CLEANWEB_LOG_FORMAT override them.
func InitFromEnvFallback(lvl, format string) {
	if env := os.Getenv("CLEANWEB_LOG_LEVEL"); env != "" {
		lvl = env
	}
	if env := os.Getenv("CLEANWEB_LOG_FORMAT"); env != "" {
		format = env
	}
	Setup(os.Stderr, format)
	SetLevel(ParseLevel(lvl))
}
