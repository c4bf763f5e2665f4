// Package logging builds the process logger from LogConfig.
package logging

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lherron/scomadm/internal/config"
)

// New creates a *zap.Logger writing to w.
//
// Format "json" uses zap's production encoder; anything else uses the
// console encoder. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to warn so that normal runs keep
// stderr quiet.
func New(cfg config.LogConfig, w io.Writer) *zap.Logger {
	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "json") {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(cfg.Level)))
	return zap.New(core)
}

// Discard returns a logger that drops every record
func Discard() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel maps a level name to a zapcore.Level
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
