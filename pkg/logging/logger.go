// Package logging builds the zap logger used by the romtext CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/romhack/romtext/pkg/config"
)

// ParseLevel maps a config level name to a zap level. Unknown or empty
// names fall back to warn so the CLI stays quiet by default.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.WarnLevel
	}
}

// SetupLogger builds a zap.Logger from the provided configuration. Output
// "stderr" (the default) writes to stderr, "stdout" to stdout, and anything
// else is treated as a file path, rotated when rotation is enabled. The
// caller should defer logger.Sync().
func SetupLogger(c config.Log, stderr io.Writer) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(c.Level))

	encCfg := defaultEncoderConfig(c.Development)
	var encoder zapcore.Encoder
	if strings.ToLower(c.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	ws, err := writeSyncer(c, stderr)
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewCore(encoder, ws, level), opts...), nil
}

func writeSyncer(c config.Log, stderr io.Writer) (zapcore.WriteSyncer, error) {
	switch out := strings.TrimSpace(c.Output); strings.ToLower(out) {
	case "", "stderr":
		if stderr == nil {
			stderr = os.Stderr
		}
		return zapcore.AddSync(stderr), nil
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	default:
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		if c.Rotation.Enable {
			return zapcore.AddSync(rotatingWriter(out, c.Rotation)), nil
		}
		f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return zapcore.AddSync(f), nil
	}
}

// Rotation defaults, applied only to settings left at zero.
const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 1
	defaultMaxAgeDays = 7
)

func rotatingWriter(path string, r config.Rotation) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(r.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(r.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(r.MaxAgeDays, defaultMaxAgeDays),
		Compress:   r.Compress,
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultEncoderConfig(dev bool) zapcore.EncoderConfig {
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}
	return zap.NewProductionEncoderConfig()
}
