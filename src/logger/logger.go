package logger

import (
	"context"
	"os"

	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Conf struct {
	Path  string `toml:"path" mapstructure:"path" json:"path"`
	Level string `toml:"level" mapstructure:"level" json:"level"`
}

// SetUp builds the global logger: JSON encoder to file, colored console to stdout.
func SetUp(c Conf) (*zap.Logger, error) {
	level := zap.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, err
		}
	}

	pe := zap.NewProductionEncoderConfig()
	pe.EncodeTime = zapcore.ISO8601TimeEncoder
	pe.MessageKey = "message"
	pe.TimeKey = "time"

	cores := []zapcore.Core{}
	if c.Path != "" {
		f, err := os.OpenFile(c.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(pe), zapcore.AddSync(f), level))
	}

	ce := pe
	ce.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(ce), zapcore.AddSync(colorable.NewColorableStdout()), level))

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	zap.ReplaceGlobals(l)
	return l, nil
}

// WithContext returns the request-scoped logger. Context is accepted so trace
// fields can be attached later without touching call sites.
func WithContext(ctx context.Context) *zap.Logger {
	_ = ctx
	return zap.L()
}
