package internal

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TruncateDuration keeps the three most significant digits of d.
func TruncateDuration(d time.Duration) time.Duration {
	magnitude := time.Duration(1)
	for {
		if magnitude > d {
			return d.Truncate(magnitude / 1000)
		}
		magnitude = magnitude * 10
	}
}

// NewLogger returns a JSON logger writing to stderr. Stdout is reserved for
// the measurement.
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	return cfg.Build()
}
