package logutil

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const TimestampFormat = "2006-01-02T15:04:05.000Z"

// NewLogger returns a debug console logger writing to out when verbose is
// set, and a no-op logger otherwise. Command output never goes through it.
func NewLogger(verbose bool, out io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimestampFormat)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(out)),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("graphctl")
}
