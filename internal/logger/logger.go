package logger

import (
	"os"

	"design-dojo/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Initialize sets up the logger with the given configuration
func Initialize(loggerCfg config.LoggerConfig) error {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	logLevel := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := logLevel.UnmarshalText([]byte(loggerCfg.Level)); err != nil {
			return err
		}
	}

	var encoder zapcore.Encoder
	if loggerCfg.Env == "production" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), logLevel)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

// Get returns the global logger instance, or a no-op logger before Initialize.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
