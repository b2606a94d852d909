package logger

import (
	"os"

	"ai-interviewer/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Initialize builds the global logger. Entries at error and above go to stderr, the rest to stdout.
func Initialize(loggerCfg config.LoggerConfig) error {
	minLevel := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := minLevel.Set(loggerCfg.Level); err != nil {
			return err
		}
	}

	encoder := newEncoder(loggerCfg.Env)

	infoLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.ErrorLevel
	})
	errorLevels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), infoLevels),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), errorLevels),
	)

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if loggerCfg.Env != "" {
		opts = append(opts, zap.Fields(zap.String("env", loggerCfg.Env)))
	}
	log = zap.New(core, opts...)
	return nil
}

// production 은 JSON, 그 외에는 사람이 읽기 쉬운 console 포맷
func newEncoder(env string) zapcore.Encoder {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeDuration = zapcore.MillisDurationEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

// Get returns the global logger instance. Before Initialize it returns a no-op logger.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Set swaps the global logger and returns a func that restores the previous one.
func Set(l *zap.Logger) (restore func()) {
	prev := log
	log = l
	return func() { log = prev }
}

func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
