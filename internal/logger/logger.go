package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init собирает SugaredLogger для окружения ENV (development, debug, production).
func Init(serviceName, env string) *zap.SugaredLogger {
	cfg := buildConfig(env)

	z, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "не удалось инициализировать логгер: %v\n", err)
		os.Exit(1)
	}
	return z.Named(serviceName).Sugar()
}

// Nop возвращает логгер, который ничего не пишет. Используется в тестах.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// SafeSync сбрасывает буферы, игнорируя известную ошибку sync для stdout.
func SafeSync(l *zap.SugaredLogger) {
	if l == nil {
		return
	}
	if err := l.Sync(); err != nil && !strings.Contains(err.Error(), "invalid argument") &&
		!strings.Contains(err.Error(), "inappropriate ioctl") {
		fmt.Fprintf(os.Stderr, "ошибка sync логгера: %v\n", err)
	}
}

func buildConfig(env string) zap.Config {
	var cfg zap.Config

	switch env {
	case "development":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true

	case "debug":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	case "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true

	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	return cfg
}
