package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

// InitLogger builds the process-wide zap logger. JSON in production,
// console encoding in development.
func InitLogger() {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(Cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if Cfg.Env == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	Log = logger
}
