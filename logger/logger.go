package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the global logger. Production uses JSON output; anything else
// gets the development console encoder.
func Init(env string) {
	once.Do(func() {
		var err error
		if env == "production" {
			log, err = zap.NewProduction()
		} else {
			log, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		zap.ReplaceGlobals(log)
	})
}

// L returns the global logger, falling back to a no-op logger before Init.
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes buffered entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func Info(msg string, fields ...zapcore.Field) { L().Info(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field) { L().Warn(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { L().Error(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { L().Debug(msg, fields...) }
