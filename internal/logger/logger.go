package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	development bool
	mu          sync.RWMutex
)

// Init builds the global logger. "production" gets JSON on stdout, anything
// else gets the colored development console encoder.
func Init(env string) {
	var cfg zap.Config

	dev := env != "production"
	if !dev {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
		cfg.EncoderConfig.LevelKey = "level"
		cfg.EncoderConfig.CallerKey = "caller"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}

	mu.Lock()
	log = l.With(zap.String("service", "thrift-store"))
	development = dev
	mu.Unlock()
}

// L returns the global logger, initializing it from APP_ENV on first use.
func L() *zap.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Init(os.Getenv("APP_ENV"))
		mu.RLock()
		l = log
		mu.RUnlock()
	}
	return l
}

// IsDevelopment reports whether Init ran with a non-production env.
func IsDevelopment() bool {
	mu.RLock()
	defer mu.RUnlock()
	return development
}

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prev := log
	log = l
	mu.Unlock()
	return func() {
		mu.Lock()
		log = prev
		mu.Unlock()
	}
}

// Sync flushes logs.
func Sync() {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
