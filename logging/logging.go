// Package logging provides the package-level logger used across skydb,
// backed by zap.
package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	debugLogger    *zap.SugaredLogger
	fallbackLogger *zap.SugaredLogger
	mu             sync.Mutex
	isSetup        bool
)

// SetupLogger initializes the logger. Output goes to logFilePath, or to
// stderr when the path is empty. Debug messages are only written when
// debug is true.
func SetupLogger(logFilePath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	// Check if logger is already set up
	if isSetup {
		return nil
	}

	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	if logFilePath != "" {
		cfg.OutputPaths = []string{logFilePath}
	}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	debugLogger = logger.Sugar()
	debugLogger.Debugf("--- skydb debug log started at %s ---", time.Now().Format(time.RFC3339))

	isSetup = true
	return nil
}

// CloseLogger flushes and detaches the logger
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Debugf("--- skydb debug log closed at %s ---", time.Now().Format(time.RFC3339))
		_ = debugLogger.Sync()
		debugLogger = nil
		isSetup = false
	}
}

// fallback returns a stderr logger for messages that must not be lost
// when SetupLogger has not been called.
func fallback() *zap.SugaredLogger {
	if fallbackLogger == nil {
		logger, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			logger = zap.NewNop()
		}
		fallbackLogger = logger.Sugar()
	}
	return fallbackLogger
}

// LogInfo logs an information message
func LogInfo(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Infof(format, args...)
	} else {
		fallback().Infof(format, args...)
	}
}

// DebugLog logs a message if debug mode is enabled
func DebugLog(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Debugf(format, args...)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Errorf(format, args...)
	} else {
		fallback().Errorf(format, args...)
	}
}

// LogWarning logs a warning message
func LogWarning(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		debugLogger.Warnf(format, args...)
	} else {
		fallback().Warnf(format, args...)
	}
}

// LogProbeLoaded logs when a probe image has been decoded
func LogProbeLoaded(path string, success bool, errMsg string) {
	mu.Lock()
	defer mu.Unlock()

	if debugLogger != nil {
		if success {
			debugLogger.Debugw("probe loaded", "path", path)
		} else {
			debugLogger.Warnw("probe failed", "path", path, "error", errMsg)
		}
	}
}
