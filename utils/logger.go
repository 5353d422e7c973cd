package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// InitLogger writes JSON logs to a daily file under dir. In development the
// same entries are also printed to the console.
func InitLogger(dir, level string, development bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %v", level, err)
	}

	timestamp := time.Now().Format("2006-01-02")
	file, err := os.OpenFile(
		filepath.Join(dir, fmt.Sprintf("ordersphere-%s.log", timestamp)),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), lvl),
	}
	if development {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stdout), lvl))
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	return nil
}

// SyncLogger flushes buffered entries.
func SyncLogger() {
	_ = logger.Sync()
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	logger.Infof(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	logger.Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	logger.Debugf(format, v...)
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	logger.Infow("request",
		"method", method,
		"path", path,
		"ip", ip,
		"request_id", requestID,
		"status", status,
		"duration", duration,
	)
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	logger.Errorw("panic recovered", "error", err, "stack", string(stack))
}
