// Package logging builds the run logger: a timestamped log file in the
// configured directory plus an optional console mirror on stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/okamoto/clusterd-tester/internal/config"
)

// New creates the logger and returns it together with the path of the
// log file it writes to. Each invocation produces a fresh file named
// clusterd-log-<timestamp>.log.
func New(cfg *config.LoggingConfig) (*zap.Logger, string, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, "", fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	name := fmt.Sprintf("clusterd-log-%s.log", time.Now().Format("2006-01-02-150405"))
	path := filepath.Join(cfg.Dir, name)

	file, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	fileEnc := zap.NewProductionEncoderConfig()
	fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(file), level),
	}

	if cfg.Console {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.Lock(os.Stderr),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), path, nil
}
