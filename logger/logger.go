package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var Log *zap.SugaredLogger

// Init routes logs to the given file. The terminal is owned by the UI, so
// nothing may be written to stdout or stderr after the program starts.
func Init(file string) {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		Log = zap.NewNop().Sugar()
		return
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{file}

	logger, err := cfg.Build()
	if err != nil {
		Log = zap.NewNop().Sugar()
		return
	}
	Log = logger.Sugar()
}
