// Package corelog wraps zap with the explorer's logging conventions: one
// sugared logger per worker component, writing to a file under
// $HOME/.cache/jef rather than to the terminal the TUI owns. This plays
// the role the teacher's log.SetPrefix("cindex: ") does for its CLI
// tools, made structured because the core is several concurrent
// generation-based workers instead of one linear batch job.
package corelog

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogPath returns the path of the worker log file, deriving it from
// $HOME the way the teacher's index.File() derives the index path.
func LogPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "jef", "jef.log")
}

// New builds the root logger, writing to LogPath(). On any failure to
// open the log file it falls back to a discard logger: a file explorer
// must keep running even if its log sink is unavailable (spec §7's
// continuous-responsiveness principle extends to logging itself).
func New() *zap.SugaredLogger {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop().Sugar()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop().Sugar()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		zap.InfoLevel,
	)
	return zap.New(core).Sugar()
}

// Component returns a child logger tagged with the given component name,
// e.g. corelog.Component(base, "indexer").
func Component(base *zap.SugaredLogger, name string) *zap.SugaredLogger {
	return base.With("component", name)
}
