package deco

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var pkgLogger atomic.Pointer[zap.Logger]

func init() {
	pkgLogger.Store(zap.NewNop())
}

// SetLogger sets the logger used for the package's own diagnostics.
// A nil logger silences them.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pkgLogger.Store(logger)
}

// Logger returns the package logger.
func Logger() *zap.Logger {
	return pkgLogger.Load()
}
