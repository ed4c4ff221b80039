package figure

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	loggerMu  sync.RWMutex
	pkgLogger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
)

// SetLogger replaces the package logger used for deprecation warnings.
// Passing nil silences the package.
func SetLogger(l *log.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		pkgLogger = log.NewWithOptions(io.Discard, log.Options{})
		return
	}
	pkgLogger = l
}

// logger returns the current package logger.
func logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return pkgLogger
}
