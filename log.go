package nestmap

import (
	"log/slog"
	"sync/atomic"
)

var theLog atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for deprecation warnings. A nil
// logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	theLog.Store(l)
}

func logger() *slog.Logger {
	if l := theLog.Load(); l != nil {
		return l
	}
	return slog.Default()
}
