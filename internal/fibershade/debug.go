package fibershade

import (
	"fmt"
	"log/slog"
	"sync"
)

// DebugLog emits a debug record when Debug is on.
func DebugLog(format string, args ...any) {
	if !Debug {
		return
	}
	slog.Debug(fmt.Sprintf(format, args...))
}

var once sync.Once

func DebugLogOnce(format string, args ...any) {
	if !Debug {
		return
	}
	once.Do(func() {
		slog.Debug(fmt.Sprintf(format, args...))
	})
}
