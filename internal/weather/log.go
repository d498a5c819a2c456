package weather

import (
	"log"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebug toggles verbose pipeline and fetch logging process-wide.
func SetDebug(on bool) {
	debugEnabled.Store(on)
}

// Debugf logs with a DEBUG prefix when debug logging is enabled.
func Debugf(format string, args ...any) {
	if debugEnabled.Load() {
		log.Printf("DEBUG: "+format, args...)
	}
}
