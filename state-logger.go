package tracewire

import (
	"errors"
	"sync"
	"time"
)

var errClean = errors.New("not an error")

// StateLogger suppresses repeats of the same error within a given
// interval. Extraction of trace context from incoming messages is best
// effort, so a peer that keeps sending broken headers would otherwise
// flood the log with one line per message.
type StateLogger struct {
	mu       sync.Mutex
	logger   Logger
	interval time.Duration
	last     error
	lastAt   time.Time
}

// NewStateLogger creates a StateLogger reporting through logger. A
// repeated error is logged again only after interval has passed.
func NewStateLogger(logger Logger, interval time.Duration) *StateLogger {
	return &StateLogger{
		logger:   logger,
		interval: interval,
		last:     errClean,
	}
}

// LogError logs err unless it equals the previously seen error and
// less than the configured interval has passed since it was reported.
func (sl *StateLogger) LogError(err error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.last != nil && err.Error() == sl.last.Error() && time.Since(sl.lastAt) < sl.interval {
		return
	}
	sl.logger.Log("err", err.Error())
	sl.last = err
	sl.lastAt = time.Now()
}

// Fixed records that the underlying condition is resolved, so the next
// error is logged immediately even if it equals the last one.
func (sl *StateLogger) Fixed(keyvals ...interface{}) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.interval == 0 || sl.last == nil {
		return
	}
	sl.logger.Log(keyvals...)
	sl.last = nil
}
