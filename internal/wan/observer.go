package wan

import "time"

// Observer receives run events for export. Implementations must not block.
type Observer interface {
	ObserveProbe(target string, ok bool)
	ObserveCycle(path string)
	ObserveRun(outcome string, duration time.Duration, finished time.Time)
}

type nopObserver struct{}

func (nopObserver) ObserveProbe(string, bool)                   {}
func (nopObserver) ObserveCycle(string)                         {}
func (nopObserver) ObserveRun(string, time.Duration, time.Time) {}
