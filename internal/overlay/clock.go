package overlay

import "time"

// Timer is an owned, cancellable single-shot timer handle.
type Timer interface {
	Stop() bool
}

// Clock schedules single-shot callbacks. Production code uses the wall
// clock; tests drive a fake.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the wall clock.
func SystemClock() Clock { return realClock{} }
