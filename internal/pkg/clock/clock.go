package clock

import "time"

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Fixed is a Clocker frozen at a single instant.
//
// It is used by tests of window-based code (rate limiting, template footers).
type Fixed struct {
	At time.Time
}

// Now returns the frozen instant.
func (f *Fixed) Now() time.Time {
	return f.At
}

// Advance moves the frozen instant forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}
