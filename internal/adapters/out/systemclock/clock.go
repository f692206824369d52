// Package systemclock provides the wall clock used by command handlers.
package systemclock

import "time"

// Clock returns the current time in UTC, truncated to microseconds so values
// survive a round trip through PostgreSQL timestamps unchanged.
type Clock struct{}

func New() Clock {
	return Clock{}
}

func (Clock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
