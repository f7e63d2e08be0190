package service

import "time"

// Clock returns the current time. Services take one so predictions can be
// evaluated against any week.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}
