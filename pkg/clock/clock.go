// Package clock provides time sources that can be swapped in tests.
package clock

import (
	"time"
)

type Interface interface {
	Now() time.Time
}

// Func adapts a plain function to Interface.
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

func System() Func {
	return time.Now
}

// Zoned reports the current time in location.
func Zoned(location *time.Location) Func {
	return func() time.Time {
		return time.Now().In(location)
	}
}

// Fixed always reports t.
func Fixed(t time.Time) Func {
	return func() time.Time {
		return t
	}
}
