package internal

import "time"

// Clock abstracts "now" so handlers that default to the current month stay
// deterministic under test. Services never reach for time.Now through an
// ambient global when a Clock is available.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }
