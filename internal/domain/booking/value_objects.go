package booking

import (
	"time"
)

// Period is the reservation interval. Construction is unchecked so that a
// draft can be assembled before validation; Validate reports each temporal
// violation as its own error.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) Period {
	return Period{start: start, end: end}
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

// Validate checks temporal sanity against the supplied "now". A start equal to
// now is admitted; only a strictly past start is refused.
func (p Period) Validate(now time.Time) error {
	if p.end.Before(p.start) || p.end.Equal(p.start) {
		return ErrEndNotAfterStart
	}
	if p.start.Before(now) {
		return ErrStartInPast
	}
	if p.end.Before(now) {
		return ErrEndInPast
	}
	return nil
}
