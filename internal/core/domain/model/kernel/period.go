package kernel

import (
	"fmt"
	"time"

	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

// ErrPeriodIsNotConstructed is returned when a zero-value Period is used.
var ErrPeriodIsNotConstructed = errs.NewValueIsRequiredError("period must be created via NewPeriod")

// Period is a closed time window. Rectification periods are Periods whose
// end is derived from the start and a configured length.
type Period struct {
	startDate time.Time
	endDate   time.Time
	guard     guard.ConstructorGuard
}

// NewPeriod builds a Period. endDate must not be before startDate.
func NewPeriod(startDate, endDate time.Time) (Period, error) {
	if startDate.IsZero() {
		return Period{}, errs.NewValueIsRequiredError("startDate")
	}
	if endDate.Before(startDate) {
		return Period{}, errs.NewValueIsInvalidErrorWithCause(
			"endDate",
			fmt.Errorf("%s is before startDate %s", endDate.Format(time.RFC3339), startDate.Format(time.RFC3339)),
		)
	}

	return Period{
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewPeriodStartingAt returns the window [start, start+length].
func NewPeriodStartingAt(start time.Time, length time.Duration) (Period, error) {
	if length < 0 {
		return Period{}, errs.NewValueIsOutOfRangeError("length", length, time.Duration(0), time.Duration(1<<63-1))
	}
	return NewPeriod(start, start.Add(length))
}

// Validate reports whether the Period was built through NewPeriod.
func (p Period) Validate() error {
	return p.guard.Validate(ErrPeriodIsNotConstructed)
}

// StartDate returns the beginning of the window.
func (p Period) StartDate() time.Time {
	return p.startDate
}

// EndDate returns the end of the window.
func (p Period) EndDate() time.Time {
	return p.endDate
}

// Contains reports whether now falls before the end of the window.
// A window is considered open from its start until, but excluding, its end.
func (p Period) Contains(now time.Time) bool {
	return !now.Before(p.startDate) && now.Before(p.endDate)
}

// HasEnded reports whether now is at or after the end of the window.
func (p Period) HasEnded(now time.Time) bool {
	return !now.Before(p.endDate)
}

// String implements fmt.Stringer.
func (p Period) String() string {
	return fmt.Sprintf("[%s, %s]", p.startDate.Format(time.RFC3339), p.endDate.Format(time.RFC3339))
}
