package lot

import (
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// DefaultRectificationPeriodDuration is used when no duration is configured.
const DefaultRectificationPeriodDuration = 24 * time.Hour

// RectificationPolicy computes the waiting window a lot enters with
// "pending" and freezes content edits while that window is open.
type RectificationPolicy struct {
	duration time.Duration
}

// NewRectificationPolicy returns a policy with a fixed window length.
func NewRectificationPolicy(duration time.Duration) (RectificationPolicy, error) {
	if duration <= 0 {
		return RectificationPolicy{}, errs.NewValueIsOutOfRangeError(
			"rectification period duration", duration, time.Nanosecond, time.Duration(1<<63-1))
	}
	return RectificationPolicy{duration: duration}, nil
}

// Duration returns the configured window length.
func (p RectificationPolicy) Duration() time.Duration {
	return p.duration
}

// Start returns the window [now, now+duration].
func (p RectificationPolicy) Start(now time.Time) (kernel.Period, error) {
	return kernel.NewPeriodStartingAt(now, p.duration)
}

// IsActive reports whether rp is still open at now. A missing period is never active.
func (p RectificationPolicy) IsActive(rp *kernel.Period, now time.Time) bool {
	return rp != nil && now.Before(rp.EndDate())
}

// GuardContentEdit returns ErrRectificationPeriodActive when a content
// edit (documents, auction terms, decisions, descriptive fields) is
// attempted on a pending lot whose window is still open. Administrator is
// exempt.
func (p RectificationPolicy) GuardContentEdit(l *Lot, role Role, now time.Time) error {
	if role == Administrator || l.status != Pending {
		return nil
	}
	if p.IsActive(l.rectificationPeriod, now) {
		return ErrRectificationPeriodActive
	}
	return nil
}
