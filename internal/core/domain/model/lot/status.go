package lot

import (
	"fmt"

	"lots/internal/pkg/errs"
)

// Status is the lifecycle state of a lot.
//
// Lifecycle:
//
//	draft ──> composing ──> verification ──┬──> pending ──┬──> active.salable <──┐
//	                                       │              │         │            │ (retry)
//	                                       └──> invalid   │         v            │
//	                                                      │   active.auction ────┤
//	                                                      v         │            │
//	                                           pending.deleted      v            v
//	                                                 │      active.contracting ──> pending.dissolution ──> dissolved
//	                                                 v              │
//	                                              deleted           v
//	                                                          pending.sold ──> sold
//
// deleted, invalid, sold and dissolved are terminal.
type Status int

const (
	// Unknown is the zero value and never a valid status.
	Unknown Status = iota
	Draft
	Composing
	Verification
	Pending
	PendingDeleted
	Deleted
	Invalid
	ActiveSalable
	ActiveAuction
	ActiveContracting
	PendingDissolution
	PendingSold
	Sold
	Dissolved
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Draft:              "draft",
		Composing:          "composing",
		Verification:       "verification",
		Pending:            "pending",
		PendingDeleted:     "pending.deleted",
		Deleted:            "deleted",
		Invalid:            "invalid",
		ActiveSalable:      "active.salable",
		ActiveAuction:      "active.auction",
		ActiveContracting:  "active.contracting",
		PendingDissolution: "pending.dissolution",
		PendingSold:        "pending.sold",
		Sold:               "sold",
		Dissolved:          "dissolved",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		Draft, Composing, Verification, Pending, PendingDeleted, Deleted, Invalid,
		ActiveSalable, ActiveAuction, ActiveContracting, PendingDissolution, PendingSold, Sold, Dissolved,
	}
}

// ParseStatus maps the wire name of a status ("active.salable") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a lot status", s))
}

// Validate returns an error for Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Dissolved {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no role may move a lot out of this status.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // only terminal statuses are listed
	case Deleted, Invalid, Sold, Dissolved:
		return true
	default:
		return false
	}
}

// AcceptsContentEdits reports whether title, description, decisions and
// auction terms may still change in this status.
func (s Status) AcceptsContentEdits() bool {
	return s == Draft || s == Composing || s == Pending
}

// AcceptsDocuments reports whether documents may be attached in this status.
func (s Status) AcceptsDocuments() bool {
	return s == Draft || s == Composing || s == Verification || s == Pending
}
