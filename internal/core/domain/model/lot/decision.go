package lot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// MaxDecisions is the largest number of decisions a lot may hold.
const MaxDecisions = 2

// DecisionOf tells whether a decision was taken about the lot itself or
// copied from the underlying asset.
type DecisionOf int

const (
	DecisionOfUnknown DecisionOf = iota
	DecisionOfLot
	DecisionOfAsset
)

// ParseDecisionOf maps "lot" or "asset" to a DecisionOf. An empty string means lot.
func ParseDecisionOf(s string) (DecisionOf, error) {
	switch s {
	case "", "lot":
		return DecisionOfLot, nil
	case "asset":
		return DecisionOfAsset, nil
	default:
		return DecisionOfUnknown, errs.NewValueIsInvalidErrorWithCause(
			"decisionOf", fmt.Errorf("%q is not one of lot, asset", s))
	}
}

// String returns "lot", "asset" or "unknown".
func (d DecisionOf) String() string {
	switch d { //nolint:exhaustive // unknown falls through to default
	case DecisionOfLot:
		return "lot"
	case DecisionOfAsset:
		return "asset"
	default:
		return "unknown"
	}
}

// Decision is an administrative determination that authorises the sale.
type Decision struct {
	id           kernel.UUID
	title        string
	decisionID   string
	decisionDate time.Time
	decisionOf   DecisionOf
	relatedItem  string
}

// NewDecision validates and builds a decision. relatedItem is dropped for
// lot-origin decisions.
func NewDecision(
	id kernel.UUID,
	title, decisionID string,
	decisionDate time.Time,
	decisionOf DecisionOf,
	relatedItem string,
) (Decision, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(decisionID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("decisionID"))
	}
	if decisionDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("decisionDate"))
	}
	if decisionOf != DecisionOfLot && decisionOf != DecisionOfAsset {
		err = errors.Join(err, errs.NewValueIsInvalidError("decisionOf"))
	}
	if err != nil {
		return Decision{}, err
	}

	if decisionOf == DecisionOfLot {
		relatedItem = ""
	}
	return Decision{
		id:           id,
		title:        title,
		decisionID:   decisionID,
		decisionDate: decisionDate,
		decisionOf:   decisionOf,
		relatedItem:  relatedItem,
	}, nil
}

// ID returns the decision id, unique within the lot.
func (d Decision) ID() kernel.UUID { return d.id }

func (d Decision) Title() string { return d.title }

// DecisionID is the number of the administrative act, e.g. "12/2026".
func (d Decision) DecisionID() string { return d.decisionID }

// DecisionDate is the date the act was signed.
func (d Decision) DecisionDate() time.Time { return d.decisionDate }

// DecisionOf tells whether the decision belongs to the lot or its asset.
func (d Decision) DecisionOf() DecisionOf { return d.decisionOf }

// RelatedItem is the asset id an asset decision was copied from. It is
// always empty for lot decisions.
func (d Decision) RelatedItem() string { return d.relatedItem }

// IsEqual compares every field of two decisions.
func (d Decision) IsEqual(other Decision) bool {
	return d.id.IsEqual(other.id) &&
		d.title == other.title &&
		d.decisionID == other.decisionID &&
		d.decisionDate.Equal(other.decisionDate) &&
		d.decisionOf == other.decisionOf &&
		d.relatedItem == other.relatedItem
}

// validateDecisions enforces the lot-level limits: at most MaxDecisions
// and at most one asset decision.
func validateDecisions(decisions []Decision) error {
	if len(decisions) > MaxDecisions {
		return errs.NewValueIsOutOfRangeError("decisions", len(decisions), 0, MaxDecisions)
	}
	assets := 0
	for _, d := range decisions {
		if d.decisionOf == DecisionOfAsset {
			assets++
		}
	}
	if assets > 1 {
		return errs.NewValueIsInvalidErrorWithCause("decisions", errors.New("can't add more than one asset decision to lot"))
	}
	return nil
}

func assetDecision(decisions []Decision) (Decision, bool) {
	for _, d := range decisions {
		if d.decisionOf == DecisionOfAsset {
			return d, true
		}
	}
	return Decision{}, false
}
