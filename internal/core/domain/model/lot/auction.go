package lot

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// AuctionStatus is the state of one auction in the lot's sequence.
//
//	scheduled ──> active ──┬──> complete
//	    │                  ├──> unsuccessful
//	    │                  └──> cancelled
//	    └──────────────────────> unsuccessful | cancelled
type AuctionStatus int

const (
	AuctionStatusUnknown AuctionStatus = iota
	AuctionScheduled
	AuctionActive
	AuctionComplete
	AuctionUnsuccessful
	AuctionCancelled
)

func getAuctionStatusStrings() map[AuctionStatus]string {
	return map[AuctionStatus]string{
		AuctionStatusUnknown: "unknown",
		AuctionScheduled:     "scheduled",
		AuctionActive:        "active",
		AuctionComplete:      "complete",
		AuctionUnsuccessful:  "unsuccessful",
		AuctionCancelled:     "cancelled",
	}
}

// ParseAuctionStatus maps a wire name to an AuctionStatus.
func ParseAuctionStatus(s string) (AuctionStatus, error) {
	for status, name := range getAuctionStatusStrings() {
		if status != AuctionStatusUnknown && name == s {
			return status, nil
		}
	}
	return AuctionStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"auction status", fmt.Errorf("%q is not an auction status", s))
}

// String returns the wire name, e.g. "active" or "cancelled".
func (s AuctionStatus) String() string {
	if str, ok := getAuctionStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate returns an error for AuctionStatusUnknown and out-of-range values.
func (s AuctionStatus) Validate() error {
	if s <= AuctionStatusUnknown || s > AuctionCancelled {
		return errs.NewValueIsInvalidErrorWithCause("auction status", fmt.Errorf("%d is not a valid auction status", s))
	}
	return nil
}

var auctionTransitions = map[AuctionStatus][]AuctionStatus{
	AuctionScheduled: {AuctionScheduled, AuctionActive, AuctionUnsuccessful, AuctionCancelled},
	AuctionActive:    {AuctionActive, AuctionComplete, AuctionUnsuccessful, AuctionCancelled},
	// concluded auctions accept only a no-op patch
	AuctionComplete:     {AuctionComplete},
	AuctionUnsuccessful: {AuctionUnsuccessful},
	AuctionCancelled:    {AuctionCancelled},
}

// CanBecome reports whether an auction in s may be switched to next.
func (s AuctionStatus) CanBecome(next AuctionStatus) bool {
	return slices.Contains(auctionTransitions[s], next)
}

const (
	ProcurementMethodEnglish = "sellout.english"
	ProcurementMethodInsider = "sellout.insider"

	AuctionTypeEnglish = "english"
	AuctionTypeInsider = "insider"

	// AuctionCount is the size of a lot's auction sequence.
	AuctionCount = 3

	DutchStepsMin = 1
	DutchStepsMax = 100
)

// Auction is one step of the three-auction sequence owned by a lot.
// Position is defined by tenderAttempts (1..3), not by slice index.
type Auction struct {
	id                    kernel.UUID
	tenderAttempts        int
	status                AuctionStatus
	procurementMethodType string
	auctionType           string
	dutchSteps            *int
	value                 *kernel.Money
	minimalStep           *kernel.Money
	guarantee             *kernel.Money
	registrationFee       *kernel.Money
	tenderingDuration     *kernel.Duration
	auctionPeriodStart    *time.Time
}

// AuctionTerms carries the editable terms of an auction. Nil fields are
// left untouched by Apply.
type AuctionTerms struct {
	Value                  *kernel.Money
	MinimalStep            *kernel.Money
	Guarantee              *kernel.Money
	RegistrationFee        *kernel.Money
	TenderingDuration      *kernel.Duration
	AuctionPeriodStartDate *time.Time
	DutchSteps             *int
}

// NewAuctionSequence builds the english, english, insider triple in
// scheduled status. english holds the terms of the first auction; the second
// and third auctions receive derived terms. The insider auction gets
// defaultDutchSteps.
func NewAuctionSequence(english AuctionTerms, defaultDutchSteps int) ([]*Auction, error) {
	if english.TenderingDuration != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"tenderingDuration", errors.New("first english auction has no tenderingDuration"))
	}
	if english.DutchSteps != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"dutchSteps", errors.New("dutchSteps can be filled only for the insider auction"))
	}
	if err := validateDutchSteps(defaultDutchSteps); err != nil {
		return nil, err
	}

	steps := defaultDutchSteps
	auctions := []*Auction{
		newAuction(1, ProcurementMethodEnglish, AuctionTypeEnglish, nil),
		newAuction(2, ProcurementMethodEnglish, AuctionTypeEnglish, nil),
		newAuction(3, ProcurementMethodInsider, AuctionTypeInsider, &steps),
	}
	if err := auctions[0].Apply(english); err != nil {
		return nil, err
	}

	DeriveAuctionTerms(auctions)
	return auctions, nil
}

func newAuction(tenderAttempts int, procurementMethodType, auctionType string, dutchSteps *int) *Auction {
	return &Auction{
		id:                    kernel.NewUUID(),
		tenderAttempts:        tenderAttempts,
		status:                AuctionScheduled,
		procurementMethodType: procurementMethodType,
		auctionType:           auctionType,
		dutchSteps:            dutchSteps,
	}
}

// RestoreAuctionParams holds the persisted state of an auction.
type RestoreAuctionParams struct {
	ID                    kernel.UUID
	TenderAttempts        int
	Status                AuctionStatus
	ProcurementMethodType string
	AuctionType           string
	DutchSteps            *int
	Value                 *kernel.Money
	MinimalStep           *kernel.Money
	Guarantee             *kernel.Money
	RegistrationFee       *kernel.Money
	TenderingDuration     *kernel.Duration
	AuctionPeriodStart    *time.Time
}

// RestoreAuction rebuilds an auction from storage.
func RestoreAuction(p RestoreAuctionParams) (*Auction, error) {
	if err := errors.Join(p.ID.Validate(), p.Status.Validate()); err != nil {
		return nil, err
	}
	if p.TenderAttempts < 1 || p.TenderAttempts > AuctionCount {
		return nil, errs.NewValueIsOutOfRangeError("tenderAttempts", p.TenderAttempts, 1, AuctionCount)
	}

	return &Auction{
		id:                    p.ID,
		tenderAttempts:        p.TenderAttempts,
		status:                p.Status,
		procurementMethodType: p.ProcurementMethodType,
		auctionType:           p.AuctionType,
		dutchSteps:            cloneInt(p.DutchSteps),
		value:                 p.Value,
		minimalStep:           p.MinimalStep,
		guarantee:             p.Guarantee,
		registrationFee:       p.RegistrationFee,
		tenderingDuration:     p.TenderingDuration,
		auctionPeriodStart:    cloneTime(p.AuctionPeriodStart),
	}, nil
}

// ID returns the auction id, unique within the lot.
func (a *Auction) ID() kernel.UUID { return a.id }

// TenderAttempts is the auction's position in the sequence: 1 and 2 for the
// english auctions, 3 for the insider one.
func (a *Auction) TenderAttempts() int { return a.tenderAttempts }

// Status returns the current auction status.
func (a *Auction) Status() AuctionStatus { return a.status }

// ProcurementMethodType is sellout.english or sellout.insider.
func (a *Auction) ProcurementMethodType() string { return a.procurementMethodType }

// AuctionType is "english" or "insider".
func (a *Auction) AuctionType() string { return a.auctionType }

// DutchSteps returns a copy of the insider auction's step count, nil for the
// english auctions.
func (a *Auction) DutchSteps() *int { return cloneInt(a.dutchSteps) }

// Value is the starting price, nil until set.
func (a *Auction) Value() *kernel.Money { return a.value }

func (a *Auction) MinimalStep() *kernel.Money { return a.minimalStep }

// Guarantee is the deposit bidders pay to take part.
func (a *Auction) Guarantee() *kernel.Money { return a.guarantee }

func (a *Auction) RegistrationFee() *kernel.Money { return a.registrationFee }

// TenderingDuration is the ISO 8601 bidding period. The second and third
// auctions share one value.
//
// Example:
//
//	d, _ := kernel.ParseDuration("P30D")
//	_ = first.Apply(lot.AuctionTerms{TenderingDuration: &d})
//	first.TenderingDuration().String() // "P30D"
func (a *Auction) TenderingDuration() *kernel.Duration { return a.tenderingDuration }

// AuctionPeriodStart returns a copy of the planned start time, nil when the
// auction is not scheduled yet.
func (a *Auction) AuctionPeriodStart() *time.Time { return cloneTime(a.auctionPeriodStart) }

// IsInsider reports whether this is the closing insider (dutch) auction.
func (a *Auction) IsInsider() bool {
	return a.procurementMethodType == ProcurementMethodInsider
}

// Apply validates terms against this auction's position and copies the
// non-nil ones in. Financial terms given for the second or third auction are
// accepted but overwritten by the next DeriveAuctionTerms call.
func (a *Auction) Apply(terms AuctionTerms) error {
	var err error
	if terms.TenderingDuration != nil && a.tenderAttempts == 1 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"tenderingDuration", errors.New("first english auction has no tenderingDuration")))
	}
	if terms.DutchSteps != nil {
		if !a.IsInsider() {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"dutchSteps", errors.New("dutchSteps can be filled only for the insider auction")))
		} else {
			err = errors.Join(err, validateDutchSteps(*terms.DutchSteps))
		}
	}
	for _, field := range []struct {
		name  string
		money *kernel.Money
	}{
		{"value", terms.Value},
		{"minimalStep", terms.MinimalStep},
		{"guarantee", terms.Guarantee},
		{"registrationFee", terms.RegistrationFee},
	} {
		if field.money == nil {
			continue
		}
		if vErr := field.money.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(field.name, vErr))
		}
	}
	if terms.TenderingDuration != nil {
		err = errors.Join(err, terms.TenderingDuration.Validate())
	}
	if err != nil {
		return err
	}

	if terms.Value != nil {
		a.value = terms.Value
	}
	if terms.MinimalStep != nil {
		a.minimalStep = terms.MinimalStep
	}
	if terms.Guarantee != nil {
		a.guarantee = terms.Guarantee
	}
	if terms.RegistrationFee != nil {
		a.registrationFee = terms.RegistrationFee
	}
	if terms.TenderingDuration != nil {
		a.tenderingDuration = terms.TenderingDuration
	}
	if terms.AuctionPeriodStartDate != nil {
		a.auctionPeriodStart = cloneTime(terms.AuctionPeriodStartDate)
	}
	if terms.DutchSteps != nil {
		a.dutchSteps = cloneInt(terms.DutchSteps)
	}
	return nil
}

func (a *Auction) clone() *Auction {
	c := *a
	c.dutchSteps = cloneInt(a.dutchSteps)
	c.auctionPeriodStart = cloneTime(a.auctionPeriodStart)
	return &c
}

// SortAuctions returns auctions ordered by tenderAttempts.
func SortAuctions(auctions []*Auction) []*Auction {
	sorted := slices.Clone(auctions)
	slices.SortStableFunc(sorted, func(x, y *Auction) int { return x.tenderAttempts - y.tenderAttempts })
	return sorted
}

// DeriveAuctionTerms recomputes the second and third auctions from the
// first one: value, minimalStep, guarantee and registrationFee become half of
// the first auction's amounts (minimalStep is zero for the insider auction)
// and the insider auction takes the second auction's tenderingDuration.
// Terms missing on the first auction are left as they are.
func DeriveAuctionTerms(auctions []*Auction) {
	if len(auctions) != AuctionCount {
		return
	}
	sorted := SortAuctions(auctions)
	english, second, insider := sorted[0], sorted[1], sorted[2]

	for _, a := range []*Auction{second, insider} {
		if english.value != nil {
			a.value = half(english.value)
		}
		if english.guarantee != nil {
			a.guarantee = half(english.guarantee)
		}
		if english.registrationFee != nil {
			a.registrationFee = half(english.registrationFee)
		}
		if english.minimalStep != nil {
			if a.IsInsider() {
				zero := english.minimalStep.Zero()
				a.minimalStep = &zero
			} else {
				a.minimalStep = half(english.minimalStep)
			}
		}
	}
	insider.tenderingDuration = second.tenderingDuration
}

func half(m *kernel.Money) *kernel.Money {
	if m == nil {
		return nil
	}
	h := m.Half()
	return &h
}

// ValidateAuctionsComplete checks that a lot's auctions are ready for
// verification: three auctions, value, minimalStep and guarantee present on
// each, and a shared tenderingDuration on the second and third.
func ValidateAuctionsComplete(auctions []*Auction) error {
	if len(auctions) != AuctionCount {
		return &IncompleteAuctionConfigurationError{Fields: []string{"auctions"}}
	}

	var missing []string
	sorted := SortAuctions(auctions)
	for i, a := range sorted {
		prefix := fmt.Sprintf("auctions[%d].", i)
		if a.value == nil {
			missing = append(missing, prefix+"value")
		}
		if a.minimalStep == nil {
			missing = append(missing, prefix+"minimalStep")
		}
		if a.guarantee == nil {
			missing = append(missing, prefix+"guarantee")
		}
	}

	second, insider := sorted[1], sorted[2]
	switch {
	case second.tenderingDuration == nil:
		missing = append(missing, "auctions[1].tenderingDuration")
	case insider.tenderingDuration == nil:
		missing = append(missing, "auctions[2].tenderingDuration")
	case !second.tenderingDuration.IsEqual(*insider.tenderingDuration):
		missing = append(missing, "auctions[1..2].tenderingDuration")
	}

	if len(missing) > 0 {
		return &IncompleteAuctionConfigurationError{Fields: missing}
	}
	return nil
}

func validateDutchSteps(steps int) error {
	if steps < DutchStepsMin || steps > DutchStepsMax {
		return errs.NewValueIsOutOfRangeError("dutchSteps", steps, DutchStepsMin, DutchStepsMax)
	}
	return nil
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
