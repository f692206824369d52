package services

import (
	"fmt"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"
)

// ErrChronographPatchHasContent is returned when the chronograph sends
// anything but a status switch.
var ErrChronographPatchHasContent = errs.NewForbiddenError("chronograph can only switch the lot status")

// LotPatch is a requested change to a lot. Nil fields are left untouched.
type LotPatch struct {
	Status              *lot.Status
	Title               *string
	Description         *string
	Decisions           *[]lot.Decision
	Documents           []lot.Document
	RectificationPeriod *kernel.Period
}

func (p LotPatch) hasContent() bool {
	return p.Title != nil || p.Description != nil || p.Decisions != nil ||
		len(p.Documents) > 0 || p.RectificationPeriod != nil
}

// Result is the outcome of a state machine operation. Lot is the updated
// snapshot; when Changed is false it equals the input and nothing needs to
// be stored. Events describe what happened, in order.
//
// Example:
//
//	res, err := machine.RequestTransition(current, patch, lot.Owner, now)
//	if err != nil || !res.Changed {
//		return current, err
//	}
//	store(res.Lot)
//	publish(res.Events)
type Result struct {
	Lot *lot.Lot
	// Changed is false for patches that repeat the stored state.
	Changed bool
	// Events are ready to publish once Lot is stored.
	Events []lot.Event
}

// LotStateMachine validates and applies changes to lots. Every operation
// works on a clone of the given lot and returns it in Result; on error the
// input lot is left exactly as it was.
//
// LotStateMachine holds only read-only configuration and is safe for
// concurrent use.
type LotStateMachine struct {
	table             lot.TransitionTable
	rectification     lot.RectificationPolicy
	cascade           lot.CascadeEvaluator
	defaultDutchSteps int
}

// NewLotStateMachine builds a state machine over the default transition table.
//
// Parameters:
//   - rectification: window applied when a lot becomes pending
//   - defaultDutchSteps: dutch steps given to a new insider auction (1..100)
func NewLotStateMachine(rectification lot.RectificationPolicy, defaultDutchSteps int) (LotStateMachine, error) {
	if rectification.Duration() <= 0 {
		return LotStateMachine{}, errs.NewValueIsRequiredError("rectification policy")
	}
	if defaultDutchSteps < lot.DutchStepsMin || defaultDutchSteps > lot.DutchStepsMax {
		return LotStateMachine{}, errs.NewValueIsOutOfRangeError(
			"defaultDutchSteps", defaultDutchSteps, lot.DutchStepsMin, lot.DutchStepsMax)
	}

	return LotStateMachine{
		table:             lot.DefaultTransitionTable(),
		rectification:     rectification,
		defaultDutchSteps: defaultDutchSteps,
	}, nil
}

// RequestTransition applies a lot patch on behalf of role.
//
// Steps:
//  1. the (current status, requested status, role) triple must be in the transition table
//  2. content edits are checked against the lot status and the rectification window;
//     a patch that also switches status is exempt from the window
//  3. composing -> verification requires a complete auction configuration
//  4. entering pending requires a decision and opens the rectification period
//  5. entering pending.deleted requires a cancellationDetails document
//
// The chronograph may switch pending -> active.salable only once the
// rectification period has ended; earlier requests succeed without change.
func (m LotStateMachine) RequestTransition(
	current *lot.Lot,
	patch LotPatch,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}

	from := current.Status()
	target := from
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return Result{}, err
		}
		target = *patch.Status
	}

	if err := m.table.Check(from, target, role); err != nil {
		return Result{}, err
	}

	if role == lot.Chronograph {
		if patch.hasContent() {
			return Result{}, ErrChronographPatchHasContent
		}
		if target == lot.ActiveSalable && !m.rectificationEnded(current, now) {
			return Result{Lot: current.Clone()}, nil
		}
	}

	next := current.Clone()
	statusChange := target != from

	changed, events, err := m.applyContent(next, patch, role, statusChange, now)
	if err != nil {
		return Result{}, err
	}

	if statusChange {
		var event lot.Event
		event, err = m.switchStatus(next, from, target, role, now)
		if err != nil {
			return Result{}, err
		}
		events = append(events, event)
		changed = true
	}

	if changed {
		next.Touch(now)
	}
	return Result{Lot: next, Changed: changed, Events: events}, nil
}

// CheckStatus is the chronograph poll for one lot: a pending lot whose
// rectification period has ended becomes active.salable. Lots in any other
// status, or still inside the window, are returned unchanged.
func (m LotStateMachine) CheckStatus(current *lot.Lot, now time.Time) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}
	if current.Status() != lot.Pending {
		return Result{Lot: current.Clone()}, nil
	}
	target := lot.ActiveSalable
	return m.RequestTransition(current, LotPatch{Status: &target}, lot.Chronograph, now)
}

// EvaluateAuctionChange switches one auction's status and applies the
// cascade to the lot.
func (m LotStateMachine) EvaluateAuctionChange(
	current *lot.Lot,
	auctionID kernel.UUID,
	to lot.AuctionStatus,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}

	auction, err := findAuction(current, auctionID)
	if err != nil {
		return Result{}, err
	}
	if !canManageAuctions(role) ||
		(current.Status() != lot.ActiveSalable && current.Status() != lot.ActiveAuction) {
		return Result{}, &lot.ForbiddenTransitionError{
			Subject: "auction", From: auction.Status().String(), To: to.String(), Role: role,
		}
	}

	next := current.Clone()
	var events []lot.Event
	changed := false

	from, err := next.ChangeAuctionStatus(auctionID, to, role)
	if err != nil {
		return Result{}, err
	}
	if from != to {
		events = append(events, lot.NewAuctionStatusChangedEvent(next.ID(), auctionID, from, to, role, now))
		changed = true
	}

	if previous, cascaded := next.ApplyCascade(m.cascade); cascaded {
		events = append(events, lot.NewStatusChangedEvent(next.ID(), previous, next.Status(), role, now))
		changed = true
	}

	if changed {
		next.Touch(now)
	}
	return Result{Lot: next, Changed: changed, Events: events}, nil
}

// CreateAuctions installs the english, english, insider sequence with terms
// of the first auction, deriving the other two.
func (m LotStateMachine) CreateAuctions(current *lot.Lot, english lot.AuctionTerms, now time.Time) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}
	if current.Status() != lot.Draft && current.Status() != lot.Composing {
		return Result{}, errs.NewForbiddenError(
			fmt.Sprintf("can't create auctions in current (%s) lot status", current.Status()))
	}

	auctions, err := lot.NewAuctionSequence(english, m.defaultDutchSteps)
	if err != nil {
		return Result{}, err
	}

	next := current.Clone()
	if err = next.SetAuctions(auctions); err != nil {
		return Result{}, err
	}
	next.Touch(now)
	return Result{Lot: next, Changed: true}, nil
}

// UpdateAuction edits the terms of one auction. The rest of the sequence is
// re-derived from the first auction.
func (m LotStateMachine) UpdateAuction(
	current *lot.Lot,
	auctionID kernel.UUID,
	terms lot.AuctionTerms,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}
	if role != lot.Owner && role != lot.Administrator {
		return Result{}, errs.NewForbiddenError(role.String() + " can't update auctions")
	}
	if !current.Status().AcceptsContentEdits() {
		return Result{}, errs.NewForbiddenError(
			fmt.Sprintf("can't update auction in current (%s) lot status", current.Status()))
	}
	if err := m.rectification.GuardContentEdit(current, role, now); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	if err := next.UpdateAuctionTerms(auctionID, terms); err != nil {
		return Result{}, err
	}
	next.Touch(now)

	event := lot.NewLotEvent(lot.MessageAuctionTermsUpdated, next.ID(), next.Status(), role, now)
	id := auctionID
	event.AuctionID = &id
	return Result{Lot: next, Changed: true, Events: []lot.Event{event}}, nil
}

// AddDocument attaches document metadata to the lot.
func (m LotStateMachine) AddDocument(current *lot.Lot, doc lot.Document, role lot.Role, now time.Time) (Result, error) {
	if err := current.Validate(); err != nil {
		return Result{}, err
	}
	if role != lot.Owner && role != lot.Administrator {
		return Result{}, errs.NewForbiddenError(role.String() + " can't add documents")
	}
	if !current.Status().AcceptsDocuments() {
		return Result{}, errs.NewForbiddenError(
			fmt.Sprintf("can't add document in current (%s) lot status", current.Status()))
	}
	if err := m.rectification.GuardContentEdit(current, role, now); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	if err := next.AttachDocument(doc); err != nil {
		return Result{}, err
	}
	next.Touch(now)
	return Result{
		Lot:     next,
		Changed: true,
		Events:  []lot.Event{lot.NewLotEvent(lot.MessageLotDocumentAttached, next.ID(), next.Status(), role, now)},
	}, nil
}

func (m LotStateMachine) applyContent(
	next *lot.Lot,
	patch LotPatch,
	role lot.Role,
	statusChange bool,
	now time.Time,
) (bool, []lot.Event, error) {
	if !patch.hasContent() {
		return false, nil, nil
	}
	if !statusChange {
		if err := m.rectification.GuardContentEdit(next, role, now); err != nil {
			return false, nil, err
		}
	}

	status := next.Status()
	changed := false
	var events []lot.Event

	if patch.Title != nil || patch.Description != nil {
		if !status.AcceptsContentEdits() || !canEditDetails(role) {
			return false, nil, errs.NewForbiddenError(
				fmt.Sprintf("%s can't edit lot in current (%s) status", role, status))
		}
		detailsChanged, err := next.UpdateDetails(patch.Title, patch.Description)
		if err != nil {
			return false, nil, err
		}
		if detailsChanged {
			events = append(events, lot.NewLotEvent(lot.MessageLotDescriptionModified, next.ID(), status, role, now))
			changed = true
		}
	}

	if patch.Decisions != nil {
		if !status.AcceptsContentEdits() && status != lot.Verification {
			return false, nil, errs.NewForbiddenError(
				fmt.Sprintf("can't update decisions in current (%s) lot status", status))
		}
		decisionsChanged, err := next.ReplaceDecisions(*patch.Decisions, role)
		if err != nil {
			return false, nil, err
		}
		if decisionsChanged {
			events = append(events, lot.NewLotEvent(lot.MessageLotDecisionsReplaced, next.ID(), status, role, now))
			changed = true
		}
	}

	if len(patch.Documents) > 0 {
		if !status.AcceptsDocuments() {
			return false, nil, errs.NewForbiddenError(
				fmt.Sprintf("can't add document in current (%s) lot status", status))
		}
		for _, doc := range patch.Documents {
			if err := next.AttachDocument(doc); err != nil {
				return false, nil, err
			}
			events = append(events, lot.NewLotEvent(lot.MessageLotDocumentAttached, next.ID(), status, role, now))
		}
		changed = true
	}

	if patch.RectificationPeriod != nil {
		if err := next.OverrideRectificationPeriod(*patch.RectificationPeriod, role); err != nil {
			return false, nil, err
		}
		events = append(events, lot.NewLotEvent(lot.MessageRectificationOverride, next.ID(), status, role, now))
		changed = true
	}

	return changed, events, nil
}

func (m LotStateMachine) switchStatus(
	next *lot.Lot,
	from, target lot.Status,
	role lot.Role,
	now time.Time,
) (lot.Event, error) {
	switch target { //nolint:exhaustive // only guarded targets are listed
	case lot.Verification:
		if from == lot.Composing {
			if err := lot.ValidateAuctionsComplete(next.Auctions()); err != nil {
				return lot.Event{}, err
			}
		}
	case lot.Pending:
		if !next.HasDecisions() {
			return lot.Event{}, lot.ErrDecisionsRequired
		}
		period, err := m.rectification.Start(now)
		if err != nil {
			return lot.Event{}, err
		}
		if _, err = next.StartRectificationPeriod(period); err != nil {
			return lot.Event{}, err
		}
	case lot.PendingDeleted:
		if !next.HasCancellationDocument() {
			return lot.Event{}, lot.ErrCancellationDocumentRequired
		}
	}

	if err := next.ChangeStatus(target, role, m.table); err != nil {
		return lot.Event{}, err
	}
	return lot.NewStatusChangedEvent(next.ID(), from, target, role, now), nil
}

func (m LotStateMachine) rectificationEnded(l *lot.Lot, now time.Time) bool {
	rp := l.RectificationPeriod()
	return rp != nil && rp.HasEnded(now)
}

func findAuction(l *lot.Lot, id kernel.UUID) (*lot.Auction, error) {
	for _, a := range l.Auctions() {
		if a.ID().IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("auction", id.String())
}

func canManageAuctions(role lot.Role) bool {
	return role == lot.Convoy || role == lot.Concierge || role == lot.Administrator
}

func canEditDetails(role lot.Role) bool {
	return role == lot.Owner || role == lot.Administrator
}

// IsNoop reports whether r carries neither a change nor events.
func (r Result) IsNoop() bool {
	return !r.Changed && len(r.Events) == 0
}
