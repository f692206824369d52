package lot

import (
	"errors"
	"fmt"
	"strings"

	"lots/internal/pkg/errs"
)

var (
	// ErrLotIsNotConstructed is returned when a Lot was not built through NewLot or RestoreLot.
	ErrLotIsNotConstructed = errors.New("Lot must be created via NewLot or RestoreLot")

	ErrForbiddenTransition            = errors.New("forbidden transition")
	ErrIncompleteAuctionConfiguration = errors.New("incomplete auction configuration")
	ErrDecisionsRequired              = errors.New("can't switch to pending while decisions not available")
	ErrCancellationDocumentRequired   = errors.New(
		"you can set deleted status only when lot have at least one document with 'cancellationDetails' documentType")
	ErrRectificationPeriodActive = errors.New("lot content can't be changed while the rectification period is active")
)

// ForbiddenTransitionError reports a (from, to, role) combination that the
// transition rules do not allow. Subject is "lot", "auction" or "contract".
type ForbiddenTransitionError struct {
	Subject string
	From    string
	To      string
	Role    Role
}

func newForbiddenLotTransition(from, to Status, role Role) *ForbiddenTransitionError {
	return &ForbiddenTransitionError{Subject: "lot", From: from.String(), To: to.String(), Role: role}
}

func newForbiddenAuctionTransition(from, to AuctionStatus, role Role) *ForbiddenTransitionError {
	return &ForbiddenTransitionError{Subject: "auction", From: from.String(), To: to.String(), Role: role}
}

func newForbiddenContractTransition(from, to ContractStatus, role Role) *ForbiddenTransitionError {
	return &ForbiddenTransitionError{Subject: "contract", From: from.String(), To: to.String(), Role: role}
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("%s: %s can't switch %s from %s to %s", ErrForbiddenTransition, e.Role, e.Subject, e.From, e.To)
}

func (e *ForbiddenTransitionError) Unwrap() error {
	return ErrForbiddenTransition
}

// IncompleteAuctionConfigurationError names the auction fields that block
// verification, e.g. "auctions[1].tenderingDuration".
type IncompleteAuctionConfigurationError struct {
	Fields []string
}

func (e *IncompleteAuctionConfigurationError) Error() string {
	return fmt.Sprintf("%s: these fields are empty or inconsistent %s",
		ErrIncompleteAuctionConfiguration, strings.Join(e.Fields, ", "))
}

func (e *IncompleteAuctionConfigurationError) Unwrap() error {
	return ErrIncompleteAuctionConfiguration
}

// ErrorKind identifies a class of failure independently of its message.
type ErrorKind string

const (
	KindForbiddenTransition            ErrorKind = "ForbiddenTransition"
	KindIncompleteAuctionConfiguration ErrorKind = "IncompleteAuctionConfiguration"
	KindDecisionsRequired              ErrorKind = "DecisionsRequired"
	KindCancellationDocumentRequired   ErrorKind = "CancellationDocumentRequired"
	KindRectificationPeriodActive      ErrorKind = "RectificationPeriodActive"
	KindConflict                       ErrorKind = "Conflict"
	KindForbidden                      ErrorKind = "Forbidden"
	KindValidation                     ErrorKind = "ValidationError"
	KindNotFound                       ErrorKind = "NotFound"
	KindInternal                       ErrorKind = "Internal"
)

// KindOf classifies err. Joined errors are classified by the first
// recognised member.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrForbiddenTransition):
		return KindForbiddenTransition
	case errors.Is(err, ErrIncompleteAuctionConfiguration):
		return KindIncompleteAuctionConfiguration
	case errors.Is(err, ErrDecisionsRequired):
		return KindDecisionsRequired
	case errors.Is(err, ErrCancellationDocumentRequired):
		return KindCancellationDocumentRequired
	case errors.Is(err, ErrRectificationPeriodActive):
		return KindRectificationPeriodActive
	case errors.Is(err, errs.ErrConflict):
		return KindConflict
	case errors.Is(err, errs.ErrForbidden):
		return KindForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}
