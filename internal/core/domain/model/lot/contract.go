package lot

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// ContractStatus is the state of a sale contract signed after the auction.
//
//	scheduled ──> active ──┬──> complete
//	    │                  └──> unsuccessful
//	    └──────────────────────> unsuccessful
type ContractStatus int

const (
	ContractStatusUnknown ContractStatus = iota
	ContractScheduled
	ContractActive
	ContractComplete
	ContractUnsuccessful
)

func getContractStatusStrings() map[ContractStatus]string {
	return map[ContractStatus]string{
		ContractStatusUnknown: "unknown",
		ContractScheduled:     "scheduled",
		ContractActive:        "active",
		ContractComplete:      "complete",
		ContractUnsuccessful:  "unsuccessful",
	}
}

// ParseContractStatus maps a wire name to a ContractStatus.
func ParseContractStatus(s string) (ContractStatus, error) {
	for status, name := range getContractStatusStrings() {
		if status != ContractStatusUnknown && name == s {
			return status, nil
		}
	}
	return ContractStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"contract status", fmt.Errorf("%q is not a contract status", s))
}

// String returns the wire name, e.g. "scheduled".
func (s ContractStatus) String() string {
	if str, ok := getContractStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate returns an error for ContractStatusUnknown and out-of-range values.
func (s ContractStatus) Validate() error {
	if s <= ContractStatusUnknown || s > ContractUnsuccessful {
		return errs.NewValueIsInvalidErrorWithCause("contract status", fmt.Errorf("%d is not a valid contract status", s))
	}
	return nil
}

var contractTransitions = map[ContractStatus][]ContractStatus{
	ContractScheduled:    {ContractScheduled, ContractActive, ContractUnsuccessful},
	ContractActive:       {ContractActive, ContractComplete, ContractUnsuccessful},
	ContractComplete:     {ContractComplete},
	ContractUnsuccessful: {ContractUnsuccessful},
}

// CanBecome reports whether a contract in s may be switched to next.
func (s ContractStatus) CanBecome(next ContractStatus) bool {
	return slices.Contains(contractTransitions[s], next)
}

// IsConcluded reports whether s is complete or unsuccessful.
func (s ContractStatus) IsConcluded() bool {
	return s == ContractComplete || s == ContractUnsuccessful
}

// Contract is the sale contract of a lot. Its type always equals the lot type
// and is assigned when the contract is attached.
type Contract struct {
	id               kernel.UUID
	contractID       string
	relatedProcessID string
	contractType     string
	status           ContractStatus
}

// NewContract builds a scheduled contract. contractID is the contract's
// identifier in the contracting system, relatedProcessID the auction it
// resulted from.
func NewContract(id kernel.UUID, contractID, relatedProcessID string) (Contract, error) {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if strings.TrimSpace(contractID) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("contractID"))
	}
	if err != nil {
		return Contract{}, err
	}

	return Contract{
		id:               id,
		contractID:       contractID,
		relatedProcessID: relatedProcessID,
		status:           ContractScheduled,
	}, nil
}

// RestoreContractParams is the persisted state of a contract.
type RestoreContractParams struct {
	ID               kernel.UUID
	ContractID       string
	RelatedProcessID string
	Type             string
	Status           ContractStatus
}

// RestoreContract rebuilds a contract from storage.
func RestoreContract(p RestoreContractParams) (Contract, error) {
	if err := errors.Join(p.ID.Validate(), p.Status.Validate()); err != nil {
		return Contract{}, err
	}
	return Contract{
		id:               p.ID,
		contractID:       p.ContractID,
		relatedProcessID: p.RelatedProcessID,
		contractType:     p.Type,
		status:           p.Status,
	}, nil
}

// ID returns the contract id, unique within the lot.
func (c Contract) ID() kernel.UUID { return c.id }

// ContractID returns the identifier assigned by the contracting system.
func (c Contract) ContractID() string { return c.contractID }

// RelatedProcessID is the auction procedure the contract resulted from. It
// may be empty.
func (c Contract) RelatedProcessID() string { return c.relatedProcessID }

// Type is the lot type the contract was attached to, "loki" for every lot
// in this registry.
func (c Contract) Type() string { return c.contractType }

// Status returns the contract status. A complete contract sells the lot.
func (c Contract) Status() ContractStatus { return c.status }

// ContractPatch is a requested change to a contract. Nil fields are left
// untouched.
type ContractPatch struct {
	ContractID       *string
	RelatedProcessID *string
	Status           *ContractStatus
}

// apply returns the patched contract and whether anything changed.
func (c Contract) apply(patch ContractPatch, role Role) (Contract, bool, error) {
	next := c
	if patch.ContractID != nil {
		if strings.TrimSpace(*patch.ContractID) == "" {
			return c, false, errs.NewValueIsRequiredError("contractID")
		}
		next.contractID = *patch.ContractID
	}
	if patch.RelatedProcessID != nil {
		next.relatedProcessID = *patch.RelatedProcessID
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return c, false, err
		}
		if !c.status.CanBecome(*patch.Status) {
			return c, false, newForbiddenContractTransition(c.status, *patch.Status, role)
		}
		next.status = *patch.Status
	}
	return next, next != c, nil
}
