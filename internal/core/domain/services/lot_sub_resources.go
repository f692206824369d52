package services

import (
	"fmt"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"
)

// AddContract attaches a sale contract to a lot in active.contracting.
// The contract takes the lot type.
func (m LotStateMachine) AddContract(current *lot.Lot, contract lot.Contract, role lot.Role, now time.Time) (Result, error) {
	if err := m.guardContracts(current, role); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	added, err := next.AddContract(contract)
	if err != nil {
		return Result{}, err
	}
	next.Touch(now)
	return Result{
		Lot:     next,
		Changed: true,
		Events: []lot.Event{
			lot.NewContractEvent(lot.MessageLotContractCreate, next.ID(), added.ID(), next.Status(), role, now),
		},
	}, nil
}

// PatchContract edits one contract and settles the lot when the contracts
// are concluded.
//
// A contract status switch is reported as contract_status_<status>, any
// other change as lot_contract_patch. A settled lot additionally reports
// switched_lot_pending.sold or switched_lot_pending.dissolution.
func (m LotStateMachine) PatchContract(
	current *lot.Lot,
	contractID kernel.UUID,
	patch lot.ContractPatch,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := m.guardContracts(current, role); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	from, changed, err := next.PatchContract(contractID, patch, role)
	if err != nil {
		return Result{}, err
	}
	if !changed {
		return Result{Lot: next}, nil
	}

	var events []lot.Event
	patched, _ := next.Contract(contractID)
	if patched.Status() != from {
		events = append(events, lot.NewContractStatusChangedEvent(next.ID(), contractID, from, patched.Status(), role, now))
	} else {
		events = append(events, lot.NewContractEvent(lot.MessageLotContractPatch, next.ID(), contractID, next.Status(), role, now))
	}

	if previous, settled := next.ApplyContractOutcome(); settled {
		events = append(events, lot.NewStatusChangedEvent(next.ID(), previous, next.Status(), role, now))
	}

	next.Touch(now)
	return Result{Lot: next, Changed: true, Events: events}, nil
}

// AddRelatedProcess links the lot to the asset it is built from.
func (m LotStateMachine) AddRelatedProcess(
	current *lot.Lot,
	process lot.RelatedProcess,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := m.guardRelatedProcesses(current, role, now); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	if err := next.AddRelatedProcess(process); err != nil {
		return Result{}, err
	}
	next.Touch(now)
	return Result{
		Lot:     next,
		Changed: true,
		Events: []lot.Event{
			lot.NewRelatedProcessEvent(lot.MessageRelatedProcessCreate, next.ID(), process.ID(), next.Status(), role, now),
		},
	}, nil
}

// PatchRelatedProcess replaces the non-nil fields of one asset reference.
func (m LotStateMachine) PatchRelatedProcess(
	current *lot.Lot,
	processID kernel.UUID,
	relatedProcessID, identifier *string,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := m.guardRelatedProcesses(current, role, now); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	changed, err := next.PatchRelatedProcess(processID, relatedProcessID, identifier)
	if err != nil {
		return Result{}, err
	}
	if !changed {
		return Result{Lot: next}, nil
	}
	next.Touch(now)
	return Result{
		Lot:     next,
		Changed: true,
		Events: []lot.Event{
			lot.NewRelatedProcessEvent(lot.MessageRelatedProcessPatch, next.ID(), processID, next.Status(), role, now),
		},
	}, nil
}

// DeleteRelatedProcess unlinks one asset reference.
func (m LotStateMachine) DeleteRelatedProcess(
	current *lot.Lot,
	processID kernel.UUID,
	role lot.Role,
	now time.Time,
) (Result, error) {
	if err := m.guardRelatedProcesses(current, role, now); err != nil {
		return Result{}, err
	}

	next := current.Clone()
	if err := next.DeleteRelatedProcess(processID); err != nil {
		return Result{}, err
	}
	next.Touch(now)
	return Result{
		Lot:     next,
		Changed: true,
		Events: []lot.Event{
			lot.NewRelatedProcessEvent(lot.MessageRelatedProcessDelete, next.ID(), processID, next.Status(), role, now),
		},
	}, nil
}

func (m LotStateMachine) guardContracts(current *lot.Lot, role lot.Role) error {
	if err := current.Validate(); err != nil {
		return err
	}
	if role != lot.Caravan && role != lot.Convoy && role != lot.Administrator {
		return errs.NewForbiddenError(role.String() + " can't manage contracts")
	}
	if current.Status() != lot.ActiveContracting {
		return errs.NewForbiddenError(
			fmt.Sprintf("can't manage contracts in current (%s) lot status", current.Status()))
	}
	return nil
}

// guardRelatedProcesses checks who may touch the asset references:
//   - Owner while the lot accepts content edits
//   - Concierge during verification
//   - Administrator in both cases
//
// In pending the rectification window applies as for any content edit.
func (m LotStateMachine) guardRelatedProcesses(current *lot.Lot, role lot.Role, now time.Time) error {
	if err := current.Validate(); err != nil {
		return err
	}
	status := current.Status()
	allowed := false
	switch role { //nolint:exhaustive // remaining roles can't manage related processes
	case lot.Owner:
		allowed = status.AcceptsContentEdits()
	case lot.Concierge:
		allowed = status == lot.Verification
	case lot.Administrator:
		allowed = status.AcceptsContentEdits() || status == lot.Verification
	}
	if !allowed {
		return errs.NewForbiddenError(
			fmt.Sprintf("%s can't manage related processes in current (%s) lot status", role, status))
	}
	return m.rectification.GuardContentEdit(current, role, now)
}
