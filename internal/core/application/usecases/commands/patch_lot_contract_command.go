package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrPatchLotContractCommandIsNotConstructed = errors.New(
	"PatchLotContractCommand must be created via NewPatchLotContractCommand constructor",
)

// PatchLotContractCommand edits one contract of a lot. Concluding the
// contracts settles the lot.
type PatchLotContractCommand struct { //nolint:recvcheck //using for validation
	lotID      kernel.UUID
	contractID kernel.UUID
	patch      lot.ContractPatch
	identity   lot.Identity

	guard guard.ConstructorGuard
}

func NewPatchLotContractCommand(
	lotID kernel.UUID,
	contractID kernel.UUID,
	patch lot.ContractPatch,
	identity lot.Identity,
) (PatchLotContractCommand, error) {
	err := errors.Join(lotID.Validate(), contractID.Validate())
	if patch.Status != nil {
		err = errors.Join(err, patch.Status.Validate())
	}
	if err != nil {
		return PatchLotContractCommand{}, err
	}

	return PatchLotContractCommand{
		lotID:      lotID,
		contractID: contractID,
		patch:      patch,
		identity:   identity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c PatchLotContractCommand) Validate() error {
	return c.guard.Validate(ErrPatchLotContractCommandIsNotConstructed)
}

func (c PatchLotContractCommand) LotID() kernel.UUID       { return c.lotID }
func (c PatchLotContractCommand) ContractID() kernel.UUID  { return c.contractID }
func (c PatchLotContractCommand) Patch() lot.ContractPatch { return c.patch }
func (c PatchLotContractCommand) Identity() lot.Identity   { return c.identity }
