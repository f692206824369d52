package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrAddLotContractCommandIsNotConstructed = errors.New(
	"AddLotContractCommand must be created via NewAddLotContractCommand constructor",
)

// AddLotContractCommand attaches the sale contract reported by the
// contracting system to a lot in active.contracting.
type AddLotContractCommand struct { //nolint:recvcheck //using for validation
	lotID    kernel.UUID
	contract lot.Contract
	identity lot.Identity

	guard guard.ConstructorGuard
}

func NewAddLotContractCommand(
	lotID kernel.UUID,
	contract lot.Contract,
	identity lot.Identity,
) (AddLotContractCommand, error) {
	if err := errors.Join(lotID.Validate(), contract.ID().Validate()); err != nil {
		return AddLotContractCommand{}, err
	}

	return AddLotContractCommand{
		lotID:    lotID,
		contract: contract,
		identity: identity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddLotContractCommand) Validate() error {
	return c.guard.Validate(ErrAddLotContractCommandIsNotConstructed)
}

func (c AddLotContractCommand) LotID() kernel.UUID     { return c.lotID }
func (c AddLotContractCommand) Contract() lot.Contract { return c.contract }
func (c AddLotContractCommand) Identity() lot.Identity { return c.identity }
