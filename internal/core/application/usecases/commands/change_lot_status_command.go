package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/pkg/guard"
)

var ErrChangeLotStatusCommandIsNotConstructed = errors.New(
	"ChangeLotStatusCommand must be created via NewChangeLotStatusCommand constructor",
)

// ChangeLotStatusCommand carries a lot patch: an optional status switch plus
// content edits that are validated together with it.
type ChangeLotStatusCommand struct { //nolint:recvcheck //using for validation
	lotID    kernel.UUID
	identity lot.Identity
	patch    services.LotPatch

	guard guard.ConstructorGuard
}

func NewChangeLotStatusCommand(
	lotID kernel.UUID,
	identity lot.Identity,
	patch services.LotPatch,
) (ChangeLotStatusCommand, error) {
	command := ChangeLotStatusCommand{
		identity: identity,
		patch:    patch,
		guard:    guard.NewConstructorGuard(),
	}

	if err := command.setLotID(lotID); err != nil {
		return ChangeLotStatusCommand{}, err
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return ChangeLotStatusCommand{}, err
		}
	}

	return command, nil
}

func (c ChangeLotStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeLotStatusCommandIsNotConstructed)
}

func (c ChangeLotStatusCommand) LotID() kernel.UUID       { return c.lotID }
func (c ChangeLotStatusCommand) Identity() lot.Identity   { return c.identity }
func (c ChangeLotStatusCommand) Patch() services.LotPatch { return c.patch }

func (c *ChangeLotStatusCommand) setLotID(lotID kernel.UUID) error {
	if err := lotID.Validate(); err != nil {
		return err
	}
	c.lotID = lotID
	return nil
}
