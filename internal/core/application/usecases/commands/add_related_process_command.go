package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrAddRelatedProcessCommandIsNotConstructed = errors.New(
	"AddRelatedProcessCommand must be created via NewAddRelatedProcessCommand constructor",
)

// AddRelatedProcessCommand links a lot to the asset it is built from.
type AddRelatedProcessCommand struct { //nolint:recvcheck //using for validation
	lotID    kernel.UUID
	process  lot.RelatedProcess
	identity lot.Identity

	guard guard.ConstructorGuard
}

func NewAddRelatedProcessCommand(
	lotID kernel.UUID,
	process lot.RelatedProcess,
	identity lot.Identity,
) (AddRelatedProcessCommand, error) {
	if err := errors.Join(lotID.Validate(), process.ID().Validate()); err != nil {
		return AddRelatedProcessCommand{}, err
	}

	return AddRelatedProcessCommand{
		lotID:    lotID,
		process:  process,
		identity: identity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddRelatedProcessCommand) Validate() error {
	return c.guard.Validate(ErrAddRelatedProcessCommandIsNotConstructed)
}

func (c AddRelatedProcessCommand) LotID() kernel.UUID                 { return c.lotID }
func (c AddRelatedProcessCommand) RelatedProcess() lot.RelatedProcess { return c.process }
func (c AddRelatedProcessCommand) Identity() lot.Identity             { return c.identity }
