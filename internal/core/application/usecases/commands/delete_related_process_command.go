package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrDeleteRelatedProcessCommandIsNotConstructed = errors.New(
	"DeleteRelatedProcessCommand must be created via NewDeleteRelatedProcessCommand constructor",
)

type DeleteRelatedProcessCommand struct { //nolint:recvcheck //using for validation
	lotID     kernel.UUID
	processID kernel.UUID
	identity  lot.Identity

	guard guard.ConstructorGuard
}

func NewDeleteRelatedProcessCommand(
	lotID kernel.UUID,
	processID kernel.UUID,
	identity lot.Identity,
) (DeleteRelatedProcessCommand, error) {
	if err := errors.Join(lotID.Validate(), processID.Validate()); err != nil {
		return DeleteRelatedProcessCommand{}, err
	}

	return DeleteRelatedProcessCommand{
		lotID:     lotID,
		processID: processID,
		identity:  identity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRelatedProcessCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRelatedProcessCommandIsNotConstructed)
}

func (c DeleteRelatedProcessCommand) LotID() kernel.UUID     { return c.lotID }
func (c DeleteRelatedProcessCommand) ProcessID() kernel.UUID { return c.processID }
func (c DeleteRelatedProcessCommand) Identity() lot.Identity { return c.identity }
