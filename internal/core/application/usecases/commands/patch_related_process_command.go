package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrPatchRelatedProcessCommandIsNotConstructed = errors.New(
	"PatchRelatedProcessCommand must be created via NewPatchRelatedProcessCommand constructor",
)

// PatchRelatedProcessCommand edits one asset reference of a lot. Nil fields
// are left untouched.
type PatchRelatedProcessCommand struct { //nolint:recvcheck //using for validation
	lotID            kernel.UUID
	processID        kernel.UUID
	relatedProcessID *string
	identifier       *string
	identity         lot.Identity

	guard guard.ConstructorGuard
}

func NewPatchRelatedProcessCommand(
	lotID kernel.UUID,
	processID kernel.UUID,
	relatedProcessID *string,
	identifier *string,
	identity lot.Identity,
) (PatchRelatedProcessCommand, error) {
	if err := errors.Join(lotID.Validate(), processID.Validate()); err != nil {
		return PatchRelatedProcessCommand{}, err
	}

	return PatchRelatedProcessCommand{
		lotID:            lotID,
		processID:        processID,
		relatedProcessID: relatedProcessID,
		identifier:       identifier,
		identity:         identity,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c PatchRelatedProcessCommand) Validate() error {
	return c.guard.Validate(ErrPatchRelatedProcessCommandIsNotConstructed)
}

func (c PatchRelatedProcessCommand) LotID() kernel.UUID        { return c.lotID }
func (c PatchRelatedProcessCommand) ProcessID() kernel.UUID    { return c.processID }
func (c PatchRelatedProcessCommand) RelatedProcessID() *string { return c.relatedProcessID }
func (c PatchRelatedProcessCommand) Identifier() *string       { return c.identifier }
func (c PatchRelatedProcessCommand) Identity() lot.Identity    { return c.identity }
