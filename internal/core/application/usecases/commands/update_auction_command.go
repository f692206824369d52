package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrUpdateAuctionCommandIsNotConstructed = errors.New(
	"UpdateAuctionCommand must be created via NewUpdateAuctionCommand constructor",
)

// UpdateAuctionCommand edits the terms of one auction of a lot.
type UpdateAuctionCommand struct { //nolint:recvcheck //using for validation
	lotID     kernel.UUID
	auctionID kernel.UUID
	terms     lot.AuctionTerms
	identity  lot.Identity

	guard guard.ConstructorGuard
}

func NewUpdateAuctionCommand(
	lotID, auctionID kernel.UUID,
	terms lot.AuctionTerms,
	identity lot.Identity,
) (UpdateAuctionCommand, error) {
	if err := errors.Join(lotID.Validate(), auctionID.Validate()); err != nil {
		return UpdateAuctionCommand{}, err
	}

	return UpdateAuctionCommand{
		lotID:     lotID,
		auctionID: auctionID,
		terms:     terms,
		identity:  identity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAuctionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAuctionCommandIsNotConstructed)
}

func (c UpdateAuctionCommand) LotID() kernel.UUID      { return c.lotID }
func (c UpdateAuctionCommand) AuctionID() kernel.UUID  { return c.auctionID }
func (c UpdateAuctionCommand) Terms() lot.AuctionTerms { return c.terms }
func (c UpdateAuctionCommand) Identity() lot.Identity  { return c.identity }
