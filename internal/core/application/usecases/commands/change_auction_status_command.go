package commands

import (
	"errors"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/guard"
)

var ErrChangeAuctionStatusCommandIsNotConstructed = errors.New(
	"ChangeAuctionStatusCommand must be created via NewChangeAuctionStatusCommand constructor",
)

// ChangeAuctionStatusCommand switches one auction of a lot, typically sent
// by the auction module (convoy) when an auction starts or ends.
type ChangeAuctionStatusCommand struct { //nolint:recvcheck //using for validation
	lotID     kernel.UUID
	auctionID kernel.UUID
	status    lot.AuctionStatus
	identity  lot.Identity

	guard guard.ConstructorGuard
}

func NewChangeAuctionStatusCommand(
	lotID, auctionID kernel.UUID,
	status lot.AuctionStatus,
	identity lot.Identity,
) (ChangeAuctionStatusCommand, error) {
	if err := errors.Join(lotID.Validate(), auctionID.Validate(), status.Validate()); err != nil {
		return ChangeAuctionStatusCommand{}, err
	}

	return ChangeAuctionStatusCommand{
		lotID:     lotID,
		auctionID: auctionID,
		status:    status,
		identity:  identity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeAuctionStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAuctionStatusCommandIsNotConstructed)
}

func (c ChangeAuctionStatusCommand) LotID() kernel.UUID        { return c.lotID }
func (c ChangeAuctionStatusCommand) AuctionID() kernel.UUID    { return c.auctionID }
func (c ChangeAuctionStatusCommand) Status() lot.AuctionStatus { return c.status }
func (c ChangeAuctionStatusCommand) Identity() lot.Identity    { return c.identity }
