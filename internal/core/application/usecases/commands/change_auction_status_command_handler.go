package commands

import (
	"context"
	"time"

	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
)

// ChangeAuctionStatusCommandHandler records auction outcomes and moves the
// lot along the auction cascade in the same transaction.
type ChangeAuctionStatusCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewChangeAuctionStatusCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) ChangeAuctionStatusCommandHandler {
	return ChangeAuctionStatusCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

func (h *ChangeAuctionStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeAuctionStatusCommand,
) (*lot.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateLot(ctx, h.uowFactory, h.clock, h.publisher, cmd.LotID(),
		func(current *lot.Lot, now time.Time) (services.Result, error) {
			role := lot.ResolveRole(cmd.Identity(), current)
			return h.machine.EvaluateAuctionChange(current, cmd.AuctionID(), cmd.Status(), role, now)
		})
}
