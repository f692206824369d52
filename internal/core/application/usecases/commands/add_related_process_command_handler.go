package commands

import (
	"context"
	"time"

	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
)

type AddRelatedProcessCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewAddRelatedProcessCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) AddRelatedProcessCommandHandler {
	return AddRelatedProcessCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

func (h *AddRelatedProcessCommandHandler) Handle(ctx context.Context, cmd AddRelatedProcessCommand) (*lot.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateLot(ctx, h.uowFactory, h.clock, h.publisher, cmd.LotID(),
		func(current *lot.Lot, now time.Time) (services.Result, error) {
			role := lot.ResolveRole(cmd.Identity(), current)
			return h.machine.AddRelatedProcess(current, cmd.RelatedProcess(), role, now)
		})
}
