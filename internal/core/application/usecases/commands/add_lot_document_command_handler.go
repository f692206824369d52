package commands

import (
	"context"
	"time"

	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
)

type AddLotDocumentCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewAddLotDocumentCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) AddLotDocumentCommandHandler {
	return AddLotDocumentCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

func (h *AddLotDocumentCommandHandler) Handle(ctx context.Context, cmd AddLotDocumentCommand) (*lot.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateLot(ctx, h.uowFactory, h.clock, h.publisher, cmd.LotID(),
		func(current *lot.Lot, now time.Time) (services.Result, error) {
			role := lot.ResolveRole(cmd.Identity(), current)
			return h.machine.AddDocument(current, cmd.Document(), role, now)
		})
}
