package commands

import (
	"context"
	"time"

	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
)

// ChangeLotStatusCommandHandler applies lot patches. The caller's role is
// resolved against the stored lot, so a broker holding the owner token acts
// as the lot owner.
type ChangeLotStatusCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewChangeLotStatusCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) ChangeLotStatusCommandHandler {
	return ChangeLotStatusCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

// Handle returns the lot as stored after the patch. A patch that changes
// nothing is not written.
func (h *ChangeLotStatusCommandHandler) Handle(ctx context.Context, cmd ChangeLotStatusCommand) (*lot.Lot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateLot(ctx, h.uowFactory, h.clock, h.publisher, cmd.LotID(),
		func(current *lot.Lot, now time.Time) (services.Result, error) {
			role := lot.ResolveRole(cmd.Identity(), current)
			return h.machine.RequestTransition(current, cmd.Patch(), role, now)
		})
}
