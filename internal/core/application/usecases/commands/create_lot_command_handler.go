package commands

import (
	"context"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
	"lots/internal/pkg/errs"
)

// CreateLotResult is returned once on creation. OwnerToken is never exposed
// again; the broker must send it back to act as the lot owner.
type CreateLotResult struct {
	Lot        *lot.Lot
	OwnerToken string
}

// CreateLotCommandHandler registers lots for brokers.
type CreateLotCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewCreateLotCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) CreateLotCommandHandler {
	return CreateLotCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

// Handle builds the lot in draft, creates its auction sequence and stores it.
// Only brokers may register lots; the registering broker becomes the owner.
func (h *CreateLotCommandHandler) Handle(ctx context.Context, cmd CreateLotCommand) (CreateLotResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateLotResult{}, err
	}

	role := lot.ResolveRole(cmd.Identity(), nil)
	if role != lot.Broker {
		return CreateLotResult{}, errs.NewForbiddenError(role.String() + " can't create lots")
	}

	now := h.clock.Now()
	token := kernel.NewUUID().Hex()
	draft, err := lot.NewLot(lot.NewLotParams{
		ID:             kernel.NewUUID(),
		Owner:          cmd.Identity().User,
		OwnerToken:     token,
		Title:          cmd.Title(),
		Description:    cmd.Description(),
		RelatedProcess: cmd.RelatedProcess(),
		Decisions:      cmd.Decisions(),
		Documents:      cmd.Documents(),
		Now:            now,
	})
	if err != nil {
		return CreateLotResult{}, err
	}

	result, err := h.machine.CreateAuctions(draft, cmd.AuctionTerms(), now)
	if err != nil {
		return CreateLotResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateLotResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LotRepository().Add(ctx, result.Lot); err != nil {
		return CreateLotResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateLotResult{}, err
	}

	created := lot.NewLotEvent(lot.MessageLotCreate, result.Lot.ID(), result.Lot.Status(), role, now)
	return CreateLotResult{Lot: result.Lot, OwnerToken: token},
		publish(ctx, h.publisher, []lot.Event{created})
}
