package commands

import (
	"context"
	"errors"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
)

// CheckLotStatusesResult summarises one sweep.
type CheckLotStatusesResult struct {
	Checked  int
	Switched int
}

// CheckLotStatusesCommandHandler runs the chronograph over due lots. Each
// lot is switched in its own transaction, so a conflicting concurrent edit
// only skips that lot until the next sweep.
type CheckLotStatusesCommandHandler struct {
	uowFactory LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
}

func NewCheckLotStatusesCommandHandler(
	uowFactory LotUoWFactory,
	machine services.LotStateMachine,
	clock ports.Clock,
	publisher ports.EventPublisher,
) CheckLotStatusesCommandHandler {
	return CheckLotStatusesCommandHandler{
		uowFactory: uowFactory,
		machine:    machine,
		clock:      clock,
		publisher:  publisher,
	}
}

// Handle returns how many lots were looked at and switched. Errors of
// individual lots are joined; the sweep continues past them.
func (h *CheckLotStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd CheckLotStatusesCommand,
) (CheckLotStatusesResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckLotStatusesResult{}, err
	}

	due, err := h.dueLots(ctx, cmd.BatchSize())
	if err != nil {
		return CheckLotStatusesResult{}, err
	}

	var result CheckLotStatusesResult
	var sweepErr error
	for _, id := range due {
		if ctx.Err() != nil {
			return result, errors.Join(sweepErr, ctx.Err())
		}

		result.Checked++
		switched := false
		_, checkErr := mutateLot(ctx, h.uowFactory, h.clock, h.publisher, id,
			func(current *lot.Lot, now time.Time) (services.Result, error) {
				res, err := h.machine.CheckStatus(current, now)
				switched = err == nil && res.Changed
				return res, err
			})
		if switched && (checkErr == nil || errors.Is(checkErr, ErrEventsNotPublished)) {
			result.Switched++
		}
		sweepErr = errors.Join(sweepErr, checkErr)
	}

	return result, sweepErr
}

func (h *CheckLotStatusesCommandHandler) dueLots(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lots, err := uow.LotRepository().ListDueForCheck(ctx, h.clock.Now(), limit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(lots))
	for _, l := range lots {
		ids = append(ids, l.ID())
	}
	return ids, nil
}
