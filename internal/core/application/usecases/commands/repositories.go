// Package commands contains the operations that modify lots. Every command
// follows the same pattern: a guarded command value, a handler that loads the
// lot inside a unit of work, asks the lot state machine for the change,
// stores it with an optimistic revision check, commits and then publishes
// the resulting events.
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

// ErrEventsNotPublished is returned together with the committed lot when the
// change was stored but its events could not be delivered.
var ErrEventsNotPublished = errors.New("change committed but events were not published")

type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LotRepoFactory provides access to the lot repository within a transaction.
	LotRepoFactory interface {
		LotRepository() ports.LotRepository
	}

	// LotUoW manages transactions for lot operations.
	LotUoW interface {
		TxManager
		LotRepoFactory
	}

	// LotUoWFactory creates new lot unit of work instances.
	LotUoWFactory interface {
		Create() LotUoW
	}
)

// lotMutation computes the change to one loaded lot.
type lotMutation func(current *lot.Lot, now time.Time) (services.Result, error)

// mutateLot loads a lot, applies mutate and stores the result guarded by the
// revision the lot was read at. A no-op result is not written. Events are
// published only after a successful commit.
func mutateLot(
	ctx context.Context,
	uowFactory LotUoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
	lotID kernel.UUID,
	mutate lotMutation,
) (*lot.Lot, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LotRepository()
	current, err := repo.Get(ctx, lotID)
	if err != nil {
		return nil, err
	}

	result, err := mutate(current, clock.Now())
	if err != nil {
		return nil, err
	}
	if !result.Changed {
		return result.Lot, nil
	}

	if err = repo.Update(ctx, result.Lot, current.Revision()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return result.Lot, publish(ctx, publisher, result.Events)
}

func publish(ctx context.Context, publisher ports.EventPublisher, events []lot.Event) error {
	if len(events) == 0 {
		return nil
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		return errors.Join(ErrEventsNotPublished, err)
	}
	return nil
}
