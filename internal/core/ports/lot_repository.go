// Package ports defines the contracts between the lot domain and its
// infrastructure: persistence, transactions, time and event delivery.
package ports

import (
	"context"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
)

// LotRepository defines the persistence contract for lot aggregates.
type LotRepository interface {
	// Add persists a new lot at revision 1.
	Add(ctx context.Context, aggregate *lot.Lot) error

	// Update persists a changed lot. The write succeeds only when the stored
	// revision still equals expectedRevision; otherwise an *errs.ConflictError
	// is returned and nothing is written. On success the aggregate's revision
	// is advanced.
	Update(ctx context.Context, aggregate *lot.Lot, expectedRevision int) error

	// Get retrieves a lot with its auctions, decisions and documents.
	// Returns *errs.ObjectNotFoundError when no lot has the id.
	Get(ctx context.Context, id kernel.UUID) (*lot.Lot, error)

	// ListDueForCheck returns pending lots whose rectification period has
	// ended at now, oldest first.
	ListDueForCheck(ctx context.Context, now time.Time, limit int) ([]*lot.Lot, error)
}
