package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes the reads and revision-checked writes of one command to
// a single database transaction. Begin on an open unit is a no-op.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open. Calling it after a
	// successful Commit is allowed and returns an error the caller may drop.
	Rollback(ctx context.Context) error

	// LotRepository is bound to the open transaction, or to the plain
	// connection before Begin.
	LotRepository() LotRepository
}
