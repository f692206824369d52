package ports

import (
	"context"

	"lots/internal/core/domain/model/lot"
)

// EventPublisher delivers lot events after the change that produced them
// has been committed. Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, events ...lot.Event) error
}
