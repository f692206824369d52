package commands

import (
	"errors"

	"lots/internal/pkg/errs"
	"lots/internal/pkg/guard"
)

// DefaultCheckBatchSize bounds the number of lots one sweep looks at.
const DefaultCheckBatchSize = 100

var ErrCheckLotStatusesCommandIsNotConstructed = errors.New(
	"CheckLotStatusesCommand must be created via NewCheckLotStatusesCommand constructor",
)

// CheckLotStatusesCommand is the periodic chronograph sweep: every pending
// lot whose rectification period has ended goes on sale.
type CheckLotStatusesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewCheckLotStatusesCommand(batchSize int) (CheckLotStatusesCommand, error) {
	if batchSize <= 0 {
		return CheckLotStatusesCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "unbounded")
	}

	return CheckLotStatusesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *CheckLotStatusesCommand) Validate() error {
	return c.guard.Validate(ErrCheckLotStatusesCommandIsNotConstructed)
}

func (c *CheckLotStatusesCommand) BatchSize() int {
	return c.batchSize
}
