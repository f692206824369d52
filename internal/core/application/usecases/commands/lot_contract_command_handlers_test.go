package commands_test

import (
	"testing"

	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var caravan = lot.Identity{User: "caravan"}

func newContract(t *testing.T) lot.Contract {
	t.Helper()
	c, err := lot.NewContract(kernel.NewUUID(), "UA-2026-07-14-000001-c1", kernel.NewUUID().Hex())
	require.NoError(t, err)
	return c
}

func TestNewPatchLotContractCommand_RejectsUnknownStatus(t *testing.T) {
	status := lot.ContractStatusUnknown

	_, err := commands.NewPatchLotContractCommand(kernel.NewUUID(), kernel.NewUUID(), lot.ContractPatch{Status: &status}, caravan)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddLotContractCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	current := storedLot(t, lot.ActiveContracting, nil, newLotDecision(t))
	contract := newContract(t)
	m := newLotHandlerMocks()

	cmd, err := commands.NewAddLotContractCommand(current.ID(), contract, caravan)
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("LotRepository").Return(m.repo).Once()
	m.repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	m.repo.On("Update", ctx, mock.MatchedBy(func(l *lot.Lot) bool { return len(l.Contracts()) == 1 }), 4).
		Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
	m.factory.On("Create").Return(m.uow).Once()
	m.publisher.On("Publish", ctx, mock.MatchedBy(func(events []lot.Event) bool {
		return len(events) == 1 && events[0].MessageID == lot.MessageLotContractCreate
	})).Return(nil).Once()

	handler := commands.NewAddLotContractCommandHandler(m.factory, newMachine(t), fixedClock{testNow}, m.publisher)

	// Act
	updated, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.Len(t, updated.Contracts(), 1)
	assert.Equal(t, lot.LotTypeLoki, updated.Contracts()[0].Type())
	m.assertExpectations(t)
}

func TestAddLotContractCommandHandler_Handle_OwnerIsForbidden(t *testing.T) {
	// Arrange
	ctx := t.Context()
	current := storedLot(t, lot.ActiveContracting, nil, newLotDecision(t))
	m := newLotHandlerMocks()

	cmd, err := commands.NewAddLotContractCommand(current.ID(), newContract(t), owner)
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("LotRepository").Return(m.repo).Once()
	m.repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
	m.factory.On("Create").Return(m.uow).Once()

	handler := commands.NewAddLotContractCommandHandler(m.factory, newMachine(t), fixedClock{testNow}, m.publisher)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrForbidden)
	m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestPatchLotContractCommandHandler_Handle_UnsuccessfulContractDissolvesLot(t *testing.T) {
	// Arrange
	ctx := t.Context()
	current := storedLot(t, lot.ActiveContracting, nil, newLotDecision(t))
	contract, err := current.AddContract(newContract(t))
	require.NoError(t, err)
	m := newLotHandlerMocks()

	status := lot.ContractUnsuccessful
	cmd, err := commands.NewPatchLotContractCommand(current.ID(), contract.ID(), lot.ContractPatch{Status: &status}, caravan)
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.uow.On("LotRepository").Return(m.repo).Once()
	m.repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	m.repo.On("Update", ctx, lotWith(current.ID(), lot.PendingDissolution), 4).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()
	m.factory.On("Create").Return(m.uow).Once()
	m.publisher.On("Publish", ctx, mock.MatchedBy(func(events []lot.Event) bool {
		return len(events) == 2 &&
			events[0].MessageID == "contract_status_unsuccessful" &&
			events[1].MessageID == lot.SwitchedLotMessageID(lot.PendingDissolution)
	})).Return(nil).Once()

	handler := commands.NewPatchLotContractCommandHandler(m.factory, newMachine(t), fixedClock{testNow}, m.publisher)

	// Act
	updated, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, lot.PendingDissolution, updated.Status())
	assert.Equal(t, lot.ContractUnsuccessful, updated.Contracts()[0].Status())
	m.assertExpectations(t)
}
