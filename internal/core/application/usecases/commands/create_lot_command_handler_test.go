package commands_test

import (
	"errors"
	"testing"

	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateLotCommand(t *testing.T, identity lot.Identity) commands.CreateLotCommand {
	t.Helper()
	cmd, err := commands.NewCreateLotCommand(commands.CreateLotParams{
		Identity:       identity,
		Title:          "Warehouse in Kyiv",
		Description:    "Two storey warehouse",
		RelatedProcess: newRelatedProcess(t),
		Decisions:      []lot.Decision{newLotDecision(t)},
		AuctionTerms:   lot.AuctionTerms{Value: money(1000), MinimalStep: money(50)},
	})
	require.NoError(t, err)
	return cmd
}

func TestCreateLotCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := newCreateLotCommand(t, broker)

	repo := new(MockLotRepository)
	uow := new(MockLotUoW)
	factory := new(MockLotUoWFactory)
	publisher := new(MockEventPublisher)

	var added *lot.Lot
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LotRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*lot.Lot")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*lot.Lot) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(events []lot.Event) bool {
		return len(events) == 1 && events[0].MessageID == lot.MessageLotCreate && events[0].Role == lot.Broker
	})).Return(nil).Once()

	handler := commands.NewCreateLotCommandHandler(factory, newMachine(t), fixedClock{testNow}, publisher)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Lot)
	assert.Same(t, added, result.Lot)
	assert.Equal(t, lot.Draft, result.Lot.Status())
	assert.Equal(t, "broker", result.Lot.Owner())
	assert.Len(t, result.OwnerToken, 32)
	assert.Equal(t, result.OwnerToken, result.Lot.OwnerToken())
	assert.Equal(t, testNow, result.Lot.DateCreated())

	auctions := result.Lot.Auctions()
	require.Len(t, auctions, lot.AuctionCount)
	assert.InDelta(t, 500, auctions[1].Value().Amount(), 0)
	assert.InDelta(t, 0, auctions[2].MinimalStep().Amount(), 0)
	assert.Equal(t, 99, *auctions[2].DutchSteps())

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateLotCommandHandler_Handle_RoleNotAllowed(t *testing.T) {
	others := []lot.Identity{
		{User: "administrator"}, {User: "concierge"}, {User: "convoy"}, {User: "caravan"}, {User: "chronograph"}, {User: "someone"},
	}
	for _, identity := range others {
		t.Run(identity.User, func(t *testing.T) {
			factory := new(MockLotUoWFactory)
			handler := commands.NewCreateLotCommandHandler(factory, newMachine(t), fixedClock{testNow}, new(MockEventPublisher))

			_, err := handler.Handle(t.Context(), newCreateLotCommand(t, identity))

			require.ErrorIs(t, err, errs.ErrForbidden)
			assert.Equal(t, lot.KindForbidden, lot.KindOf(err))
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateLotCommandHandler_Handle_InvalidAuctionTerms(t *testing.T) {
	// Arrange
	steps := 10
	cmd, err := commands.NewCreateLotCommand(commands.CreateLotParams{
		Identity:       broker,
		Title:          "Warehouse",
		RelatedProcess: newRelatedProcess(t),
		AuctionTerms:   lot.AuctionTerms{DutchSteps: &steps},
	})
	require.NoError(t, err)

	factory := new(MockLotUoWFactory)
	handler := commands.NewCreateLotCommandHandler(factory, newMachine(t), fixedClock{testNow}, new(MockEventPublisher))

	// Act
	_, err = handler.Handle(t.Context(), cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateLotCommandHandler_Handle_RepositoryError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	dbErr := errors.New("connection reset")

	repo := new(MockLotRepository)
	uow := new(MockLotUoW)
	factory := new(MockLotUoWFactory)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LotRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.Anything).Return(dbErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateLotCommandHandler(factory, newMachine(t), fixedClock{testNow}, publisher)

	// Act
	_, err := handler.Handle(ctx, newCreateLotCommand(t, broker))

	// Assert
	require.ErrorIs(t, err, dbErr)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateLotCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewCreateLotCommandHandler(new(MockLotUoWFactory), newMachine(t), fixedClock{testNow}, new(MockEventPublisher))

	_, err := handler.Handle(t.Context(), commands.CreateLotCommand{})

	require.ErrorIs(t, err, commands.ErrCreateLotCommandIsNotConstructed)
}
