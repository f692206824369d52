package commands_test

import (
	"context"
	"testing"
	"time"

	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ownerToken = "0f9e8d7c6b5a49382716a5b4c3d2e1f0"

var (
	testNow = time.Date(2026, 7, 14, 15, 0, 0, 0, time.UTC)
	broker  = lot.Identity{User: "broker"}
	owner   = lot.Identity{User: "broker", Token: ownerToken}
)

type MockLotRepository struct{ mock.Mock }

func (m *MockLotRepository) Add(ctx context.Context, aggregate *lot.Lot) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockLotRepository) Update(ctx context.Context, aggregate *lot.Lot, expectedRevision int) error {
	args := m.Called(ctx, aggregate, expectedRevision)
	return args.Error(0)
}

func (m *MockLotRepository) Get(ctx context.Context, id kernel.UUID) (*lot.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lot.Lot), args.Error(1)
}

func (m *MockLotRepository) ListDueForCheck(ctx context.Context, now time.Time, limit int) ([]*lot.Lot, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lot.Lot), args.Error(1)
}

type MockLotUoW struct{ mock.Mock }

func (m *MockLotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLotUoW) LotRepository() ports.LotRepository {
	args := m.Called()
	return args.Get(0).(ports.LotRepository)
}

type MockLotUoWFactory struct{ mock.Mock }

func (m *MockLotUoWFactory) Create() commands.LotUoW {
	args := m.Called()
	return args.Get(0).(commands.LotUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...lot.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newMachine(t *testing.T) services.LotStateMachine {
	t.Helper()
	policy, err := lot.NewRectificationPolicy(24 * time.Hour)
	require.NoError(t, err)
	m, err := services.NewLotStateMachine(policy, 99)
	require.NoError(t, err)
	return m
}

func money(amount float64) *kernel.Money {
	m := kernel.MustNewMoney(amount, "UAH", true)
	return &m
}

func newRelatedProcess(t *testing.T) lot.RelatedProcess {
	t.Helper()
	rp, err := lot.NewRelatedProcess(kernel.NewUUID(), kernel.NewUUID().Hex(), "UA-AR-P-2026-07-14-000001-1")
	require.NoError(t, err)
	return rp
}

func newLotDecision(t *testing.T) lot.Decision {
	t.Helper()
	d, err := lot.NewDecision(kernel.NewUUID(), "Decision", "1/2026", testNow.AddDate(0, -1, 0), lot.DecisionOfLot, "")
	require.NoError(t, err)
	return d
}

// storedLot returns a lot as the repository would, with a full auction
// configuration and the given rectification window.
func storedLot(t *testing.T, status lot.Status, rectification *kernel.Period, decisions ...lot.Decision) *lot.Lot {
	t.Helper()
	seq, err := lot.NewAuctionSequence(lot.AuctionTerms{
		Value: money(1000), MinimalStep: money(50), Guarantee: money(100),
	}, 99)
	require.NoError(t, err)

	l, err := lot.RestoreLot(lot.RestoreLotParams{
		ID:                  kernel.NewUUID(),
		Status:              status,
		Title:               "Warehouse",
		LotType:             lot.LotTypeLoki,
		Owner:               "broker",
		OwnerToken:          ownerToken,
		RelatedProcesses:    []lot.RelatedProcess{newRelatedProcess(t)},
		Decisions:           decisions,
		Auctions:            seq,
		RectificationPeriod: rectification,
		DateCreated:         testNow.AddDate(0, 0, -3),
		DateModified:        testNow.AddDate(0, 0, -3),
		Revision:            4,
	})
	require.NoError(t, err)
	return l
}

func period(t *testing.T, start time.Time) *kernel.Period {
	t.Helper()
	p, err := kernel.NewPeriodStartingAt(start, 24*time.Hour)
	require.NoError(t, err)
	return &p
}

// lotWith matches a lot argument by id and status.
func lotWith(id kernel.UUID, status lot.Status) any {
	return mock.MatchedBy(func(l *lot.Lot) bool {
		return l.ID().IsEqual(id) && l.Status() == status
	})
}
