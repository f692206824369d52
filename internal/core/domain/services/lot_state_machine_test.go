package services_test

import (
	"testing"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoles = []lot.Role{
	lot.Anonymous, lot.Broker, lot.Owner, lot.Administrator, lot.Concierge, lot.Convoy, lot.Chronograph, lot.Caravan,
}

func TestNewLotStateMachine(t *testing.T) {
	policy, _ := lot.NewRectificationPolicy(time.Hour)

	_, err := services.NewLotStateMachine(lot.RectificationPolicy{}, 99)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = services.NewLotStateMachine(policy, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = services.NewLotStateMachine(policy, 100)
	require.NoError(t, err)
}

func TestLotStateMachine_RequestTransition_ForbiddenCombinations(t *testing.T) {
	m := newMachine(t)
	table := lot.DefaultTransitionTable()

	for _, from := range lot.Statuses() {
		for _, role := range allRoles {
			for _, to := range lot.Statuses() {
				if table.IsAllowed(from, to, role) {
					continue
				}
				l := restoreLot(t, lotState{
					status:        from,
					decisions:     []lot.Decision{newDecision(t, lot.DecisionOfLot)},
					documents:     []lot.Document{newDocument(t, lot.DocumentTypeCancellationDetails)},
					rectification: closedRectification(t),
				})
				before := takeSnapshot(l)

				res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(to)}, role, testNow)

				require.ErrorIs(t, err, lot.ErrForbiddenTransition, "%s: %s -> %s", role, from, to)
				assert.Equal(t, lot.KindForbiddenTransition, lot.KindOf(err))
				assert.Nil(t, res.Lot)
				assert.Equal(t, before, takeSnapshot(l), "%s: %s -> %s must leave the lot unchanged", role, from, to)
			}
		}
	}
}

func TestLotStateMachine_RequestTransition_TerminalStatusesRejectNoopPatch(t *testing.T) {
	m := newMachine(t)

	for _, status := range []lot.Status{lot.Deleted, lot.Invalid, lot.Sold, lot.Dissolved} {
		for _, role := range allRoles {
			l := restoreLot(t, lotState{status: status})

			_, err := m.RequestTransition(l, services.LotPatch{}, role, testNow)

			require.ErrorIs(t, err, lot.ErrForbiddenTransition, "%s in %s", role, status)
		}
	}
}

func TestLotStateMachine_Chronograph(t *testing.T) {
	m := newMachine(t)
	decisions := []lot.Decision{newDecision(t, lot.DecisionOfLot)}

	t.Run("before the end of the rectification period the lot stays pending", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.ActiveSalable)}, lot.Chronograph, testNow)

		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Empty(t, res.Events)
		assert.Equal(t, lot.Pending, res.Lot.Status())
		assert.Equal(t, l.DateModified(), res.Lot.DateModified())
	})

	t.Run("at the end of the rectification period the lot becomes salable", func(t *testing.T) {
		rp := openRectification(t)
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: rp})

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.ActiveSalable)}, lot.Chronograph, rp.EndDate())

		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, lot.ActiveSalable, res.Lot.Status())
		assert.Equal(t, rp.EndDate(), res.Lot.DateModified())
		require.Len(t, res.Events, 1)
		assert.Equal(t, "switched_lot_active.salable", res.Events[0].MessageID)
		assert.Equal(t, lot.Chronograph, res.Events[0].Role)
		assert.Equal(t, lot.Pending, l.Status(), "input lot is never modified")
	})

	t.Run("repeated polls are idempotent", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})

		first, err := m.CheckStatus(l, testNow)
		require.NoError(t, err)
		second, err := m.CheckStatus(first.Lot, testNow.Add(time.Minute))
		require.NoError(t, err)

		assert.True(t, first.IsNoop())
		assert.True(t, second.IsNoop())
		assert.Equal(t, lot.Pending, second.Lot.Status())

		after, err := m.CheckStatus(second.Lot, testNow.Add(rectDuration))
		require.NoError(t, err)
		assert.Equal(t, lot.ActiveSalable, after.Lot.Status())

		again, err := m.CheckStatus(after.Lot, testNow.Add(2*rectDuration))
		require.NoError(t, err)
		assert.True(t, again.IsNoop())
		assert.Equal(t, lot.ActiveSalable, again.Lot.Status())
	})

	t.Run("chronograph can't edit content", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: closedRectification(t)})
		title := "changed"

		_, err := m.RequestTransition(l, services.LotPatch{Title: &title}, lot.Chronograph, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLotStateMachine_CreateAuctions(t *testing.T) {
	m := newMachine(t)
	l := newDraftLot(t)

	res, err := m.CreateAuctions(l, lot.AuctionTerms{Value: money(100), MinimalStep: money(10)}, testNow)

	require.NoError(t, err)
	assert.True(t, res.Changed)
	auctions := res.Lot.Auctions()
	require.Len(t, auctions, 3)
	assert.InDelta(t, 50, auctions[1].Value().Amount(), 0)
	assert.InDelta(t, 50, auctions[2].Value().Amount(), 0)
	assert.InDelta(t, 0, auctions[2].MinimalStep().Amount(), 0)
	assert.Empty(t, l.Auctions(), "input lot is never modified")

	t.Run("all or nothing", func(t *testing.T) {
		_, err := m.CreateAuctions(res.Lot, lot.AuctionTerms{}, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("not after composing", func(t *testing.T) {
		_, err := m.CreateAuctions(restoreLot(t, lotState{status: lot.Pending, noAuctions: true}), lot.AuctionTerms{}, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLotStateMachine_RoundTripToVerification(t *testing.T) {
	m := newMachine(t)

	created, err := m.CreateAuctions(newDraftLot(t), lot.AuctionTerms{Value: money(100)}, testNow)
	require.NoError(t, err)
	composing, err := m.RequestTransition(created.Lot, services.LotPatch{Status: statusPtr(lot.Composing)}, lot.Owner, testNow)
	require.NoError(t, err)
	toVerification := services.LotPatch{Status: statusPtr(lot.Verification)}

	_, err = m.RequestTransition(composing.Lot, toVerification, lot.Owner, testNow)
	var incomplete *lot.IncompleteAuctionConfigurationError
	require.ErrorAs(t, err, &incomplete)
	assert.Contains(t, incomplete.Fields, "auctions[0].minimalStep")
	assert.Contains(t, incomplete.Fields, "auctions[0].guarantee")
	assert.Contains(t, incomplete.Fields, "auctions[1].tenderingDuration")

	auctions := composing.Lot.Auctions()
	step1, err := m.UpdateAuction(composing.Lot, auctions[0].ID(),
		lot.AuctionTerms{MinimalStep: money(10), Guarantee: money(20)}, lot.Owner, testNow)
	require.NoError(t, err)

	_, err = m.RequestTransition(step1.Lot, toVerification, lot.Owner, testNow)
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{"auctions[1].tenderingDuration"}, incomplete.Fields)

	step2, err := m.UpdateAuction(step1.Lot, auctions[1].ID(),
		lot.AuctionTerms{TenderingDuration: isoDuration(t, "P25D")}, lot.Owner, testNow)
	require.NoError(t, err)

	verified, err := m.RequestTransition(step2.Lot, toVerification, lot.Owner, testNow)
	require.NoError(t, err)
	assert.Equal(t, lot.Verification, verified.Lot.Status())
	final := verified.Lot.Auctions()
	for _, a := range final {
		assert.NotNil(t, a.Value())
		assert.NotNil(t, a.MinimalStep())
		assert.NotNil(t, a.Guarantee())
	}
	assert.True(t, final[1].TenderingDuration().IsEqual(*final[2].TenderingDuration()))
}

func TestLotStateMachine_ToPending(t *testing.T) {
	m := newMachine(t)
	toPending := services.LotPatch{Status: statusPtr(lot.Pending)}

	t.Run("without decisions", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Verification})

		_, err := m.RequestTransition(l, toPending, lot.Concierge, testNow)

		require.ErrorIs(t, err, lot.ErrDecisionsRequired)
		assert.Equal(t, lot.KindDecisionsRequired, lot.KindOf(err))
		assert.Nil(t, l.RectificationPeriod())
	})

	t.Run("with one lot decision", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Verification, decisions: []lot.Decision{newDecision(t, lot.DecisionOfLot)}})

		res, err := m.RequestTransition(l, toPending, lot.Concierge, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.Pending, res.Lot.Status())
		rp := res.Lot.RectificationPeriod()
		require.NotNil(t, rp)
		assert.Equal(t, testNow, rp.StartDate())
		assert.Equal(t, rp.StartDate().Add(rectDuration), rp.EndDate())
		require.NotNil(t, res.Lot.NextCheck())
		assert.Equal(t, rp.EndDate(), *res.Lot.NextCheck())
		assert.Equal(t, "switched_lot_pending", res.Events[len(res.Events)-1].MessageID)
	})

	t.Run("concierge supplies the asset decision in the same patch", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Verification})
		decisions := []lot.Decision{newDecision(t, lot.DecisionOfAsset)}

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.Pending), Decisions: &decisions}, lot.Concierge, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.Pending, res.Lot.Status())
		assert.Len(t, res.Lot.Decisions(), 1)
	})

	t.Run("concierge can invalidate", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Verification})

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.Invalid)}, lot.Concierge, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.Invalid, res.Lot.Status())
	})
}

func TestLotStateMachine_ToPendingDeleted(t *testing.T) {
	m := newMachine(t)
	decisions := []lot.Decision{newDecision(t, lot.DecisionOfLot)}
	toDeleted := services.LotPatch{Status: statusPtr(lot.PendingDeleted)}

	t.Run("without cancellation document", func(t *testing.T) {
		l := restoreLot(t, lotState{
			status: lot.Pending, decisions: decisions, rectification: openRectification(t),
			documents: []lot.Document{newDocument(t, "notice")},
		})

		_, err := m.RequestTransition(l, toDeleted, lot.Owner, testNow)

		require.ErrorIs(t, err, lot.ErrCancellationDocumentRequired)
		assert.Equal(t, lot.KindCancellationDocumentRequired, lot.KindOf(err))
	})

	t.Run("document attached in the same patch during the rectification period", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})
		patch := toDeleted
		patch.Documents = []lot.Document{newDocument(t, lot.DocumentTypeCancellationDetails)}

		res, err := m.RequestTransition(l, patch, lot.Owner, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.PendingDeleted, res.Lot.Status())
		assert.True(t, res.Lot.HasCancellationDocument())
	})

	t.Run("concierge completes the deletion", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.PendingDeleted, decisions: decisions})

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.Deleted)}, lot.Concierge, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.Deleted, res.Lot.Status())
	})
}

func TestLotStateMachine_RectificationGate(t *testing.T) {
	m := newMachine(t)
	decisions := []lot.Decision{newDecision(t, lot.DecisionOfLot)}
	title := "New title"

	open := func(t *testing.T) *lot.Lot {
		return restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})
	}
	closed := func(t *testing.T) *lot.Lot {
		return restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: closedRectification(t)})
	}

	t.Run("document upload blocked while open", func(t *testing.T) {
		_, err := m.AddDocument(open(t), newDocument(t, "notice"), lot.Owner, testNow)

		require.ErrorIs(t, err, lot.ErrRectificationPeriodActive)
	})

	t.Run("auction edit blocked while open", func(t *testing.T) {
		l := open(t)

		_, err := m.UpdateAuction(l, l.Auctions()[0].ID(), lot.AuctionTerms{Value: money(1)}, lot.Owner, testNow)

		require.ErrorIs(t, err, lot.ErrRectificationPeriodActive)
	})

	t.Run("field edit blocked while open", func(t *testing.T) {
		_, err := m.RequestTransition(open(t), services.LotPatch{Title: &title}, lot.Owner, testNow)

		require.ErrorIs(t, err, lot.ErrRectificationPeriodActive)
	})

	t.Run("status change still allowed while open", func(t *testing.T) {
		patch := services.LotPatch{
			Status:    statusPtr(lot.PendingDeleted),
			Documents: []lot.Document{newDocument(t, lot.DocumentTypeCancellationDetails)},
		}

		_, err := m.RequestTransition(open(t), patch, lot.Owner, testNow)

		require.NoError(t, err)
	})

	t.Run("administrator bypasses the window", func(t *testing.T) {
		res, err := m.AddDocument(open(t), newDocument(t, "notice"), lot.Administrator, testNow)

		require.NoError(t, err)
		assert.Len(t, res.Lot.Documents(), 1)
	})

	t.Run("edits allowed once closed", func(t *testing.T) {
		l := closed(t)

		res, err := m.AddDocument(l, newDocument(t, "notice"), lot.Owner, testNow)
		require.NoError(t, err)
		assert.Equal(t, lot.MessageLotDocumentAttached, res.Events[0].MessageID)

		res, err = m.UpdateAuction(res.Lot, l.Auctions()[0].ID(), lot.AuctionTerms{Value: money(300)}, lot.Owner, testNow)
		require.NoError(t, err)
		assert.InDelta(t, 150, res.Lot.Auctions()[2].Value().Amount(), 0)

		res, err = m.RequestTransition(res.Lot, services.LotPatch{Title: &title}, lot.Owner, testNow)
		require.NoError(t, err)
		assert.Equal(t, title, res.Lot.Title())
		assert.Equal(t, testNow, res.Lot.DateModified())
	})
}

func TestLotStateMachine_AdministratorOverrides(t *testing.T) {
	m := newMachine(t)
	decisions := []lot.Decision{newDecision(t, lot.DecisionOfLot)}

	t.Run("pending to salable before the window ends", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})

		res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.ActiveSalable)}, lot.Administrator, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.ActiveSalable, res.Lot.Status())
	})

	t.Run("rectification period override", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: openRectification(t)})
		shorter, err := kernel.NewPeriod(testNow.Add(-time.Hour), testNow)
		require.NoError(t, err)

		res, err := m.RequestTransition(l, services.LotPatch{RectificationPeriod: &shorter}, lot.Administrator, testNow)

		require.NoError(t, err)
		assert.Equal(t, testNow, res.Lot.RectificationPeriod().EndDate())
		assert.Equal(t, lot.MessageRectificationOverride, res.Events[0].MessageID)
	})

	t.Run("owner can't override the rectification period", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending, decisions: decisions, rectification: closedRectification(t)})
		p := openRectification(t)

		_, err := m.RequestTransition(l, services.LotPatch{RectificationPeriod: p}, lot.Owner, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLotStateMachine_NoopPatch(t *testing.T) {
	m := newMachine(t)
	l := newDraftLot(t)

	res, err := m.RequestTransition(l, services.LotPatch{Status: statusPtr(lot.Draft)}, lot.Owner, testNow)

	require.NoError(t, err)
	assert.True(t, res.IsNoop())
	assert.Equal(t, l.DateModified(), res.Lot.DateModified())
}

func TestLotStateMachine_EvaluateAuctionChange(t *testing.T) {
	m := newMachine(t)

	t.Run("first auction cancelled dissolves the lot", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveAuction, auctionStatuses: []lot.AuctionStatus{lot.AuctionActive}})

		res, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionCancelled, lot.Convoy, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.PendingDissolution, res.Lot.Status())
		require.Len(t, res.Events, 2)
		assert.Equal(t, "auction_status_cancelled", res.Events[0].MessageID)
		assert.Equal(t, "switched_lot_pending.dissolution", res.Events[1].MessageID)
		assert.Equal(t, lot.ActiveAuction, l.Status(), "input lot is never modified")
	})

	t.Run("first auction unsuccessful returns the lot to sale", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveAuction, auctionStatuses: []lot.AuctionStatus{lot.AuctionActive}})

		res, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionUnsuccessful, lot.Convoy, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.ActiveSalable, res.Lot.Status())
	})

	t.Run("starting an auction puts a salable lot in auction", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveSalable, auctionStatuses: []lot.AuctionStatus{lot.AuctionUnsuccessful}})

		res, err := m.EvaluateAuctionChange(l, l.Auctions()[1].ID(), lot.AuctionActive, lot.Convoy, testNow)

		require.NoError(t, err)
		assert.Equal(t, lot.ActiveAuction, res.Lot.Status())
	})

	t.Run("full sequence of unsuccessful auctions", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveSalable})
		ids := l.Auctions()

		steps := []struct {
			index int
			to    lot.AuctionStatus
			want  lot.Status
		}{
			{0, lot.AuctionActive, lot.ActiveAuction},
			{0, lot.AuctionUnsuccessful, lot.ActiveSalable},
			{1, lot.AuctionActive, lot.ActiveAuction},
			{1, lot.AuctionUnsuccessful, lot.ActiveSalable},
			{2, lot.AuctionActive, lot.ActiveAuction},
			{2, lot.AuctionUnsuccessful, lot.PendingDissolution},
		}
		current := l
		for _, step := range steps {
			res, err := m.EvaluateAuctionChange(current, ids[step.index].ID(), step.to, lot.Convoy, testNow)
			require.NoError(t, err)
			assert.Equal(t, step.want, res.Lot.Status())
			current = res.Lot
		}
	})

	t.Run("repeating the same auction status is idempotent", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveSalable, auctionStatuses: []lot.AuctionStatus{lot.AuctionUnsuccessful}})

		res, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionUnsuccessful, lot.Convoy, testNow)

		require.NoError(t, err)
		assert.True(t, res.IsNoop())
		assert.Equal(t, lot.ActiveSalable, res.Lot.Status())
	})

	t.Run("owner can't change auction status", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveAuction})

		_, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionActive, lot.Owner, testNow)

		require.ErrorIs(t, err, lot.ErrForbiddenTransition)
	})

	t.Run("lot must be on sale", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Pending})

		_, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionActive, lot.Convoy, testNow)

		require.ErrorIs(t, err, lot.ErrForbiddenTransition)
	})

	t.Run("unknown auction", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveAuction})

		_, err := m.EvaluateAuctionChange(l, kernel.NewUUID(), lot.AuctionActive, lot.Convoy, testNow)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("invalid auction transition", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveAuction, auctionStatuses: []lot.AuctionStatus{lot.AuctionCancelled}})

		_, err := m.EvaluateAuctionChange(l, l.Auctions()[0].ID(), lot.AuctionActive, lot.Convoy, testNow)

		require.ErrorIs(t, err, lot.ErrForbiddenTransition)
	})
}

func TestLotStateMachine_UpdateAuction(t *testing.T) {
	m := newMachine(t)

	t.Run("only owner or administrator", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Composing})

		_, err := m.UpdateAuction(l, l.Auctions()[0].ID(), lot.AuctionTerms{}, lot.Concierge, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("not after the lot went on sale", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.ActiveSalable})

		_, err := m.UpdateAuction(l, l.Auctions()[0].ID(), lot.AuctionTerms{}, lot.Owner, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("insider takes the second auction tendering duration", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Composing})

		res, err := m.UpdateAuction(l, l.Auctions()[1].ID(), lot.AuctionTerms{TenderingDuration: isoDuration(t, "P2YT3H")}, lot.Owner, testNow)

		require.NoError(t, err)
		assert.Equal(t, "P2YT3H", res.Lot.Auctions()[2].TenderingDuration().String())
		require.Len(t, res.Events, 1)
		assert.True(t, res.Events[0].AuctionID.IsEqual(l.Auctions()[1].ID()))
	})

	t.Run("validation errors leave the lot unchanged", func(t *testing.T) {
		l := restoreLot(t, lotState{status: lot.Composing})
		steps := 200

		_, err := m.UpdateAuction(l, l.Auctions()[2].ID(), lot.AuctionTerms{DutchSteps: &steps}, lot.Owner, testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 99, *l.Auctions()[2].DutchSteps())
	})
}

func TestLotStateMachine_AddDocument(t *testing.T) {
	m := newMachine(t)

	t.Run("draft lot", func(t *testing.T) {
		res, err := m.AddDocument(newDraftLot(t), newDocument(t, "notice"), lot.Owner, testNow)

		require.NoError(t, err)
		assert.Len(t, res.Lot.Documents(), 1)
	})

	t.Run("not on sale", func(t *testing.T) {
		_, err := m.AddDocument(restoreLot(t, lotState{status: lot.ActiveSalable}), newDocument(t, "notice"), lot.Owner, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("broker without the owner token", func(t *testing.T) {
		_, err := m.AddDocument(newDraftLot(t), newDocument(t, "notice"), lot.Broker, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestLotStateMachine_Decisions(t *testing.T) {
	m := newMachine(t)

	t.Run("owner replaces lot decision in draft", func(t *testing.T) {
		l := newDraftLot(t, newDecision(t, lot.DecisionOfLot))
		decisions := []lot.Decision{newDecision(t, lot.DecisionOfLot)}

		res, err := m.RequestTransition(l, services.LotPatch{Decisions: &decisions}, lot.Owner, testNow)

		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, lot.MessageLotDecisionsReplaced, res.Events[0].MessageID)
	})

	t.Run("owner can't add asset decision", func(t *testing.T) {
		l := newDraftLot(t)
		decisions := []lot.Decision{newDecision(t, lot.DecisionOfAsset)}

		_, err := m.RequestTransition(l, services.LotPatch{Decisions: &decisions}, lot.Owner, testNow)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}
