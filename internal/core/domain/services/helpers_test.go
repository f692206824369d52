package services_test

import (
	"testing"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const ownerToken = "4f1e2d3c4b5a69788796a5b4c3d2e1f0"

var (
	testNow      = time.Date(2026, 5, 11, 9, 30, 0, 0, time.UTC)
	rectDuration = 24 * time.Hour
)

func newMachine(t *testing.T) services.LotStateMachine {
	t.Helper()
	policy, err := lot.NewRectificationPolicy(rectDuration)
	require.NoError(t, err)
	m, err := services.NewLotStateMachine(policy, 99)
	require.NoError(t, err)
	return m
}

func money(amount float64) *kernel.Money {
	m := kernel.MustNewMoney(amount, "UAH", true)
	return &m
}

func isoDuration(t *testing.T, s string) *kernel.Duration {
	t.Helper()
	d, err := kernel.ParseDuration(s)
	require.NoError(t, err)
	return &d
}

func statusPtr(s lot.Status) *lot.Status {
	return &s
}

func newDecision(t *testing.T, of lot.DecisionOf) lot.Decision {
	t.Helper()
	d, err := lot.NewDecision(kernel.NewUUID(), "Decision", "decision-"+kernel.NewUUID().Hex(), testNow.AddDate(0, 0, -7), of, "")
	require.NoError(t, err)
	return d
}

func newDocument(t *testing.T, documentType string) lot.Document {
	t.Helper()
	doc, err := lot.NewDocument(kernel.NewUUID(), "Document", documentType, "application/pdf", "http://docs/"+kernel.NewUUID().Hex(), testNow)
	require.NoError(t, err)
	return doc
}

func newDraftLot(t *testing.T, decisions ...lot.Decision) *lot.Lot {
	t.Helper()
	rp, err := lot.NewRelatedProcess(kernel.NewUUID(), kernel.NewUUID().Hex(), "")
	require.NoError(t, err)
	l, err := lot.NewLot(lot.NewLotParams{
		ID:             kernel.NewUUID(),
		Owner:          "broker",
		OwnerToken:     ownerToken,
		Title:          "Lot",
		RelatedProcess: rp,
		Decisions:      decisions,
		Now:            testNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return l
}

type lotState struct {
	status          lot.Status
	decisions       []lot.Decision
	documents       []lot.Document
	rectification   *kernel.Period
	auctionStatuses []lot.AuctionStatus
	noAuctions      bool
}

// restoreLot builds a lot in an arbitrary state with a fully configured
// auction sequence.
func restoreLot(t *testing.T, s lotState) *lot.Lot {
	t.Helper()
	var auctions []*lot.Auction
	if !s.noAuctions {
		seq, err := lot.NewAuctionSequence(lot.AuctionTerms{
			Value: money(100), MinimalStep: money(10), Guarantee: money(20), RegistrationFee: money(2),
		}, 99)
		require.NoError(t, err)
		for i, a := range seq {
			status := lot.AuctionScheduled
			if i < len(s.auctionStatuses) {
				status = s.auctionStatuses[i]
			}
			var td *kernel.Duration
			if i > 0 {
				td = isoDuration(t, "P25D")
			}
			restored, err := lot.RestoreAuction(lot.RestoreAuctionParams{
				ID:                    a.ID(),
				TenderAttempts:        a.TenderAttempts(),
				Status:                status,
				ProcurementMethodType: a.ProcurementMethodType(),
				AuctionType:           a.AuctionType(),
				DutchSteps:            a.DutchSteps(),
				Value:                 a.Value(),
				MinimalStep:           a.MinimalStep(),
				Guarantee:             a.Guarantee(),
				RegistrationFee:       a.RegistrationFee(),
				TenderingDuration:     td,
			})
			require.NoError(t, err)
			auctions = append(auctions, restored)
		}
	}

	rp, err := lot.NewRelatedProcess(kernel.NewUUID(), kernel.NewUUID().Hex(), "")
	require.NoError(t, err)
	l, err := lot.RestoreLot(lot.RestoreLotParams{
		ID:                  kernel.NewUUID(),
		Status:              s.status,
		Title:               "Lot",
		LotType:             lot.LotTypeLoki,
		Owner:               "broker",
		OwnerToken:          ownerToken,
		RelatedProcesses:    []lot.RelatedProcess{rp},
		Decisions:           s.decisions,
		Documents:           s.documents,
		Auctions:            auctions,
		RectificationPeriod: s.rectification,
		DateCreated:         testNow.Add(-72 * time.Hour),
		DateModified:        testNow.Add(-72 * time.Hour),
		Revision:            3,
	})
	require.NoError(t, err)
	return l
}

func openRectification(t *testing.T) *kernel.Period {
	t.Helper()
	p, err := kernel.NewPeriodStartingAt(testNow.Add(-time.Hour), rectDuration)
	require.NoError(t, err)
	return &p
}

func closedRectification(t *testing.T) *kernel.Period {
	t.Helper()
	p, err := kernel.NewPeriodStartingAt(testNow.Add(-48*time.Hour), rectDuration)
	require.NoError(t, err)
	return &p
}

// snapshot captures the observable state of a lot for before/after checks.
type snapshot struct {
	Status       lot.Status
	Title        string
	Decisions    int
	Documents    int
	Auctions     []lot.AuctionStatus
	Rectified    bool
	DateModified time.Time
}

func takeSnapshot(l *lot.Lot) snapshot {
	s := snapshot{
		Status:       l.Status(),
		Title:        l.Title(),
		Decisions:    len(l.Decisions()),
		Documents:    len(l.Documents()),
		Rectified:    l.RectificationPeriod() != nil,
		DateModified: l.DateModified(),
	}
	for _, a := range l.Auctions() {
		s.Auctions = append(s.Auctions, a.Status())
	}
	return s
}
