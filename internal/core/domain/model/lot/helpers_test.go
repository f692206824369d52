package lot_test

import (
	"testing"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"

	"github.com/stretchr/testify/require"
)

const ownerToken = "9d3c1b0e6f0a4e1c8a2b7d4e5f6a7b8c"

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func money(amount float64) *kernel.Money {
	m := kernel.MustNewMoney(amount, "UAH", true)
	return &m
}

func duration(t *testing.T, s string) *kernel.Duration {
	t.Helper()
	d, err := kernel.ParseDuration(s)
	require.NoError(t, err)
	return &d
}

func englishTerms() lot.AuctionTerms {
	return lot.AuctionTerms{
		Value:           money(100),
		MinimalStep:     money(10),
		Guarantee:       money(20),
		RegistrationFee: money(2),
	}
}

func newRelatedProcess(t *testing.T) lot.RelatedProcess {
	t.Helper()
	rp, err := lot.NewRelatedProcess(kernel.NewUUID(), "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6", "UA-AR-P-2026-03-01-000001")
	require.NoError(t, err)
	return rp
}

func newDecision(t *testing.T, of lot.DecisionOf) lot.Decision {
	t.Helper()
	d, err := lot.NewDecision(kernel.NewUUID(), "decision", "decision-"+of.String(), testNow.Add(-48*time.Hour), of, "asset-item")
	require.NoError(t, err)
	return d
}

func newDocument(t *testing.T, documentType string) lot.Document {
	t.Helper()
	doc, err := lot.NewDocument(kernel.NewUUID(), "document", documentType, "application/pdf", "http://docs/1", testNow)
	require.NoError(t, err)
	return doc
}

func newDraftLot(t *testing.T) *lot.Lot {
	t.Helper()
	l, err := lot.NewLot(lot.NewLotParams{
		ID:             kernel.NewUUID(),
		Owner:          "broker",
		OwnerToken:     ownerToken,
		Title:          "Lot title",
		RelatedProcess: newRelatedProcess(t),
		Now:            testNow,
	})
	require.NoError(t, err)
	return l
}

func newAuctions(t *testing.T) []*lot.Auction {
	t.Helper()
	auctions, err := lot.NewAuctionSequence(englishTerms(), 99)
	require.NoError(t, err)
	return auctions
}

// restoreLot builds a lot in status with auctions in the given statuses.
func restoreLot(t *testing.T, status lot.Status, auctionStatuses ...lot.AuctionStatus) *lot.Lot {
	t.Helper()
	auctions := newAuctions(t)
	restored := make([]*lot.Auction, 0, len(auctions))
	for i, a := range auctions {
		st := a.Status()
		if i < len(auctionStatuses) {
			st = auctionStatuses[i]
		}
		r, err := lot.RestoreAuction(lot.RestoreAuctionParams{
			ID:                    a.ID(),
			TenderAttempts:        a.TenderAttempts(),
			Status:                st,
			ProcurementMethodType: a.ProcurementMethodType(),
			AuctionType:           a.AuctionType(),
			DutchSteps:            a.DutchSteps(),
			Value:                 a.Value(),
			MinimalStep:           a.MinimalStep(),
			Guarantee:             a.Guarantee(),
			RegistrationFee:       a.RegistrationFee(),
		})
		require.NoError(t, err)
		restored = append(restored, r)
	}

	l, err := lot.RestoreLot(lot.RestoreLotParams{
		ID:               kernel.NewUUID(),
		Status:           status,
		Title:            "Lot title",
		LotType:          lot.LotTypeLoki,
		Owner:            "broker",
		OwnerToken:       ownerToken,
		RelatedProcesses: []lot.RelatedProcess{newRelatedProcess(t)},
		Decisions:        []lot.Decision{newDecision(t, lot.DecisionOfLot)},
		Auctions:         restored,
		DateCreated:      testNow,
		DateModified:     testNow,
		Revision:         1,
	})
	require.NoError(t, err)
	return l
}
