package lot

// CascadeEvaluator derives the lot status implied by the outcomes of its
// auctions. It has no state and is safe for concurrent use.
type CascadeEvaluator struct{}

// Evaluate returns the status l should move to, and false when the current
// status stands. Rules, in order:
//
//   - a lot in active.salable or active.auction with an active auction is in active.auction;
//   - only a lot in active.auction cascades further;
//   - when the auction before the first scheduled one is unsuccessful the lot goes back to active.salable;
//   - when any auction is cancelled, or all are unsuccessful, the lot goes to pending.dissolution.
//
// Evaluating the same lot twice without an auction change yields no change.
func (CascadeEvaluator) Evaluate(l *Lot) (Status, bool) {
	next := evaluateCascade(l.status, SortAuctions(l.auctions))
	if next == l.status {
		return l.status, false
	}
	return next, true
}

func evaluateCascade(current Status, auctions []*Auction) Status {
	if len(auctions) == 0 {
		return current
	}

	if current == ActiveSalable || current == ActiveAuction {
		for _, a := range auctions {
			if a.status == AuctionActive {
				return ActiveAuction
			}
		}
	}

	if current != ActiveAuction {
		return current
	}

	if previousToScheduledIs(auctions, AuctionUnsuccessful) {
		return ActiveSalable
	}
	if anyAuctionIs(auctions, AuctionCancelled) || allAuctionsAre(auctions, AuctionUnsuccessful) {
		return PendingDissolution
	}
	return current
}

// previousToScheduledIs finds the first scheduled auction and reports
// whether the one before it has status. A sequence whose first auction is
// still scheduled, or with no scheduled auction left, reports false.
func previousToScheduledIs(auctions []*Auction, status AuctionStatus) bool {
	for i, a := range auctions {
		if a.status != AuctionScheduled {
			continue
		}
		if i == 0 {
			return false
		}
		return auctions[i-1].status == status
	}
	return false
}

func anyAuctionIs(auctions []*Auction, status AuctionStatus) bool {
	for _, a := range auctions {
		if a.status == status {
			return true
		}
	}
	return false
}

func allAuctionsAre(auctions []*Auction, status AuctionStatus) bool {
	for _, a := range auctions {
		if a.status != status {
			return false
		}
	}
	return true
}
