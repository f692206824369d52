// Package lot models the lot aggregate of the registry and the rules that
// govern its lifecycle.
//
// Main parts:
//   - Status and TransitionTable: which role may move a lot from which status to which
//   - Role and ResolveRole: who is acting, derived from the caller identity and the lot
//   - Auction and DeriveAuctionTerms: the english, english, insider auction sequence
//   - CascadeEvaluator: lot status implied by auction outcomes
//   - RectificationPolicy: the waiting window after a lot becomes pending
//
// The package never logs. Operations that matter to the outside world are
// described by Event values the caller publishes.
package lot
