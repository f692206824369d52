package lot

import "slices"

// TransitionTable is the static (status, role) -> allowed next statuses
// matrix. Every permitted role may also patch a lot without changing its
// status. Terminal statuses have no entries, so every request against them
// is forbidden.
//
// The table is read-only after construction and safe for concurrent use.
// Sale contracts, related processes and auction statuses are not covered;
// their permissions live in the services package.
//
// Example:
//
//	table := lot.DefaultTransitionTable()
//	table.IsAllowed(lot.Pending, lot.ActiveSalable, lot.Chronograph) // true
//	table.IsAllowed(lot.Pending, lot.ActiveSalable, lot.Owner)       // false
//	err := table.Check(lot.Sold, lot.Sold, lot.Administrator)         // ForbiddenTransitionError
type TransitionTable struct {
	rules map[Status]map[Role][]Status
}

var defaultTransitionTable = newTransitionTable(map[Status]map[Role][]Status{
	Draft: {
		Owner:         {Draft, Composing},
		Administrator: {Draft, Composing},
	},
	Composing: {
		Owner:         {Composing, Verification},
		Administrator: {Composing, Verification},
	},
	Verification: {
		Concierge: {Verification, Pending, Invalid},
	},
	Pending: {
		Owner:         {Pending, PendingDeleted},
		Administrator: {Pending, PendingDeleted, ActiveSalable},
		Chronograph:   {Pending, ActiveSalable},
	},
	PendingDeleted: {
		Concierge:     {PendingDeleted, Deleted},
		Administrator: {PendingDeleted, Deleted},
	},
	ActiveSalable: {
		Concierge:     {ActiveSalable, ActiveAuction},
		Administrator: {ActiveSalable, ActiveAuction},
	},
	ActiveAuction: {
		Convoy:        {ActiveAuction, ActiveSalable, ActiveContracting, PendingDissolution},
		Administrator: {ActiveAuction, ActiveSalable, ActiveContracting, PendingDissolution},
	},
	ActiveContracting: {
		Convoy:        {ActiveContracting, PendingSold, PendingDissolution},
		Administrator: {ActiveContracting, PendingSold, PendingDissolution},
	},
	PendingSold: {
		Concierge:     {PendingSold, Sold},
		Administrator: {PendingSold, Sold},
	},
	PendingDissolution: {
		Concierge:     {PendingDissolution, Dissolved},
		Administrator: {PendingDissolution, Dissolved},
	},
})

func newTransitionTable(rules map[Status]map[Role][]Status) TransitionTable {
	return TransitionTable{rules: rules}
}

// DefaultTransitionTable returns the lot registry transition rules.
func DefaultTransitionTable() TransitionTable {
	return defaultTransitionTable
}

// AllowedNext returns the statuses role may move a lot in current into.
// The returned slice is a copy and may be modified by the caller.
func (t TransitionTable) AllowedNext(current Status, role Role) []Status {
	return slices.Clone(t.rules[current][role])
}

// IsAllowed reports whether role may move a lot from one status to another.
func (t TransitionTable) IsAllowed(from, to Status, role Role) bool {
	return slices.Contains(t.rules[from][role], to)
}

// Check returns a ForbiddenTransitionError when IsAllowed is false.
func (t TransitionTable) Check(from, to Status, role Role) error {
	if !t.IsAllowed(from, to, role) {
		return newForbiddenLotTransition(from, to, role)
	}
	return nil
}

// RolesFor lists the roles that may act on a lot in status.
func (t TransitionTable) RolesFor(status Status) []Role {
	roles := make([]Role, 0, len(t.rules[status]))
	for role := range t.rules[status] {
		roles = append(roles, role)
	}
	slices.Sort(roles)
	return roles
}
