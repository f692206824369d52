package lot

import (
	"crypto/subtle"
	"strings"
)

// Role is the acting party of a request, resolved per lot.
type Role int

const (
	// Anonymous is any caller without a recognised role.
	Anonymous Role = iota
	// Broker is an authenticated broker that does not own the lot at hand.
	Broker
	// Owner is the broker holding the lot's owner token.
	Owner
	// Administrator may act on a lot in any non-terminal status.
	Administrator
	// Concierge is the verification bot.
	Concierge
	// Convoy drives auctions.
	Convoy
	// Chronograph is the scheduler ending rectification periods.
	Chronograph
	// Caravan reports sale contracts.
	Caravan
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Anonymous:     "anonymous",
		Broker:        "broker",
		Owner:         "lot_owner",
		Administrator: "Administrator",
		Concierge:     "concierge",
		Convoy:        "convoy",
		Chronograph:   "chronograph",
		Caravan:       "caravan",
	}
}

// String returns the role name as used in the transition table and events.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "anonymous"
}

// Identity is what the transport layer knows about a caller: the
// authenticated user name and the access token sent with the request.
type Identity struct {
	User  string
	Token string
}

// authenticatedRoles maps authenticated user names to roles. Lookups are
// case-insensitive.
var authenticatedRoles = map[string]Role{
	"broker":        Broker,
	"administrator": Administrator,
	"concierge":     Concierge,
	"convoy":        Convoy,
	"chronograph":   Chronograph,
	"caravan":       Caravan,
}

// ResolveRole derives the acting role of identity towards l. A broker whose
// token matches the lot's owner token acts as Owner. A nil lot resolves the
// role the caller would have towards a lot it is about to create.
func ResolveRole(identity Identity, l *Lot) Role {
	role, ok := authenticatedRoles[strings.ToLower(strings.TrimSpace(identity.User))]
	if !ok {
		return Anonymous
	}
	if role != Broker || l == nil {
		return role
	}
	if identity.Token != "" && l.ownerToken != "" &&
		subtle.ConstantTimeCompare([]byte(identity.Token), []byte(l.ownerToken)) == 1 {
		return Owner
	}
	return Broker
}
