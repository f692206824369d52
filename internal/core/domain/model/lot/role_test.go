package lot_test

import (
	"testing"

	"lots/internal/core/domain/model/lot"

	"github.com/stretchr/testify/assert"
)

func TestResolveRole(t *testing.T) {
	l := newDraftLot(t)

	tests := []struct {
		name     string
		identity lot.Identity
		want     lot.Role
	}{
		{name: "broker with owner token", identity: lot.Identity{User: "broker", Token: ownerToken}, want: lot.Owner},
		{name: "broker with foreign token", identity: lot.Identity{User: "broker", Token: "other"}, want: lot.Broker},
		{name: "broker without token", identity: lot.Identity{User: "broker"}, want: lot.Broker},
		{name: "administrator", identity: lot.Identity{User: "administrator"}, want: lot.Administrator},
		{name: "administrator capitalised", identity: lot.Identity{User: "Administrator"}, want: lot.Administrator},
		{name: "administrator ignores token", identity: lot.Identity{User: "administrator", Token: ownerToken}, want: lot.Administrator},
		{name: "concierge", identity: lot.Identity{User: "concierge"}, want: lot.Concierge},
		{name: "convoy", identity: lot.Identity{User: "convoy"}, want: lot.Convoy},
		{name: "chronograph", identity: lot.Identity{User: "chronograph"}, want: lot.Chronograph},
		{name: "caravan", identity: lot.Identity{User: "caravan"}, want: lot.Caravan},
		{name: "unknown user", identity: lot.Identity{User: "mallory", Token: ownerToken}, want: lot.Anonymous},
		{name: "no user", identity: lot.Identity{}, want: lot.Anonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lot.ResolveRole(tt.identity, l))
		})
	}
}

func TestResolveRole_WithoutLot(t *testing.T) {
	assert.Equal(t, lot.Broker, lot.ResolveRole(lot.Identity{User: "broker", Token: ownerToken}, nil))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "lot_owner", lot.Owner.String())
	assert.Equal(t, "Administrator", lot.Administrator.String())
	assert.Equal(t, "anonymous", lot.Role(42).String())
}
