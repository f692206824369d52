package queries_test

import (
	"testing"

	"lots/internal/core/application/usecases/queries"
	"lots/internal/core/domain/model/kernel"
	"lots/internal/core/domain/model/lot"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLotQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetLotQuery(id)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.LotID().IsEqual(id))
}

func TestNewGetLotQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewGetLotQuery(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetLotQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLotQuery{}

	assert.ErrorIs(t, query.Validate(), queries.ErrGetLotQueryIsNotConstructed)
}

func TestNewGetLotsByStatusQuery(t *testing.T) {
	query, err := queries.NewGetLotsByStatusQuery([]lot.Status{lot.Pending, lot.ActiveSalable}, queries.DefaultLotsPageSize)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, []string{"pending", "active.salable"}, query.StatusNames())
	assert.Equal(t, queries.DefaultLotsPageSize, query.Limit())
}

func TestNewGetLotsByStatusQuery_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		statuses []lot.Status
		limit    int
		wantErr  error
	}{
		{"no statuses", nil, 10, errs.ErrValueIsRequired},
		{"unknown status", []lot.Status{lot.Unknown}, 10, errs.ErrValueIsInvalid},
		{"zero limit", []lot.Status{lot.Draft}, 0, errs.ErrValueIsOutOfRange},
		{"limit above maximum", []lot.Status{lot.Draft}, queries.MaxLotsPageSize + 1, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetLotsByStatusQuery(tt.statuses, tt.limit)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetLotsByStatusQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLotsByStatusQuery{}

	assert.ErrorIs(t, query.Validate(), queries.ErrGetLotsByStatusQueryIsNotConstructed)
}
