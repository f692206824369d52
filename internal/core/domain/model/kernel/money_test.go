package kernel_test

import (
	"math"
	"testing"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		currency     string
		wantErr      error
		wantCurrency string
	}{
		{name: "valid amount", amount: 100, currency: "UAH", wantCurrency: "UAH"},
		{name: "zero amount", amount: 0, currency: "usd", wantCurrency: "USD"},
		{name: "empty currency falls back to default", amount: 10, wantCurrency: kernel.DefaultCurrency},
		{name: "negative amount", amount: -1, currency: "UAH", wantErr: errs.ErrValueIsOutOfRange},
		{name: "NaN amount", amount: math.NaN(), currency: "UAH", wantErr: errs.ErrValueIsInvalid},
		{name: "bad currency", amount: 1, currency: "HRYVNIA", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := kernel.NewMoney(tt.amount, tt.currency, true)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Error(t, m.Validate())
				return
			}
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.InDelta(t, tt.amount, m.Amount(), 0)
			assert.Equal(t, tt.wantCurrency, m.Currency())
			assert.True(t, m.ValueAddedTaxIncluded())
		})
	}
}

func TestMoney_Half(t *testing.T) {
	value := kernel.MustNewMoney(100, "UAH", false)

	half := value.Half()

	assert.InDelta(t, 50, half.Amount(), 0)
	assert.Equal(t, "UAH", half.Currency())
	assert.False(t, half.ValueAddedTaxIncluded())
	assert.InDelta(t, 100, value.Amount(), 0, "original must stay unchanged")
}

func TestMoney_Zero(t *testing.T) {
	step := kernel.MustNewMoney(12.5, "UAH", true)

	zero := step.Zero()

	assert.InDelta(t, 0, zero.Amount(), 0)
	require.NoError(t, zero.Validate())
	assert.Equal(t, "0.00 UAH", zero.String())
}

func TestMoney_IsEqual(t *testing.T) {
	a := kernel.MustNewMoney(10, "UAH", true)

	assert.True(t, a.IsEqual(kernel.MustNewMoney(10, "uah", true)))
	assert.False(t, a.IsEqual(kernel.MustNewMoney(10, "UAH", false)))
	assert.False(t, a.IsEqual(kernel.MustNewMoney(11, "UAH", true)))
}

func TestMoney_ZeroValueIsInvalid(t *testing.T) {
	var m kernel.Money

	assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
}
