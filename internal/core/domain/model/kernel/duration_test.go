package kernel_test

import (
	"testing"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "P25D", want: "P25D"},
		{input: "P2YT3H", want: "P2YT3H"},
		{input: "p1m", want: "P1M"},
		{input: "PT30M", want: "PT30M"},
		{input: "P1W2DT4H5M6S", want: "P1W2DT4H5M6S"},
		{input: "P0D", want: "P0D"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := kernel.ParseDuration(tt.input)

			require.NoError(t, err)
			require.NoError(t, d.Validate())
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, input := range []string{"", "P", "PT", "25D", "P1DT", "P-1D", "P1.5D", "P1H"} {
		t.Run(input, func(t *testing.T) {
			_, err := kernel.ParseDuration(input)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}

func TestDuration_IsEqual(t *testing.T) {
	a, _ := kernel.ParseDuration("P25D")
	b, _ := kernel.ParseDuration("p25d")
	c, _ := kernel.ParseDuration("PT600H")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestDuration_ZeroValueIsInvalid(t *testing.T) {
	var d kernel.Duration

	assert.Equal(t, kernel.ErrDurationIsNotConstructed, d.Validate())
}
