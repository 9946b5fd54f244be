package food

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/core/dosha"
	"ayura/internal/pkg/common"
)

func TestCheckKnownPairsIgnoreOrder(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"milk", "fish", Poor},
		{"Fish", " MILK ", Poor},
		{"rice", "mung dal", Excellent},
		{"Mung  Dal", "Rice", Excellent},
		{"hot water", "honey", Poor},
	}

	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			got, err := Check(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Compatibility)
			assert.True(t, got.Known)
		})
	}
}

func TestCheckUnknownPairFallsBack(t *testing.T) {
	got, err := Check("apple", "cinnamon")
	require.NoError(t, err)

	assert.Equal(t, Good, got.Compatibility)
	assert.False(t, got.Known)
	assert.Contains(t, got.Explanation, "depends on digestion strength")
	for _, d := range dosha.All {
		assert.Equal(t, ImpactNeutral, got.DoshaImpact[d])
	}
	assert.NotNil(t, got.Alternatives)
}

func TestCheckValidation(t *testing.T) {
	_, err := Check("", "rice")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = Check("rice", "!!")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = Check("Rice", "rice ")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestCheckReturnsCopies(t *testing.T) {
	got, err := Check("milk", "fish")
	require.NoError(t, err)
	got.Alternatives[0] = "changed"
	got.DoshaImpact[dosha.Vata] = "changed"

	again, err := Check("milk", "fish")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Alternatives[0])
	assert.Equal(t, ImpactIncrease, again.DoshaImpact[dosha.Vata])
}
