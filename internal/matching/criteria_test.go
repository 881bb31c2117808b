package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/solarmatch/internal/domain"
)

func TestNewCriteria_Defaults(t *testing.T) {
	c, err := NewCriteria(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultCriteria(), c)
	assert.Equal(t, 100.0, c.Weights.Sum())
	assert.Equal(t, 50.0, c.MinimumMatchScore)
	assert.Equal(t, 10, c.MaxMatches)
	assert.True(t, c.VerifiedOnly)
}

func TestNewCriteria_PartialOverride(t *testing.T) {
	c, err := NewCriteria(&Overrides{
		DistanceWeight: ptr(50.0),
		MaxMatches:     ptr(3),
		VerifiedOnly:   ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, c.Weights.Distance)
	assert.Equal(t, DefaultExpertiseWeight, c.Weights.Expertise)
	assert.Equal(t, DefaultMinimumMatchScore, c.MinimumMatchScore)
	assert.Equal(t, 3, c.MaxMatches)
	assert.False(t, c.VerifiedOnly)
}

func TestNewCriteria_Invalid(t *testing.T) {
	tests := []struct {
		name string
		o    Overrides
	}{
		{"negative weight", Overrides{PriceWeight: ptr(-1.0)}},
		{"nan weight", Overrides{RatingWeight: ptr(math.NaN())}},
		{"minimum above 100", Overrides{MinimumMatchScore: ptr(100.5)}},
		{"minimum negative", Overrides{MinimumMatchScore: ptr(-0.1)}},
		{"zero cap", Overrides{MaxMatches: ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCriteria(&tt.o)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestNewCriteria_DoesNotMutateDefaults(t *testing.T) {
	_, err := NewCriteria(&Overrides{ExpertiseWeight: ptr(90.0)})
	require.NoError(t, err)
	assert.Equal(t, DefaultExpertiseWeight, DefaultCriteria().Weights.Expertise)
}
