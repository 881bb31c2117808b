package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/solarmatch/internal/domain"
)

func TestRatingScore(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		jobs   int
		want   float64
	}{
		{"unrated is neutral", 0, 0, 50},
		{"unrated ignores job count", 0, 40, 50},
		{"base only", 3, 0, 60},
		{"bonus per job", 4, 6, 83},
		{"bonus capped", 4, 100, 90},
		{"total capped", 5, 20, 100},
		{"scenario rating", 4.5, 20, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := RatingScore(&domain.Professional{Rating: tt.rating, TotalJobsCompleted: tt.jobs})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRatingScore_Reason(t *testing.T) {
	_, why, err := RatingScore(&domain.Professional{Rating: 4.3, TotalJobsCompleted: 12})
	require.NoError(t, err)
	assert.Equal(t, "4.3 star rating based on 12 completed jobs", why)

	_, why, err = RatingScore(&domain.Professional{})
	require.NoError(t, err)
	assert.Equal(t, "New professional - no reviews yet", why)
}

func TestRatingScore_OutOfRange(t *testing.T) {
	_, _, err := RatingScore(&domain.Professional{Rating: 5.5})
	assert.Error(t, err)
	_, _, err = RatingScore(&domain.Professional{Rating: -1})
	assert.Error(t, err)
}
