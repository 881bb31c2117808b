package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/solarmatch/internal/domain"
)

func TestPriceScore(t *testing.T) {
	tests := []struct {
		name   string
		rate   *float64
		budget *float64
		want   float64
		why    string
	}{
		{"no rate", nil, ptr(2000.0), 50, "Rate to be negotiated"},
		{"no budget cheap", ptr(40.0), nil, 100, "$40.00 per hour"},
		{"no budget mid", ptr(75.0), nil, 80, "$75.00 per hour"},
		{"no budget upper", ptr(100.0), nil, 60, "$100.00 per hour"},
		{"no budget expensive", ptr(150.0), nil, 40, "$150.00 per hour"},
		{"well within budget", ptr(50.0), ptr(2000.0), 100, "Well within budget"},
		{"within budget", ptr(90.0), ptr(2000.0), 80, "Within budget"},
		{"up to 120 percent", ptr(120.0), ptr(2000.0), 60, "Above budget estimate"},
		{"up to 150 percent", ptr(150.0), ptr(2000.0), 40, "Above budget estimate"},
		{"far above budget", ptr(200.0), ptr(2000.0), 20, "Above budget estimate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, why, err := PriceScore(&domain.Professional{HourlyRate: tt.rate}, tt.budget)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.why, why)
		})
	}
}

func TestPriceScore_NegativeRate(t *testing.T) {
	_, _, err := PriceScore(&domain.Professional{HourlyRate: ptr(-1.0)}, nil)
	assert.Error(t, err)
}
