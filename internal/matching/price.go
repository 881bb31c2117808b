package matching

import (
	"fmt"

	"github.com/timmy/solarmatch/internal/domain"
)

// AssumedJobHours is the fixed job duration used to turn an hourly rate into a cost estimate.
const AssumedJobHours = 20.0

const unknownRateScore = 50.0

// PriceScore scores how competitive a professional's rate is against the job budget.
func PriceScore(pro *domain.Professional, budgetMax *float64) (float64, string, error) {
	if pro.HourlyRate == nil {
		return unknownRateScore, "Rate to be negotiated", nil
	}
	rate := *pro.HourlyRate
	if rate < 0 {
		return 0, "", fmt.Errorf("professional %d has negative hourly rate %.2f", pro.ID, rate)
	}
	estimate := rate * AssumedJobHours

	if budgetMax == nil {
		return absoluteCostScore(estimate), fmt.Sprintf("$%.2f per hour", rate), nil
	}

	budget := *budgetMax
	switch {
	case estimate <= budget*0.7:
		return 100, "Well within budget", nil
	case estimate <= budget:
		return 80, "Within budget", nil
	case estimate <= budget*1.2:
		return 60, "Above budget estimate", nil
	case estimate <= budget*1.5:
		return 40, "Above budget estimate", nil
	default:
		return 20, "Above budget estimate", nil
	}
}

func absoluteCostScore(estimate float64) float64 {
	switch {
	case estimate < 1000:
		return 100
	case estimate < 2000:
		return 80
	case estimate < 3000:
		return 60
	default:
		return 40
	}
}
