package matching

import (
	"fmt"

	"github.com/timmy/solarmatch/internal/domain"
)

const (
	newProfessionalScore = 50.0
	maxRating            = 5.0
	pointsPerJobDone     = 0.5
	maxTrackRecordBonus  = 10.0
)

// RatingScore scores a professional's track record. An unrated professional gets a
// neutral score rather than a low one.
func RatingScore(pro *domain.Professional) (float64, string, error) {
	if pro.Rating < 0 || pro.Rating > maxRating {
		return 0, "", fmt.Errorf("professional %d rating %.2f outside 0-5", pro.ID, pro.Rating)
	}
	if pro.TotalJobsCompleted < 0 {
		return 0, "", fmt.Errorf("professional %d has negative completed jobs %d", pro.ID, pro.TotalJobsCompleted)
	}
	if pro.Rating == 0 {
		return newProfessionalScore, "New professional - no reviews yet", nil
	}

	bonus := float64(pro.TotalJobsCompleted) * pointsPerJobDone
	if bonus > maxTrackRecordBonus {
		bonus = maxTrackRecordBonus
	}
	score := clamp(pro.Rating*20+bonus, 0, 100)

	return score, fmt.Sprintf("%.1f star rating based on %d completed jobs", pro.Rating, pro.TotalJobsCompleted), nil
}
