// Package matching scores professionals against a job and ranks the results.
// Everything here is pure: it reads a job and a professional and returns values.
package matching

import (
	"fmt"
	"sort"

	"github.com/timmy/solarmatch/internal/domain"
)

// Candidate is the outcome of scoring one professional: a breakdown, or the
// error that excluded it.
type Candidate struct {
	Professional *domain.Professional
	Breakdown    ScoreBreakdown
	Err          error
}

// OK reports whether the candidate was scored successfully.
func (c Candidate) OK() bool {
	return c.Err == nil
}

// Score computes all five dimension scores and the weighted total for pro against job.
// Any malformed input on the professional side yields an error for this candidate only.
func Score(job *domain.Job, pro *domain.Professional, c Criteria) (ScoreBreakdown, error) {
	if job == nil || pro == nil {
		return ScoreBreakdown{}, fmt.Errorf("score: nil job or professional")
	}

	radius, err := serviceRadius(pro)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	distanceKm, err := professionalDistance(job, pro)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	expertise, expertiseWhy, err := ExpertiseScore(pro, job.JobType)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	availability, availabilityWhy := AvailabilityScore(pro.AvailabilitySlots, job.PreferredDate)
	rating, ratingWhy, err := RatingScore(pro)
	if err != nil {
		return ScoreBreakdown{}, err
	}
	price, priceWhy, err := PriceScore(pro, job.BudgetMax)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	dims := dimensions{
		distance:     DistanceScore(distanceKm, radius),
		expertise:    expertise,
		availability: availability,
		rating:       rating,
		price:        price,
	}

	return ScoreBreakdown{
		DistanceKm:         Round2(distanceKm),
		DistanceScore:      Round2(dims.distance),
		ExpertiseScore:     Round2(dims.expertise),
		AvailabilityScore:  Round2(dims.availability),
		RatingScore:        Round2(dims.rating),
		PriceScore:         Round2(dims.price),
		TotalScore:         Round2(dims.weightedTotal(c.Weights)),
		DistanceReason:     distanceReason(distanceKm, radius),
		ExpertiseReason:    expertiseWhy,
		AvailabilityReason: availabilityWhy,
		RatingReason:       ratingWhy,
		PriceReason:        priceWhy,
	}, nil
}

// Rank drops failed candidates and those under the minimum score, orders the
// rest by total score descending, and truncates to the criteria cap. Ties keep
// their input order.
func Rank(candidates []Candidate, c Criteria) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if !cand.OK() {
			continue
		}
		if cand.Breakdown.TotalScore < c.MinimumMatchScore {
			continue
		}
		ranked = append(ranked, cand)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.TotalScore > ranked[j].Breakdown.TotalScore
	})

	if c.MaxMatches > 0 && len(ranked) > c.MaxMatches {
		ranked = ranked[:c.MaxMatches]
	}
	return ranked
}
