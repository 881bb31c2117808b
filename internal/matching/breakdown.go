package matching

import "math"

// ScoreBreakdown is the per-candidate result of scoring one professional against one job.
// Dimension scores and the total carry two decimals.
type ScoreBreakdown struct {
	DistanceKm        float64 `json:"distance_km"`
	DistanceScore     float64 `json:"distance_score"`
	ExpertiseScore    float64 `json:"expertise_score"`
	AvailabilityScore float64 `json:"availability_score"`
	RatingScore       float64 `json:"rating_score"`
	PriceScore        float64 `json:"price_score"`
	TotalScore        float64 `json:"total_score"`

	DistanceReason     string `json:"distance_reason,omitempty"`
	ExpertiseReason    string `json:"expertise_reason,omitempty"`
	AvailabilityReason string `json:"availability_reason,omitempty"`
	RatingReason       string `json:"rating_reason,omitempty"`
	PriceReason        string `json:"price_reason,omitempty"`
}

// dimensions holds unrounded dimension scores prior to aggregation.
type dimensions struct {
	distance     float64
	expertise    float64
	availability float64
	rating       float64
	price        float64
}

// weightedTotal returns Σ score × weight / 100.
func (d dimensions) weightedTotal(w Weights) float64 {
	return d.distance*w.Distance/100 +
		d.expertise*w.Expertise/100 +
		d.availability*w.Availability/100 +
		d.rating*w.Rating/100 +
		d.price*w.Price/100
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
