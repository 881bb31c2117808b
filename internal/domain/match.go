package domain

import "time"

// MatchStatus represents the state of a suggested pairing.
type MatchStatus string

const (
	MatchStatusSuggested MatchStatus = "SUGGESTED"
	MatchStatusAccepted  MatchStatus = "ACCEPTED"
	MatchStatusRejected  MatchStatus = "REJECTED"
	MatchStatusWithdrawn MatchStatus = "WITHDRAWN"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusSuggested, MatchStatusAccepted, MatchStatusRejected, MatchStatusWithdrawn:
		return true
	}
	return false
}

// Match is a persisted pairing of a job with a professional and the scores that produced it.
// The (job_id, professional_id) pair is unique.
type Match struct {
	ID                int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID             int64       `gorm:"not null;uniqueIndex:idx_matches_job_professional" json:"job_id"`
	ProfessionalID    int64       `gorm:"not null;uniqueIndex:idx_matches_job_professional;index:idx_matches_professional" json:"professional_id"`
	MatchScore        float64     `gorm:"not null;index:idx_matches_score" json:"match_score"`
	DistanceKm        float64     `json:"distance_km"`
	DistanceScore     float64     `json:"distance_score"`
	ExpertiseScore    float64     `json:"expertise_score"`
	AvailabilityScore float64     `json:"availability_score"`
	RatingScore       float64     `json:"rating_score"`
	PriceScore        float64     `json:"price_score"`
	Status            MatchStatus `gorm:"type:text;not null;default:SUGGESTED" json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Match.
func (Match) TableName() string {
	return "matches"
}
