package domain

import (
	"math"
	"time"
)

// JobType is the category of work a job requests.
type JobType string

const (
	JobTypeInstallation JobType = "INSTALLATION"
	JobTypeBatterySetup JobType = "BATTERY_SETUP"
	JobTypeMaintenance  JobType = "MAINTENANCE"
	JobTypeRepair       JobType = "REPAIR"
	JobTypeInspection   JobType = "INSPECTION"
	JobTypeUpgrade      JobType = "UPGRADE"
)

// Valid reports whether t is one of the known job categories.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeInstallation, JobTypeBatterySetup, JobTypeMaintenance,
		JobTypeRepair, JobTypeInspection, JobTypeUpgrade:
		return true
	}
	return false
}

// JobTypes returns every known job category.
func JobTypes() []JobType {
	return []JobType{
		JobTypeInstallation, JobTypeBatterySetup, JobTypeMaintenance,
		JobTypeRepair, JobTypeInspection, JobTypeUpgrade,
	}
}

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusMatched    JobStatus = "MATCHED"
	JobStatusQuoted     JobStatus = "QUOTED"
	JobStatusAssigned   JobStatus = "ASSIGNED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// Matchable reports whether matching may be requested for a job in this state.
func (s JobStatus) Matchable() bool {
	return s == JobStatusPending || s == JobStatusMatched
}

// Job is a customer's request for work at a location.
type Job struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64      `gorm:"index:idx_jobs_customer" json:"customer_id"`
	JobType       JobType    `gorm:"type:text;not null" json:"job_type"`
	Title         string     `gorm:"type:text;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	Status        JobStatus  `gorm:"type:text;not null;default:PENDING;index:idx_jobs_status" json:"status"`
	Latitude      float64    `gorm:"not null" json:"latitude"`
	Longitude     float64    `gorm:"not null" json:"longitude"`
	PreferredDate *time.Time `json:"preferred_date,omitempty"`
	BudgetMin     *float64   `json:"budget_min,omitempty"`
	BudgetMax     *float64   `json:"budget_max,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string {
	return "jobs"
}

// Validate checks the fields the matching engine relies on.
// Returns:
//   - error: wraps ErrValidation describing the first problem found.
func (j *Job) Validate() error {
	if !ValidLatitude(j.Latitude) {
		return Invalid("invalid latitude value %v for job %d", j.Latitude, j.ID)
	}
	if !ValidLongitude(j.Longitude) {
		return Invalid("invalid longitude value %v for job %d", j.Longitude, j.ID)
	}
	if !j.JobType.Valid() {
		return Invalid("unknown job type %q for job %d", j.JobType, j.ID)
	}
	if j.BudgetMin != nil && j.BudgetMax != nil && *j.BudgetMin > *j.BudgetMax {
		return Invalid("minimum budget cannot be greater than maximum budget for job %d", j.ID)
	}
	return nil
}

// ValidLatitude reports whether lat is a finite value in [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// ValidLongitude reports whether lon is a finite value in [-180, 180].
func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}
