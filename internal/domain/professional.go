package domain

import "time"

// DefaultServiceRadiusKm applies when a professional has not set a radius.
const DefaultServiceRadiusKm = 50

// Professional is a service provider that can be matched to jobs.
// Expertise and availability rows are owned by the professional and loaded with it.
type Professional struct {
	ID                 int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyName        string             `gorm:"type:text;not null" json:"company_name"`
	Email              string             `gorm:"type:text;uniqueIndex:idx_professionals_email" json:"email"`
	Phone              string             `gorm:"type:text" json:"phone"`
	Address            string             `gorm:"type:text" json:"address,omitempty"`
	Latitude           *float64           `json:"latitude,omitempty"`
	Longitude          *float64           `json:"longitude,omitempty"`
	ServiceRadiusKm    int                `gorm:"default:50" json:"service_radius_km"`
	HourlyRate         *float64           `json:"hourly_rate,omitempty"`
	Rating             float64            `gorm:"default:0" json:"rating"`
	TotalJobsCompleted int                `gorm:"default:0" json:"total_jobs_completed"`
	IsVerified         bool               `gorm:"default:false;index:idx_professionals_verified" json:"is_verified"`
	Expertise          []ExpertiseEntry   `gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE" json:"expertise,omitempty"`
	AvailabilitySlots  []AvailabilitySlot `gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE" json:"availability_slots,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName returns the database table name for Professional.
func (Professional) TableName() string {
	return "professionals"
}

// ExpertiseEntry is one declared skill of a professional.
type ExpertiseEntry struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessionalID    int64     `gorm:"not null;index:idx_expertise_professional" json:"professional_id"`
	ExpertiseType     string    `gorm:"type:text;not null" json:"expertise_type"`
	YearsExperience   *int      `json:"years_experience,omitempty"`
	CertificationName string    `gorm:"type:text" json:"certification_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName returns the database table name for ExpertiseEntry.
func (ExpertiseEntry) TableName() string {
	return "professional_expertise"
}

// AvailabilitySlot is a block of time a professional has declared.
// StartTime and EndTime use the "15:04" layout.
type AvailabilitySlot struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProfessionalID int64     `gorm:"not null;index:idx_slots_professional" json:"professional_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	StartTime      string    `gorm:"type:text;not null" json:"start_time"`
	EndTime        string    `gorm:"type:text;not null" json:"end_time"`
	IsBooked       bool      `gorm:"default:false" json:"is_booked"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName returns the database table name for AvailabilitySlot.
func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}
