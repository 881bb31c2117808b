package matching

import (
	"math"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// kmPerDegree is the meridian arc length of one degree of latitude.
var kmPerDegree = EarthRadiusKm * math.Pi / 180

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// jobAt builds an installation job at the origin.
func jobAt() *domain.Job {
	return &domain.Job{
		ID:        1,
		JobType:   domain.JobTypeInstallation,
		Status:    domain.JobStatusPending,
		Latitude:  0,
		Longitude: 0,
	}
}

// proNorthOf places a professional the given distance due north of the origin.
func proNorthOf(id int64, km float64) *domain.Professional {
	return &domain.Professional{
		ID:              id,
		Latitude:        ptr(km / kmPerDegree),
		Longitude:       ptr(0.0),
		ServiceRadiusKm: 50,
	}
}
