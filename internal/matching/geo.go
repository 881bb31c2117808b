package matching

import (
	"errors"
	"fmt"
	"math"

	"github.com/timmy/solarmatch/internal/domain"
)

const (
	// EarthRadiusKm is the mean Earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0

	// closeRangeKm is the distance at or under which proximity scores full marks.
	closeRangeKm = 10.0
)

// ErrInvalidCoordinates is returned when a point is missing or outside the valid
// latitude/longitude range. Such a candidate is excluded rather than given a distance.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite and in range.
func (p GeoPoint) Valid() bool {
	return domain.ValidLatitude(p.Lat) && domain.ValidLongitude(p.Lon)
}

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b GeoPoint) (float64, error) {
	if !a.Valid() || !b.Valid() {
		return math.Inf(1), ErrInvalidCoordinates
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon) - toRadians(a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceScore maps a distance to a 0-100 proximity score for the given service radius.
// Full marks up to 10 km, zero beyond the radius, linear in between. A radius of 10 km or
// less has no interpolation band.
func DistanceScore(distanceKm float64, serviceRadiusKm int) float64 {
	radius := float64(serviceRadiusKm)

	if distanceKm <= closeRangeKm {
		return 100
	}
	if distanceKm > radius || radius <= closeRangeKm {
		return 0
	}

	score := 100 - (distanceKm-closeRangeKm)/(radius-closeRangeKm)*100
	return clamp(score, 0, 100)
}

// professionalDistance resolves the distance between a job site and a professional.
func professionalDistance(job *domain.Job, pro *domain.Professional) (float64, error) {
	if pro.Latitude == nil || pro.Longitude == nil {
		return math.Inf(1), fmt.Errorf("professional %d has no location: %w", pro.ID, ErrInvalidCoordinates)
	}
	d, err := HaversineKm(
		GeoPoint{Lat: *pro.Latitude, Lon: *pro.Longitude},
		GeoPoint{Lat: job.Latitude, Lon: job.Longitude},
	)
	if err != nil {
		return d, fmt.Errorf("professional %d to job %d: %w", pro.ID, job.ID, err)
	}
	return d, nil
}

// serviceRadius returns the effective radius, defaulting an unset value.
func serviceRadius(pro *domain.Professional) (int, error) {
	switch {
	case pro.ServiceRadiusKm < 0:
		return 0, fmt.Errorf("professional %d has negative service radius %d", pro.ID, pro.ServiceRadiusKm)
	case pro.ServiceRadiusKm == 0:
		return domain.DefaultServiceRadiusKm, nil
	}
	return pro.ServiceRadiusKm, nil
}

func distanceReason(distanceKm float64, serviceRadiusKm int) string {
	switch {
	case distanceKm <= closeRangeKm:
		return fmt.Sprintf("Very close - %.1fkm away", distanceKm)
	case distanceKm <= float64(serviceRadiusKm)*0.5:
		return fmt.Sprintf("Close - %.1fkm away", distanceKm)
	case distanceKm <= float64(serviceRadiusKm):
		return fmt.Sprintf("Within service area - %.1fkm away", distanceKm)
	default:
		return fmt.Sprintf("Outside service area - %.1fkm away", distanceKm)
	}
}
