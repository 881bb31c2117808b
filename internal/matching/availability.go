package matching

import (
	"fmt"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
)

const (
	noSlotsScore          = 20.0
	openWithoutDateScore  = 70.0
	preferredDatePoints   = 60.0
	pointsPerOpenSlot     = 5.0
	maxOpenSlotPoints     = 30.0
	flexibilityPoints     = 10.0
	flexibilityWindowDays = 7
)

// AvailabilityScore scores schedule fit between open slots and the job's preferred date.
func AvailabilityScore(slots []domain.AvailabilitySlot, preferred *time.Time) (float64, string) {
	if len(slots) == 0 {
		return noSlotsScore, "No availability declared"
	}

	open := 0
	for _, s := range slots {
		if !s.IsBooked {
			open++
		}
	}

	if preferred == nil {
		if open > 0 {
			return openWithoutDateScore, "Available for scheduling"
		}
		return noSlotsScore, "Fully booked"
	}

	day := civilDate(*preferred)
	onDate := false
	nearby := false
	for _, s := range slots {
		if s.IsBooked {
			continue
		}
		diff := daysBetween(day, civilDate(s.Date))
		if diff == 0 {
			onDate = true
		}
		if diff >= -flexibilityWindowDays && diff <= flexibilityWindowDays {
			nearby = true
		}
	}

	score := 0.0
	if onDate {
		score += preferredDatePoints
	}
	slotPoints := float64(open) * pointsPerOpenSlot
	if slotPoints > maxOpenSlotPoints {
		slotPoints = maxOpenSlotPoints
	}
	score += slotPoints
	if !onDate && nearby {
		score += flexibilityPoints
	}

	return clamp(score, 0, 100), availabilityReason(onDate, open, day)
}

func availabilityReason(onDate bool, open int, day time.Time) string {
	switch {
	case onDate:
		return fmt.Sprintf("Available on preferred date (%s)", day.Format("2006-01-02"))
	case open > 0:
		return "Available for alternative dates"
	default:
		return "Fully booked"
	}
}

// civilDate drops the clock so that dates compare by calendar day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
