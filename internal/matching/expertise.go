package matching

import (
	"fmt"
	"strings"

	"github.com/timmy/solarmatch/internal/domain"
)

const (
	exactExpertisePoints   = 50.0
	relatedExpertisePoints = 25.0
	pointsPerYear          = 3.0
	maxYearsCounted        = 10
	certificationPoints    = 20.0
)

// requiredExpertise maps each job category to the expertise tag it needs.
var requiredExpertise = map[domain.JobType]string{
	domain.JobTypeInstallation: "PANEL_INSTALLATION",
	domain.JobTypeBatterySetup: "BATTERY_SETUP",
	domain.JobTypeMaintenance:  "MAINTENANCE",
	domain.JobTypeRepair:       "REPAIR",
	domain.JobTypeInspection:   "INSPECTION",
	domain.JobTypeUpgrade:      "UPGRADE",
}

// relatedExpertise lists, per required tag, the tags that earn partial credit.
// The relation is keyed by requirement and is not symmetric.
var relatedExpertise = map[string]map[string]bool{
	"PANEL_INSTALLATION": {"UPGRADE": true, "INSPECTION": true},
	"MAINTENANCE":        {"REPAIR": true, "INSPECTION": true},
	"REPAIR":             {"MAINTENANCE": true},
}

// RequiredExpertise returns the expertise tag a job category needs.
func RequiredExpertise(t domain.JobType) (string, bool) {
	tag, ok := requiredExpertise[t]
	return tag, ok
}

type expertiseFit struct {
	exact          bool
	related        bool
	maxYears       int
	hasCertificate bool
}

func assessExpertise(entries []domain.ExpertiseEntry, required string) expertiseFit {
	var fit expertiseFit
	related := relatedExpertise[required]

	for _, e := range entries {
		tag := strings.ToUpper(strings.TrimSpace(e.ExpertiseType))
		if tag == required {
			fit.exact = true
			if e.YearsExperience != nil && *e.YearsExperience > fit.maxYears {
				fit.maxYears = *e.YearsExperience
			}
			if strings.TrimSpace(e.CertificationName) != "" {
				fit.hasCertificate = true
			}
			continue
		}
		if related[tag] {
			fit.related = true
		}
	}
	return fit
}

// ExpertiseScore scores how well a professional's declared expertise fits the job category.
func ExpertiseScore(pro *domain.Professional, jobType domain.JobType) (float64, string, error) {
	required, ok := RequiredExpertise(jobType)
	if !ok {
		return 0, "", fmt.Errorf("no expertise mapping for job type %q", jobType)
	}
	if len(pro.Expertise) == 0 {
		return 0, "No declared expertise", nil
	}

	fit := assessExpertise(pro.Expertise, required)

	score := 0.0
	switch {
	case fit.exact:
		score += exactExpertisePoints
	case fit.related:
		score += relatedExpertisePoints
	}

	years := fit.maxYears
	if years > maxYearsCounted {
		years = maxYearsCounted
	}
	score += float64(years) * pointsPerYear

	if fit.hasCertificate {
		score += certificationPoints
	}

	return clamp(score, 0, 100), expertiseReason(fit, jobType), nil
}

func expertiseReason(fit expertiseFit, jobType domain.JobType) string {
	switch {
	case fit.exact:
		return fmt.Sprintf("Direct expertise match for %s", jobType)
	case fit.related:
		return "Related expertise in solar systems"
	default:
		return "General solar experience"
	}
}
