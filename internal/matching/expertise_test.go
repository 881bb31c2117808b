package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timmy/solarmatch/internal/domain"
)

func TestExpertiseScore(t *testing.T) {
	tests := []struct {
		name      string
		jobType   domain.JobType
		entries   []domain.ExpertiseEntry
		want      float64
		wantWhyIn string
	}{
		{
			name:    "empty expertise",
			jobType: domain.JobTypeInstallation,
			want:    0,
		},
		{
			name:      "exact match only",
			jobType:   domain.JobTypeInstallation,
			entries:   []domain.ExpertiseEntry{{ExpertiseType: "PANEL_INSTALLATION"}},
			want:      50,
			wantWhyIn: "Direct expertise match for INSTALLATION",
		},
		{
			name:    "exact match is case insensitive",
			jobType: domain.JobTypeRepair,
			entries: []domain.ExpertiseEntry{{ExpertiseType: "repair", YearsExperience: ptr(2)}},
			want:    56,
		},
		{
			name:    "exact match with years and certification",
			jobType: domain.JobTypeInstallation,
			entries: []domain.ExpertiseEntry{{ExpertiseType: "PANEL_INSTALLATION", YearsExperience: ptr(5), CertificationName: "NABCEP PV"}},
			want:    85,
		},
		{
			name:    "years capped at ten",
			jobType: domain.JobTypeInstallation,
			entries: []domain.ExpertiseEntry{{ExpertiseType: "PANEL_INSTALLATION", YearsExperience: ptr(25), CertificationName: "NABCEP PV"}},
			want:    100,
		},
		{
			name:      "related match",
			jobType:   domain.JobTypeMaintenance,
			entries:   []domain.ExpertiseEntry{{ExpertiseType: "INSPECTION", YearsExperience: ptr(8), CertificationName: "cert"}},
			want:      25,
			wantWhyIn: "Related expertise",
		},
		{
			name:    "adjacency is directional",
			jobType: domain.JobTypeInspection,
			entries: []domain.ExpertiseEntry{{ExpertiseType: "MAINTENANCE"}},
			want:    0,
		},
		{
			name:    "exact beats related",
			jobType: domain.JobTypeRepair,
			entries: []domain.ExpertiseEntry{
				{ExpertiseType: "MAINTENANCE", YearsExperience: ptr(10)},
				{ExpertiseType: "REPAIR", YearsExperience: ptr(1)},
			},
			want: 53,
		},
		{
			name:      "unrelated expertise",
			jobType:   domain.JobTypeBatterySetup,
			entries:   []domain.ExpertiseEntry{{ExpertiseType: "PANEL_INSTALLATION", YearsExperience: ptr(10)}},
			want:      0,
			wantWhyIn: "General solar experience",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, why, err := ExpertiseScore(&domain.Professional{Expertise: tt.entries}, tt.jobType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.wantWhyIn != "" {
				assert.Contains(t, why, tt.wantWhyIn)
			}
		})
	}
}

func TestExpertiseScore_UnknownJobType(t *testing.T) {
	pro := &domain.Professional{Expertise: []domain.ExpertiseEntry{{ExpertiseType: "REPAIR"}}}
	_, _, err := ExpertiseScore(pro, domain.JobType("ROOFING"))
	assert.Error(t, err)
}

func TestRequiredExpertise_CoversEveryJobType(t *testing.T) {
	for _, jt := range domain.JobTypes() {
		_, ok := RequiredExpertise(jt)
		assert.True(t, ok, "job type %s has no required expertise", jt)
	}
}
