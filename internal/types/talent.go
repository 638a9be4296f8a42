package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateSkill is one skill a talent claims. Read-only during a run.
type CandidateSkill struct {
	Name     string           `json:"name"`
	Level    ProficiencyLevel `json:"level"`
	Years    float64          `json:"years"`
	Category string           `json:"category,omitempty"`
}

// ExperienceEntry is one position in a talent's work history.
type ExperienceEntry struct {
	Company      string      `json:"company"`
	Role         string      `json:"role"`
	Industry     string      `json:"industry,omitempty"`
	CompanySize  CompanySize `json:"company_size,omitempty"`
	Technologies []string    `json:"technologies,omitempty"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date,omitempty"`
}

// PastProject is one completed engagement with its outcome.
type PastProject struct {
	Title         string      `json:"title"`
	ProjectType   ProjectType `json:"project_type,omitempty"`
	Industry      string      `json:"industry,omitempty"`
	Technologies  []string    `json:"technologies,omitempty"`
	DurationWeeks int         `json:"duration_weeks"`
	Completed     bool        `json:"completed"`
	Rating        float64     `json:"rating,omitempty"` // 0-5, 0 means unrated
}

// TalentPreferences captures what kinds of engagements a talent wants.
type TalentPreferences struct {
	PreferredCompanySize CompanySize        `json:"preferred_company_size,omitempty"`
	WorkStyle            WorkStyle          `json:"work_style,omitempty"`
	CommunicationStyle   CommunicationStyle `json:"communication_style,omitempty"`
	PreferredRate        float64            `json:"preferred_rate,omitempty"`
	MinimumRate          float64            `json:"minimum_rate,omitempty"`
}

// TalentLocation is where a talent is based.
type TalentLocation struct {
	Timezone string `json:"timezone,omitempty"`
	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
}

// TalentProfile is a candidate professional. Read-only to the core.
type TalentProfile struct {
	ID             uuid.UUID            `json:"id"`
	Name           string               `json:"name"`
	Skills         []CandidateSkill     `json:"skills"`
	Experience     []ExperienceEntry    `json:"experience,omitempty"`
	Availability   []AvailabilityWindow `json:"availability,omitempty"`
	HourlyRate     float64              `json:"hourly_rate"`
	Location       TalentLocation       `json:"location"`
	Languages      []string             `json:"languages,omitempty"`
	Certifications []string             `json:"certifications,omitempty"`
	PastProjects   []PastProject        `json:"past_projects,omitempty"`
	Rating         float64              `json:"rating"` // 0-5 average
	ReviewCount    int                  `json:"review_count"`
	Preferences    TalentPreferences    `json:"preferences"`
	Available      bool                 `json:"available"`
}

// TotalYearsExperience sums the duration of all experience entries in years.
// Open-ended entries are counted up to now.
func (t *TalentProfile) TotalYearsExperience(now time.Time) float64 {
	total := 0.0
	for _, e := range t.Experience {
		end := e.EndDate
		if end.IsZero() {
			end = now
		}
		if end.After(e.StartDate) {
			total += end.Sub(e.StartDate).Hours() / (24 * 365.25)
		}
	}
	return total
}
