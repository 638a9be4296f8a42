// Package types provides type definitions for structured data used throughout the talent-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ProficiencyLevel is the ordered skill proficiency scale.
type ProficiencyLevel string

// Proficiency levels, ordered junior < mid < senior < expert.
const (
	LevelJunior ProficiencyLevel = "junior"
	LevelMid    ProficiencyLevel = "mid"
	LevelSenior ProficiencyLevel = "senior"
	LevelExpert ProficiencyLevel = "expert"
)

// Rank returns the numeric position of the level, starting at 1 for junior.
// Unknown levels rank 0 so they always compare below junior.
func (p ProficiencyLevel) Rank() int {
	switch p {
	case LevelJunior:
		return 1
	case LevelMid:
		return 2
	case LevelSenior:
		return 3
	case LevelExpert:
		return 4
	default:
		return 0
	}
}

// Urgency describes how quickly a project needs to be staffed.
type Urgency string

// Urgency levels.
const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ProjectType is the closed set of project categories the scorer understands.
type ProjectType string

// Project types. ProjectTypeOther is the normalization fallback.
const (
	ProjectDevelopment ProjectType = "development"
	ProjectConsulting  ProjectType = "consulting"
	ProjectDesign      ProjectType = "design"
	ProjectData        ProjectType = "data"
	ProjectTypeOther   ProjectType = "other"
)

// LocationType describes where the work happens.
type LocationType string

// Location types.
const (
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
	LocationOnsite LocationType = "onsite"
)

// WorkStyle is the closed set of delivery methodologies.
type WorkStyle string

// Work styles. WorkStyleUnknown is the normalization fallback.
const (
	WorkStyleAgile     WorkStyle = "agile"
	WorkStyleWaterfall WorkStyle = "waterfall"
	WorkStyleHybrid    WorkStyle = "hybrid"
	WorkStyleUnknown   WorkStyle = "unknown"
)

// CommunicationStyle is the closed set of communication preferences.
type CommunicationStyle string

// Communication styles. CommunicationUnknown is the normalization fallback.
const (
	CommunicationFormal   CommunicationStyle = "formal"
	CommunicationCasual   CommunicationStyle = "casual"
	CommunicationFrequent CommunicationStyle = "frequent"
	CommunicationAsync    CommunicationStyle = "async"
	CommunicationUnknown  CommunicationStyle = "unknown"
)

// CompanySize buckets a company's headcount.
type CompanySize string

// Company sizes. CompanySizeUnknown is the normalization fallback.
const (
	CompanyStartup    CompanySize = "startup"
	CompanySmall      CompanySize = "small"
	CompanyMedium     CompanySize = "medium"
	CompanyEnterprise CompanySize = "enterprise"
	CompanySizeUnknown CompanySize = "unknown"
)

// SkillRequirement is one skill a project asks for.
// Immutable once a ranking run starts.
type SkillRequirement struct {
	Name          string           `json:"name"`
	MinLevel      ProficiencyLevel `json:"min_level"`
	Importance    int              `json:"importance"` // 1-10
	YearsRequired int              `json:"years_required,omitempty"`
	Required      bool             `json:"required"` // hard vs soft requirement
}

// BudgetRange is the hourly-rate budget for a project.
type BudgetRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Duration describes a project timeframe.
type Duration struct {
	Weeks        int       `json:"weeks"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	HoursPerWeek int       `json:"hours_per_week"`
}

// LocationRequirement describes where a project expects its talent to be.
type LocationRequirement struct {
	Type     LocationType `json:"type"`
	Timezone string       `json:"timezone,omitempty"`
	Country  string       `json:"country,omitempty"`
	City     string       `json:"city,omitempty"`
}

// ProjectRequirement is the structured project description candidates are
// matched against. Created externally; read-only to the core.
type ProjectRequirement struct {
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	RequiredSkills     []SkillRequirement  `json:"required_skills"`
	PreferredSkills    []SkillRequirement  `json:"preferred_skills"`
	Budget             BudgetRange         `json:"budget"`
	Duration           Duration            `json:"duration"`
	Location           LocationRequirement `json:"location"`
	Urgency            Urgency             `json:"urgency"`
	ProjectType        ProjectType         `json:"project_type"`
	TeamSize           int                 `json:"team_size"`
	ClientIndustry     string              `json:"client_industry"`
	CompanySize        CompanySize         `json:"company_size"`
	WorkStyle          WorkStyle           `json:"work_style"`
	CommunicationStyle CommunicationStyle  `json:"communication_style"`
}
