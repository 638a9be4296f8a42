package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/matching"
	"github.com/jonathan/talent-match/internal/types"
)

// SkillInput is one skill requirement as submitted by a client. Level is
// free text and normalized onto the closed ladder.
type SkillInput struct {
	Name          string `json:"name" validate:"required"`
	MinLevel      string `json:"min_level"`
	Importance    int    `json:"importance" validate:"gte=0,lte=10"`
	YearsRequired int    `json:"years_required" validate:"gte=0"`
	Required      bool   `json:"required"`
}

// LocationInput is the project location as submitted, with free-text type.
type LocationInput struct {
	Type     string `json:"type"`
	Timezone string `json:"timezone"`
	Country  string `json:"country"`
	City     string `json:"city"`
}

// CreateRequirementRequest is the request body for POST /requirements.
// Enum-like fields accept free text and are normalized on ingestion.
type CreateRequirementRequest struct {
	Title              string            `json:"title" validate:"required"`
	RequiredSkills     []SkillInput      `json:"required_skills" validate:"required,min=1,dive"`
	PreferredSkills    []SkillInput      `json:"preferred_skills" validate:"dive"`
	Budget             types.BudgetRange `json:"budget"`
	Duration           types.Duration    `json:"duration"`
	Location           LocationInput     `json:"location"`
	Urgency            string            `json:"urgency"`
	ProjectType        string            `json:"project_type"`
	TeamSize           int               `json:"team_size" validate:"gte=0"`
	ClientIndustry     string            `json:"client_industry"`
	CompanySize        string            `json:"company_size"`
	WorkStyle          string            `json:"work_style"`
	CommunicationStyle string            `json:"communication_style"`
}

// toRequirement normalizes the free-text fields and assigns an identity.
func (r *CreateRequirementRequest) toRequirement() *types.ProjectRequirement {
	duration := r.Duration
	if duration.Weeks == 0 && duration.EndDate.After(duration.StartDate) {
		duration.Weeks = int(duration.EndDate.Sub(duration.StartDate).Hours() / (24 * 7))
	}
	return &types.ProjectRequirement{
		ID:              uuid.New(),
		Title:           r.Title,
		RequiredSkills:  toSkills(r.RequiredSkills),
		PreferredSkills: toSkills(r.PreferredSkills),
		Budget:          r.Budget,
		Duration:        duration,
		Location: types.LocationRequirement{
			Type:     matching.NormalizeLocationType(r.Location.Type),
			Timezone: r.Location.Timezone,
			Country:  r.Location.Country,
			City:     r.Location.City,
		},
		Urgency:            matching.NormalizeUrgency(r.Urgency),
		ProjectType:        matching.NormalizeProjectType(r.ProjectType),
		TeamSize:           r.TeamSize,
		ClientIndustry:     r.ClientIndustry,
		CompanySize:        matching.NormalizeCompanySize(r.CompanySize),
		WorkStyle:          matching.NormalizeWorkStyle(r.WorkStyle),
		CommunicationStyle: matching.NormalizeCommunicationStyle(r.CommunicationStyle),
	}
}

func toSkills(in []SkillInput) []types.SkillRequirement {
	out := make([]types.SkillRequirement, 0, len(in))
	for _, s := range in {
		out = append(out, types.SkillRequirement{
			Name:          s.Name,
			MinLevel:      matching.NormalizeProficiency(s.MinLevel),
			Importance:    s.Importance,
			YearsRequired: s.YearsRequired,
			Required:      s.Required,
		})
	}
	return out
}

// GenerateMatchesRequest is the optional request body for
// POST /requirements/{id}/matches. An empty body runs with
// requirement-derived defaults.
type GenerateMatchesRequest struct {
	MaxMatches                 int                    `json:"max_matches" validate:"gte=0,lte=100"`
	MinScore                   float64                `json:"min_score" validate:"gte=0,lte=1"`
	RealTimeAvailability       bool                   `json:"real_time_availability"`
	ResponseTimeGuaranteeHours int                    `json:"response_time_guarantee_hours" validate:"gte=0"`
	CustomWeights              *types.WeightOverrides `json:"custom_weights"`
}

// BiasFinding is one triggered fairness check in a generation response.
type BiasFinding struct {
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Detail   string `json:"detail"`
}

// GenerateMatchesResponse is the response body for a generation run.
type GenerateMatchesResponse struct {
	Matches      []types.GeneratedMatch `json:"matches"`
	Weights      types.ProjectWeights   `json:"weights"`
	Considered   int                    `json:"considered"`
	Eligible     int                    `json:"eligible"`
	Excluded     map[string]int         `json:"excluded,omitempty"`
	BiasFindings []BiasFinding          `json:"bias_findings,omitempty"`
	GeneratedAt  time.Time              `json:"generated_at"`
}

// UpdateStatusRequest is the request body for PATCH /matches/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// handleCreateRequirement ingests a project requirement.
func (s *Server) handleCreateRequirement(w http.ResponseWriter, r *http.Request) {
	var req CreateRequirementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	requirement := req.toRequirement()
	if err := s.store.SaveRequirement(r.Context(), requirement); err != nil {
		s.logger.Error("saving requirement", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save requirement")
		return
	}

	s.jsonResponse(w, http.StatusCreated, requirement)
}

// handleGetRequirement returns one requirement by ID.
func (s *Server) handleGetRequirement(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	requirement, err := s.store.GetRequirement(r.Context(), id)
	if err != nil {
		s.logger.Error("fetching requirement", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch requirement")
		return
	}
	if requirement == nil {
		s.errorResponse(w, http.StatusNotFound, "Requirement not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, requirement)
}

// handleGenerateMatches runs one matching pipeline pass for a requirement.
func (s *Server) handleGenerateMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req GenerateMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := s.orch.GenerateMatches(r.Context(), id, matching.GenerateOptions{
		MaxMatches:                 req.MaxMatches,
		MinScore:                   req.MinScore,
		EnableRealTimeAvailability: req.RealTimeAvailability,
		ResponseTimeGuarantee:      time.Duration(req.ResponseTimeGuaranteeHours) * time.Hour,
		CustomWeights:              req.CustomWeights,
	})
	if err != nil {
		s.logger.Error("generating matches", zap.String("requirement_id", id.String()), zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := GenerateMatchesResponse{
		Matches:     result.Matches,
		Weights:     result.Weights,
		Considered:  result.Filter.Considered,
		Eligible:    result.Filter.Eligible,
		GeneratedAt: result.GeneratedAt,
	}
	if resp.Matches == nil {
		resp.Matches = []types.GeneratedMatch{}
	}
	if len(result.Filter.Excluded) > 0 {
		resp.Excluded = make(map[string]int, len(result.Filter.Excluded))
		for reason, n := range result.Filter.Excluded {
			resp.Excluded[string(reason)] = n
		}
	}
	for _, c := range result.BiasReport.Checks {
		if c.Triggered {
			resp.BiasFindings = append(resp.BiasFindings, BiasFinding{
				Name:     c.Name,
				Severity: string(c.Severity),
				Detail:   c.Detail,
			})
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetMatches returns the persisted matches of a requirement, best
// rank first.
func (s *Server) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireRequirement(w, r)
	if !ok {
		return
	}

	matches, err := s.orch.GetMatches(r.Context(), id)
	if err != nil {
		s.logger.Error("listing matches", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to list matches")
		return
	}
	if matches == nil {
		matches = []types.GeneratedMatch{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

// handleGetStatistics returns aggregate match statistics for a requirement.
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireRequirement(w, r)
	if !ok {
		return
	}

	stats, err := s.orch.GetStatistics(r.Context(), id)
	if err != nil {
		s.logger.Error("computing statistics", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), "Failed to compute statistics")
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}

// handleUpdateMatchStatus moves a match through its lifecycle.
func (s *Server) handleUpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := s.orch.UpdateMatchStatus(r.Context(), id, types.MatchStatus(req.Status)); err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("updating match status", zap.String("match_id", id.String()), zap.Error(err))
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"id":     id.String(),
		"status": req.Status,
	})
}

// handleCreateTalent ingests a talent profile.
func (s *Server) handleCreateTalent(w http.ResponseWriter, r *http.Request) {
	var talent types.TalentProfile
	if err := json.NewDecoder(r.Body).Decode(&talent); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if talent.Name == "" {
		s.errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if talent.HourlyRate < 0 {
		s.errorResponse(w, http.StatusBadRequest, "hourly_rate must not be negative")
		return
	}
	if talent.ID == uuid.Nil {
		talent.ID = uuid.New()
	}

	if err := s.store.SaveTalent(r.Context(), &talent); err != nil {
		s.logger.Error("saving talent", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save talent")
		return
	}

	s.jsonResponse(w, http.StatusCreated, &talent)
}

// handleGetTalent returns one talent profile by ID.
func (s *Server) handleGetTalent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	talent, err := s.store.GetTalent(r.Context(), id)
	if err != nil {
		s.logger.Error("fetching talent", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch talent")
		return
	}
	if talent == nil {
		s.errorResponse(w, http.StatusNotFound, "Talent not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, talent)
}

// pathID parses the {id} path segment, writing a 400 on malformed input.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ID: "+r.PathValue("id"))
		return uuid.Nil, false
	}
	return id, true
}

// requireRequirement parses the {id} segment and checks the requirement
// exists, writing the error response when it does not.
func (s *Server) requireRequirement(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := s.pathID(w, r)
	if !ok {
		return uuid.Nil, false
	}
	requirement, err := s.store.GetRequirement(r.Context(), id)
	if err != nil {
		s.logger.Error("fetching requirement", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch requirement")
		return uuid.Nil, false
	}
	if requirement == nil {
		s.errorResponse(w, http.StatusNotFound, "Requirement not found")
		return uuid.Nil, false
	}
	return id, true
}
