package skillmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-match/internal/taxonomy"
	"github.com/jonathan/talent-match/internal/types"
)

func newTestResolver() *Resolver {
	return NewResolver(taxonomy.Default())
}

func TestResolve_ExactMatch(t *testing.T) {
	r := newTestResolver()

	req := types.SkillRequirement{Name: "React", MinLevel: types.LevelSenior, Required: true}
	skills := []types.CandidateSkill{
		{Name: "react", Level: types.LevelExpert, Years: 6},
	}

	res := r.Resolve(req, skills)
	require.True(t, res.Matched)
	assert.Equal(t, MatchExact, res.MatchType)
	assert.True(t, res.MeetsLevel)
	assert.Equal(t, 1.0, res.Score)
}

func TestResolve_SynonymMatch_Symmetric(t *testing.T) {
	r := newTestResolver()

	// Requirement names the canonical skill, candidate holds only the alias.
	res := r.Resolve(
		types.SkillRequirement{Name: "JavaScript", MinLevel: types.LevelMid, Required: true},
		[]types.CandidateSkill{{Name: "js", Level: types.LevelSenior, Years: 4}},
	)
	require.True(t, res.Matched)
	assert.Equal(t, MatchSynonym, res.MatchType)

	// And the other direction.
	res = r.Resolve(
		types.SkillRequirement{Name: "js", MinLevel: types.LevelMid, Required: true},
		[]types.CandidateSkill{{Name: "JavaScript", Level: types.LevelSenior, Years: 4}},
	)
	require.True(t, res.Matched)
	assert.Equal(t, MatchSynonym, res.MatchType)
}

func TestResolve_StackMembership(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(
		types.SkillRequirement{Name: "MERN Stack", MinLevel: types.LevelMid, Required: true},
		[]types.CandidateSkill{{Name: "MongoDB", Level: types.LevelSenior, Years: 3}},
	)
	require.True(t, res.Matched)
	assert.Equal(t, MatchStack, res.MatchType)
}

func TestResolve_PrecedenceExactOverSynonym(t *testing.T) {
	r := newTestResolver()

	// Same level and years: exact name must win the tie-break.
	res := r.Resolve(
		types.SkillRequirement{Name: "JavaScript", MinLevel: types.LevelMid, Required: true},
		[]types.CandidateSkill{
			{Name: "js", Level: types.LevelSenior, Years: 4},
			{Name: "JavaScript", Level: types.LevelSenior, Years: 4},
		},
	)
	require.True(t, res.Matched)
	assert.Equal(t, MatchExact, res.MatchType)
	assert.Equal(t, "JavaScript", res.Skill.Name)
}

func TestPoolHints_ExpandsSynonymsAndPrerequisites(t *testing.T) {
	r := newTestResolver()

	req := &types.ProjectRequirement{
		RequiredSkills: []types.SkillRequirement{
			{Name: "React", MinLevel: types.LevelMid, Required: true},
		},
	}

	hints := r.PoolHints(req)
	assert.Contains(t, hints, "react")
	assert.Contains(t, hints, "reactjs")
	assert.Contains(t, hints, "javascript", "prerequisite holders can still bridge")
	assert.NotContains(t, hints, "postgresql")
	assert.IsIncreasing(t, hints)
}

func TestPoolHints_StackRequirementCoversMembers(t *testing.T) {
	r := newTestResolver()

	req := &types.ProjectRequirement{
		RequiredSkills: []types.SkillRequirement{
			{Name: "MERN Stack", MinLevel: types.LevelMid, Required: true},
		},
	}

	hints := r.PoolHints(req)
	assert.Contains(t, hints, "mongodb")
	assert.Contains(t, hints, "express")
	assert.Contains(t, hints, "react")
}

func TestPoolHints_UnknownSkillStillHinted(t *testing.T) {
	r := newTestResolver()

	req := &types.ProjectRequirement{
		RequiredSkills: []types.SkillRequirement{
			{Name: "  COBOL ", MinLevel: types.LevelMid, Required: true},
		},
	}

	assert.Equal(t, []string{"cobol"}, r.PoolHints(req))
}

func TestResolve_TieBreakLevelThenYears(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(
		types.SkillRequirement{Name: "Python", MinLevel: types.LevelJunior, Required: true},
		[]types.CandidateSkill{
			{Name: "python", Level: types.LevelMid, Years: 8},
			{Name: "Python", Level: types.LevelSenior, Years: 2},
		},
	)
	require.True(t, res.Matched)
	assert.Equal(t, types.LevelSenior, res.Skill.Level)

	res = r.Resolve(
		types.SkillRequirement{Name: "Python", MinLevel: types.LevelJunior, Required: true},
		[]types.CandidateSkill{
			{Name: "python", Level: types.LevelMid, Years: 8},
			{Name: "Python", Level: types.LevelMid, Years: 2},
		},
	)
	require.True(t, res.Matched)
	assert.Equal(t, 8.0, res.Skill.Years)
}

func TestResolve_LevelPenaltyAndFloor(t *testing.T) {
	r := newTestResolver()

	// One level below: 1.0 - 0.25. The "py" alias avoids the exact-name bonus.
	res := r.Resolve(
		types.SkillRequirement{Name: "Python", MinLevel: types.LevelSenior, Required: true},
		[]types.CandidateSkill{{Name: "py", Level: types.LevelMid}},
	)
	require.True(t, res.Matched)
	assert.False(t, res.MeetsLevel)
	assert.InDelta(t, 0.75, res.Score, 1e-9)

	// Three levels below: floored at 0.3.
	res = r.Resolve(
		types.SkillRequirement{Name: "Python", MinLevel: types.LevelExpert, Required: true},
		[]types.CandidateSkill{{Name: "py", Level: types.LevelJunior}},
	)
	require.True(t, res.Matched)
	assert.InDelta(t, levelFloor, res.Score, 1e-9)
}

func TestResolve_ExperienceDepthBonus(t *testing.T) {
	r := newTestResolver()

	req := types.SkillRequirement{Name: "Python", MinLevel: types.LevelSenior, YearsRequired: 4, Required: true}

	// Two levels below, 2 of 4 required years: 0.5 + 0.5*0.2 = 0.6.
	// The "py" alias avoids the exact-name bonus.
	res := r.Resolve(req, []types.CandidateSkill{{Name: "py", Level: types.LevelJunior, Years: 2}})
	require.True(t, res.Matched)
	assert.InDelta(t, 0.6, res.Score, 1e-9)

	// Depth ratio is capped at 1.5 even with 20 years.
	res = r.Resolve(req, []types.CandidateSkill{{Name: "py", Level: types.LevelJunior, Years: 20}})
	assert.InDelta(t, 0.5+depthCap*depthScale, res.Score, 1e-9)
}

func TestResolve_ScoreClampedToOne(t *testing.T) {
	r := newTestResolver()

	// Level met + depth bonus + exact bonus would exceed 1 without the clamp.
	res := r.Resolve(
		types.SkillRequirement{Name: "Python", MinLevel: types.LevelJunior, YearsRequired: 1, Required: true},
		[]types.CandidateSkill{{Name: "python", Level: types.LevelExpert, Years: 10}},
	)
	assert.Equal(t, 1.0, res.Score)
}

func TestResolve_NoMatchIsFirstClassResult(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(
		types.SkillRequirement{Name: "COBOL", MinLevel: types.LevelSenior, Required: true},
		[]types.CandidateSkill{{Name: "python", Level: types.LevelExpert, Years: 10}},
	)
	assert.False(t, res.Matched)
	assert.Equal(t, MatchNone, res.MatchType)
	assert.Zero(t, res.Score)
	assert.Nil(t, res.Skill)
}

func TestResolve_EmptyCandidateSkills(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(types.SkillRequirement{Name: "React", MinLevel: types.LevelMid, Required: true}, nil)
	assert.False(t, res.Matched)
	assert.Zero(t, res.Score)
}

func TestBridge_PrerequisitesCarryPartialCredit(t *testing.T) {
	r := newTestResolver()

	// Candidate lacks React but holds its prerequisites.
	res := r.Resolve(
		types.SkillRequirement{Name: "React", MinLevel: types.LevelSenior, Required: true},
		[]types.CandidateSkill{
			{Name: "JavaScript", Level: types.LevelExpert, Years: 8},
			{Name: "CSS", Level: types.LevelMid, Years: 3},
		},
	)
	require.True(t, res.Matched)
	assert.Equal(t, MatchBridge, res.MatchType)
	// javascript 0.8 + css 0.3 = 1.1, capped at 1.0, scaled by bridgeScale.
	assert.InDelta(t, bridgeScale, res.Score, 1e-9)
	assert.Equal(t, []string{"css", "javascript"}, res.BridgedVia)
}

func TestBridge_OnlyForHardRequirements(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(
		types.SkillRequirement{Name: "React", MinLevel: types.LevelSenior, Required: false},
		[]types.CandidateSkill{{Name: "JavaScript", Level: types.LevelExpert, Years: 8}},
	)
	assert.False(t, res.Matched)
	assert.Zero(t, res.Score)
}

func TestBridge_NoPrerequisitesHeld(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve(
		types.SkillRequirement{Name: "Rust", MinLevel: types.LevelSenior, Required: true},
		[]types.CandidateSkill{{Name: "python", Level: types.LevelExpert, Years: 10}},
	)
	assert.False(t, res.Matched)
	assert.Zero(t, res.Score)
}
