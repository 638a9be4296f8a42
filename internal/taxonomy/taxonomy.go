// Package taxonomy provides the skill lookup tables used by skill resolution:
// synonym groups, technology stacks, and the skill-dependency graph. Tables
// are loaded once, immutable afterwards, and passed by reference into the
// resolver rather than read from package globals.
package taxonomy

import "strings"

// RelationType classifies an edge in the skill-dependency graph.
type RelationType string

// Dependency relation types.
const (
	RelationPrerequisite RelationType = "prerequisite"
	RelationBridging     RelationType = "bridging"
)

// Dependency is one edge in the skill-dependency graph: holding the named
// prerequisite skill carries Importance (0-1) worth of evidence toward the
// dependent skill.
type Dependency struct {
	Skill      string       `json:"skill"`
	Importance float64      `json:"importance"`
	Relation   RelationType `json:"relation"`
}

// LearningEstimate is the fixed time estimate for acquiring one skill.
type LearningEstimate struct {
	Skill string `json:"skill"`
	Weeks int    `json:"weeks"`
}

// Taxonomy holds every skill lookup table. All keys are canonicalized with
// Canon at load time, so lookups only need to canonicalize their input.
type Taxonomy struct {
	synonyms     map[string][]string     // canonical name -> aliases
	aliasToCanon map[string]string       // alias -> canonical name
	stacks       map[string][]string     // stack name -> member skills
	dependencies map[string][]Dependency // skill -> prerequisites
	learnWeeks   map[string]int          // skill -> fixed learning estimate
	categories   map[string]string       // skill -> category tag
}

// Canon lowercases and trims a skill name for table lookups.
func Canon(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// New builds a Taxonomy from raw tables. Synonym groups are indexed in both
// directions so resolution is symmetric: an alias resolves to its canonical
// name and the canonical name lists all its aliases.
func New(synonyms map[string][]string, stacks map[string][]string, deps map[string][]Dependency, estimates []LearningEstimate, categories map[string]string) *Taxonomy {
	t := &Taxonomy{
		synonyms:     make(map[string][]string, len(synonyms)),
		aliasToCanon: make(map[string]string),
		stacks:       make(map[string][]string, len(stacks)),
		dependencies: make(map[string][]Dependency, len(deps)),
		learnWeeks:   make(map[string]int, len(estimates)),
		categories:   make(map[string]string, len(categories)),
	}

	for canonName, aliases := range synonyms {
		c := Canon(canonName)
		group := make([]string, 0, len(aliases))
		for _, a := range aliases {
			alias := Canon(a)
			if alias == "" || alias == c {
				continue
			}
			group = append(group, alias)
			t.aliasToCanon[alias] = c
		}
		t.synonyms[c] = group
		t.aliasToCanon[c] = c
	}

	for stack, members := range stacks {
		canonMembers := make([]string, 0, len(members))
		for _, m := range members {
			canonMembers = append(canonMembers, Canon(m))
		}
		t.stacks[Canon(stack)] = canonMembers
	}

	for skill, edges := range deps {
		canonEdges := make([]Dependency, 0, len(edges))
		for _, e := range edges {
			canonEdges = append(canonEdges, Dependency{
				Skill:      Canon(e.Skill),
				Importance: clamp01(e.Importance),
				Relation:   e.Relation,
			})
		}
		t.dependencies[Canon(skill)] = canonEdges
	}

	for _, est := range estimates {
		t.learnWeeks[Canon(est.Skill)] = est.Weeks
	}

	for skill, category := range categories {
		t.categories[Canon(skill)] = Canon(category)
	}

	return t
}

// Canonical resolves a skill name through the synonym table, returning the
// canonical name and whether the name was known.
func (t *Taxonomy) Canonical(name string) (string, bool) {
	c, ok := t.aliasToCanon[Canon(name)]
	return c, ok
}

// Synonymous reports whether two skill names belong to the same synonym group.
func (t *Taxonomy) Synonymous(a, b string) bool {
	ca, okA := t.Canonical(a)
	cb, okB := t.Canonical(b)
	return okA && okB && ca == cb
}

// Aliases returns a skill name's full synonym group, canonical name first.
// Unknown names return just the canonicalized input.
func (t *Taxonomy) Aliases(name string) []string {
	c, ok := t.Canonical(name)
	if !ok {
		return []string{Canon(name)}
	}
	return append([]string{c}, t.synonyms[c]...)
}

// StackMembers returns the member skills of a technology stack, or nil if the
// name is not a known stack.
func (t *Taxonomy) StackMembers(stack string) []string {
	return t.stacks[Canon(stack)]
}

// InStack reports whether a candidate skill belongs to the named stack,
// resolving both sides through the synonym table.
func (t *Taxonomy) InStack(stack, skill string) bool {
	members := t.StackMembers(stack)
	if len(members) == 0 {
		return false
	}
	c := Canon(skill)
	if canon, ok := t.Canonical(skill); ok {
		c = canon
	}
	for _, m := range members {
		if m == c {
			return true
		}
		if canon, ok := t.Canonical(m); ok && canon == c {
			return true
		}
	}
	return false
}

// Dependencies returns the prerequisite edges of a skill, or nil when the
// graph has no entry for it.
func (t *Taxonomy) Dependencies(skill string) []Dependency {
	return t.dependencies[Canon(skill)]
}

// LearningWeeks returns the fixed learning estimate for a skill. Skills with
// no entry fall back to the default estimate.
func (t *Taxonomy) LearningWeeks(skill string) int {
	if w, ok := t.learnWeeks[Canon(skill)]; ok {
		return w
	}
	return defaultLearningWeeks
}

// Category returns the category tag of a skill, resolving through the
// synonym table, or "" when unknown.
func (t *Taxonomy) Category(skill string) string {
	c := Canon(skill)
	if canon, ok := t.Canonical(skill); ok {
		c = canon
	}
	return t.categories[c]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
