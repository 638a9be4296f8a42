package taxonomy

// defaultLearningWeeks is used for skills without an explicit estimate.
const defaultLearningWeeks = 8

// Default returns the built-in taxonomy, used when no override files are
// configured. Overrides loaded from JSON replace the whole table set.
func Default() *Taxonomy {
	return New(defaultSynonyms, defaultStacks, defaultDependencies, defaultEstimates, defaultCategories)
}

var defaultSynonyms = map[string][]string{
	"javascript": {"js", "ecmascript", "node.js", "nodejs"},
	"typescript": {"ts"},
	"python":     {"py", "python3"},
	"golang":     {"go", "go lang"},
	"postgresql": {"postgres", "psql"},
	"kubernetes": {"k8s"},
	"react":      {"react.js", "reactjs"},
	"vue":        {"vue.js", "vuejs"},
	"angular":    {"angular.js", "angularjs"},
	"c#":         {"csharp", "dotnet", ".net"},
	"aws":        {"amazon web services"},
	"gcp":        {"google cloud", "google cloud platform"},
	"ci/cd":      {"continuous integration", "continuous delivery"},
	"machine learning": {"ml"},
	"ui/ux":      {"ux", "ui design", "ux design"},
}

var defaultStacks = map[string][]string{
	"mern stack":  {"mongodb", "express", "react", "javascript"},
	"mean stack":  {"mongodb", "express", "angular", "javascript"},
	"lamp stack":  {"linux", "apache", "mysql", "php"},
	"jamstack":    {"javascript", "react", "vue", "graphql"},
	"elk stack":   {"elasticsearch", "logstash", "kibana"},
	"data stack":  {"python", "sql", "spark", "airflow"},
	"devops stack": {"docker", "kubernetes", "terraform", "ci/cd"},
}

var defaultDependencies = map[string][]Dependency{
	"typescript": {
		{Skill: "javascript", Importance: 0.9, Relation: RelationPrerequisite},
	},
	"react": {
		{Skill: "javascript", Importance: 0.8, Relation: RelationPrerequisite},
		{Skill: "html", Importance: 0.3, Relation: RelationPrerequisite},
		{Skill: "css", Importance: 0.3, Relation: RelationPrerequisite},
	},
	"vue": {
		{Skill: "javascript", Importance: 0.8, Relation: RelationPrerequisite},
		{Skill: "react", Importance: 0.5, Relation: RelationBridging},
	},
	"kubernetes": {
		{Skill: "docker", Importance: 0.8, Relation: RelationPrerequisite},
		{Skill: "linux", Importance: 0.4, Relation: RelationPrerequisite},
	},
	"machine learning": {
		{Skill: "python", Importance: 0.7, Relation: RelationPrerequisite},
		{Skill: "statistics", Importance: 0.5, Relation: RelationPrerequisite},
	},
	"rust": {
		{Skill: "c++", Importance: 0.5, Relation: RelationBridging},
		{Skill: "c", Importance: 0.4, Relation: RelationBridging},
	},
	"graphql": {
		{Skill: "javascript", Importance: 0.4, Relation: RelationPrerequisite},
		{Skill: "rest apis", Importance: 0.6, Relation: RelationBridging},
	},
	"terraform": {
		{Skill: "aws", Importance: 0.5, Relation: RelationBridging},
		{Skill: "gcp", Importance: 0.5, Relation: RelationBridging},
	},
}

var defaultCategories = map[string]string{
	"javascript": "frontend",
	"typescript": "frontend",
	"react":      "frontend",
	"vue":        "frontend",
	"angular":    "frontend",
	"html":       "frontend",
	"css":        "frontend",
	"golang":     "backend",
	"python":     "backend",
	"java":       "backend",
	"c#":         "backend",
	"rust":       "backend",
	"c++":        "backend",
	"c":          "backend",
	"postgresql": "database",
	"mysql":      "database",
	"mongodb":    "database",
	"redis":      "database",
	"docker":     "devops",
	"kubernetes": "devops",
	"terraform":  "devops",
	"ci/cd":      "devops",
	"aws":        "cloud",
	"gcp":        "cloud",
	"azure":      "cloud",
	"machine learning": "data",
	"statistics": "data",
	"spark":      "data",
	"sql":        "database",
	"figma":      "design",
	"ui/ux":      "design",
}

var defaultEstimates = []LearningEstimate{
	{Skill: "typescript", Weeks: 3},
	{Skill: "react", Weeks: 6},
	{Skill: "vue", Weeks: 5},
	{Skill: "kubernetes", Weeks: 10},
	{Skill: "rust", Weeks: 16},
	{Skill: "machine learning", Weeks: 20},
	{Skill: "graphql", Weeks: 4},
	{Skill: "terraform", Weeks: 6},
}
