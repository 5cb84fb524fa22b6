package models

// SkillLevel is the self-declared experience level in a copilot request.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// IsValid reports whether s is a known skill level.
func (s SkillLevel) IsValid() bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

// CopilotHackathonContext is the event the plan is generated for.
type CopilotHackathonContext struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Format              Format          `json:"format"`
	Themes              []string        `json:"themes"`
	StartDate           string          `json:"startDate"`
	FinalSubmissionDate string          `json:"finalSubmissionDate"`
	Prizes              []PrizeCategory `json:"prizes"`
	LocationText        string          `json:"locationText"`
}

// CopilotConstraints bound the generated plan.
type CopilotConstraints struct {
	HoursAvailable int        `json:"hoursAvailable"`
	TeamSize       int        `json:"teamSize"`
	SkillLevel     SkillLevel `json:"skillLevel"`
}

// CopilotRequest is a validated project-planning request.
type CopilotRequest struct {
	HackathonContext CopilotHackathonContext `json:"hackathonContext"`
	UserSkills       []string                `json:"userSkills"`
	Goal             string                  `json:"goal"`
	Constraints      CopilotConstraints      `json:"constraints"`
}

// JudgingAlignment explains how the plan maps to the judging criteria.
type JudgingAlignment struct {
	Execution  string `json:"execution"`
	Usefulness string `json:"usefulness"`
	Creativity string `json:"creativity"`
	Design     string `json:"design"`
	Complexity string `json:"complexity"`
}

// SubmissionKit is the submission-ready material in a plan.
type SubmissionKit struct {
	DevpostSummary string   `json:"devpostSummary"`
	DemoScript60s  string   `json:"demoScript60s"`
	Checklist      []string `json:"checklist"`
}

// CopilotResponse is a project plan, either live from the external API or
// the deterministic fallback.
type CopilotResponse struct {
	ProjectTitle     string           `json:"projectTitle"`
	OneLinePitch     string           `json:"oneLinePitch"`
	ProblemStatement string           `json:"problemStatement"`
	SolutionOverview string           `json:"solutionOverview"`
	Architecture     []string         `json:"architecture"`
	BuildPlan        []string         `json:"buildPlan"`
	JudgingAlignment JudgingAlignment `json:"judgingAlignment"`
	SubmissionKit    SubmissionKit    `json:"submissionKit"`
	RiskMitigation   []string         `json:"riskMitigation"`
}
