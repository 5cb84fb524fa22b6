package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Jethin10/Hack-FInder/config"
	"github.com/Jethin10/Hack-FInder/models"
	"github.com/Jethin10/Hack-FInder/monitoring"
	"github.com/Jethin10/Hack-FInder/utils"
)

const (
	copilotMaxAttempts    = 2
	copilotMinTimeout     = 2 * time.Second
	copilotRetryBaseDelay = 150 * time.Millisecond
)

// ValidationError marks a copilot request the caller must fix.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

type CopilotService struct {
	cfg     *config.Config
	client  *http.Client
	breaker *utils.CircuitBreaker
	monitor *monitoring.Monitor
	logger  *slog.Logger
}

func NewCopilotService(cfg *config.Config, monitor *monitoring.Monitor, logger *slog.Logger) *CopilotService {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.MedoTimeout
	if timeout < copilotMinTimeout {
		timeout = copilotMinTimeout
	}
	return &CopilotService{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
		breaker: utils.NewCircuitBreaker(utils.Settings{
			Name:         "medo-api",
			MaxRequests:  10,
			Interval:     30 * time.Second,
			Timeout:      30 * time.Second,
			FailureRatio: 0.5,
		}),
		monitor: monitor,
		logger:  logger,
	}
}

// ValidateRequest checks an untyped request body and returns the normalized
// request. Errors are *ValidationError with a reason the client can act on.
func ValidateRequest(payload map[string]any) (models.CopilotRequest, error) {
	if payload == nil {
		return models.CopilotRequest{}, &ValidationError{"Invalid request payload"}
	}

	contextRaw, ok := payload["hackathonContext"].(map[string]any)
	if !ok {
		return models.CopilotRequest{}, &ValidationError{"Invalid request payload: hackathonContext is required"}
	}
	constraintsRaw, ok := payload["constraints"].(map[string]any)
	if !ok {
		return models.CopilotRequest{}, &ValidationError{"Invalid request payload: constraints is required"}
	}

	id := trimmedString(contextRaw["id"])
	title := trimmedString(contextRaw["title"])
	format := models.Format(stringValue(contextRaw["format"]))
	_, themesOK := contextRaw["themes"].([]any)
	_, prizesOK := contextRaw["prizes"].([]any)
	_, startOK := contextRaw["startDate"].(string)
	_, finalOK := contextRaw["finalSubmissionDate"].(string)
	locationText, locationOK := contextRaw["locationText"].(string)

	if id == "" || title == "" || !format.IsValid() ||
		!themesOK || !startOK || !finalOK || !prizesOK || !locationOK {
		return models.CopilotRequest{}, &ValidationError{"Invalid request payload: hackathonContext fields are invalid"}
	}

	goal := trimmedString(payload["goal"])
	hours, hoursOK := finiteNumber(constraintsRaw["hoursAvailable"])
	teamSize, teamOK := finiteNumber(constraintsRaw["teamSize"])
	skillLevel := models.SkillLevel(stringValue(constraintsRaw["skillLevel"]))

	if goal == "" || !hoursOK || hours <= 0 || !teamOK || teamSize <= 0 || !skillLevel.IsValid() {
		return models.CopilotRequest{}, &ValidationError{"Invalid request payload: constraints/goal are invalid"}
	}

	var skills []string
	if rawSkills, ok := payload["userSkills"].([]any); ok {
		for _, raw := range rawSkills {
			if s, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					skills = append(skills, trimmed)
				}
			}
		}
	}

	prizes := make([]models.PrizeCategory, 0)
	for _, raw := range contextRaw["prizes"].([]any) {
		if s, ok := raw.(string); ok {
			prizes = append(prizes, models.PrizeCategory(s))
		}
	}
	themes := make([]string, 0)
	for _, raw := range contextRaw["themes"].([]any) {
		if s, ok := raw.(string); ok {
			themes = append(themes, s)
		}
	}

	return models.CopilotRequest{
		HackathonContext: models.CopilotHackathonContext{
			ID:                  id,
			Title:               title,
			Format:              format,
			Themes:              themes,
			StartDate:           contextRaw["startDate"].(string),
			FinalSubmissionDate: contextRaw["finalSubmissionDate"].(string),
			Prizes:              prizes,
			LocationText:        strings.TrimSpace(locationText),
		},
		UserSkills: skills,
		Goal:       goal,
		Constraints: models.CopilotConstraints{
			HoursAvailable: int(math.Round(hours)),
			TeamSize:       int(math.Round(teamSize)),
			SkillLevel:     skillLevel,
		},
	}, nil
}

// GeneratePlan returns a project plan for the request. The external API is
// tried first; any failure there degrades to the deterministic fallback so
// the endpoint never errors on upstream trouble.
func (s *CopilotService) GeneratePlan(ctx context.Context, request models.CopilotRequest) models.CopilotResponse {
	if plan := s.callMedoAPI(ctx, request); plan != nil {
		if s.monitor != nil {
			s.monitor.TrackCopilot("api")
		}
		return *plan
	}
	if s.monitor != nil {
		s.monitor.TrackCopilot("fallback")
	}
	return BuildFallbackPlan(request)
}

func (s *CopilotService) callMedoAPI(ctx context.Context, request models.CopilotRequest) *models.CopilotResponse {
	if s.cfg.MedoAPIURL == "" || s.cfg.MedoAPIKey == "" {
		return nil
	}

	body, err := json.Marshal(map[string]any{
		"input": map[string]any{
			"prompt":  buildPrompt(request),
			"request": request,
		},
	})
	if err != nil {
		return nil
	}

	for attempt := 1; attempt <= copilotMaxAttempts; attempt++ {
		plan, err := s.attempt(ctx, body)
		if err == nil && plan != nil {
			return plan
		}
		if err != nil {
			s.logger.Warn("copilot api attempt failed", "attempt", attempt, "error", err)
		}
		if attempt < copilotMaxAttempts {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(copilotRetryBaseDelay * time.Duration(attempt)):
			}
		}
	}
	return nil
}

func (s *CopilotService) attempt(ctx context.Context, body []byte) (*models.CopilotResponse, error) {
	result, err := s.breaker.Execute(ctx, func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.MedoAPIURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.cfg.MedoAPIKey)

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("medo api returned %d", resp.StatusCode)
		}

		var payload map[string]any
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode medo response: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload, ok := result.(map[string]any)
	if !ok {
		return nil, nil
	}
	return pickResponseCandidate(payload), nil
}

// pickResponseCandidate digs a valid plan out of the payload: the object
// itself, the usual wrapper fields, a JSON string under "output", or an
// OpenAI-style choices[0].message.content string.
func pickResponseCandidate(payload map[string]any) *models.CopilotResponse {
	if plan := parsePlan(payload); plan != nil {
		return plan
	}

	for _, key := range []string{"data", "result", "output", "response", "message"} {
		if plan := parsePlan(payload[key]); plan != nil {
			return plan
		}
	}

	if output, ok := payload["output"].(string); ok {
		if plan := parsePlanJSON(output); plan != nil {
			return plan
		}
	}

	if choices, ok := payload["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					return parsePlanJSON(content)
				}
			}
		}
	}

	return nil
}

func parsePlanJSON(raw string) *models.CopilotResponse {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil
	}
	return parsePlan(value)
}

// parsePlan validates the full plan shape: every string field present and
// every list non-empty after dropping non-string entries.
func parsePlan(value any) *models.CopilotResponse {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	alignment, alignmentOK := obj["judgingAlignment"].(map[string]any)
	kit, kitOK := obj["submissionKit"].(map[string]any)
	if !alignmentOK || !kitOK {
		return nil
	}

	plan := models.CopilotResponse{
		ProjectTitle:     stringValue(obj["projectTitle"]),
		OneLinePitch:     stringValue(obj["oneLinePitch"]),
		ProblemStatement: stringValue(obj["problemStatement"]),
		SolutionOverview: stringValue(obj["solutionOverview"]),
		Architecture:     stringList(obj["architecture"]),
		BuildPlan:        stringList(obj["buildPlan"]),
		JudgingAlignment: models.JudgingAlignment{
			Execution:  stringValue(alignment["execution"]),
			Usefulness: stringValue(alignment["usefulness"]),
			Creativity: stringValue(alignment["creativity"]),
			Design:     stringValue(alignment["design"]),
			Complexity: stringValue(alignment["complexity"]),
		},
		SubmissionKit: models.SubmissionKit{
			DevpostSummary: stringValue(kit["devpostSummary"]),
			DemoScript60s:  stringValue(kit["demoScript60s"]),
			Checklist:      stringList(kit["checklist"]),
		},
		RiskMitigation: stringList(obj["riskMitigation"]),
	}

	if plan.ProjectTitle == "" || plan.OneLinePitch == "" ||
		plan.ProblemStatement == "" || plan.SolutionOverview == "" ||
		len(plan.Architecture) == 0 || len(plan.BuildPlan) == 0 ||
		len(plan.RiskMitigation) == 0 ||
		plan.JudgingAlignment.Execution == "" || plan.JudgingAlignment.Usefulness == "" ||
		plan.JudgingAlignment.Creativity == "" || plan.JudgingAlignment.Design == "" ||
		plan.JudgingAlignment.Complexity == "" ||
		plan.SubmissionKit.DevpostSummary == "" || plan.SubmissionKit.DemoScript60s == "" ||
		len(plan.SubmissionKit.Checklist) == 0 {
		return nil
	}

	return &plan
}

func buildPrompt(request models.CopilotRequest) string {
	schema, _ := json.MarshalIndent(map[string]any{
		"projectTitle":     "string",
		"oneLinePitch":     "string",
		"problemStatement": "string",
		"solutionOverview": "string",
		"architecture":     []string{"string"},
		"buildPlan":        []string{"string"},
		"judgingAlignment": map[string]string{
			"execution":  "string",
			"usefulness": "string",
			"creativity": "string",
			"design":     "string",
			"complexity": "string",
		},
		"submissionKit": map[string]any{
			"devpostSummary": "string",
			"demoScript60s":  "string",
			"checklist":      []string{"string"},
		},
		"riskMitigation": []string{"string"},
	}, "", "  ")
	eventContext, _ := json.MarshalIndent(request.HackathonContext, "", "  ")
	skills, _ := json.MarshalIndent(request.UserSkills, "", "  ")
	constraints, _ := json.MarshalIndent(request.Constraints, "", "  ")

	return strings.Join([]string{
		"You are a hackathon copilot.",
		"Return JSON only. Do not include markdown fences.",
		"All fields are required and must match this schema:",
		string(schema),
		"Hackathon Context:",
		string(eventContext),
		"User Skills:",
		string(skills),
		"Goal:",
		request.Goal,
		"Constraints:",
		string(constraints),
		"Must explicitly optimize for judging criteria: Execution, Usefulness, Creativity, Design, Technical Complexity.",
	}, "\n")
}

// BuildFallbackPlan is the deterministic plan served when the external API is
// unavailable or returns garbage.
func BuildFallbackPlan(request models.CopilotRequest) models.CopilotResponse {
	themeText := "the hackathon theme"
	if len(request.HackathonContext.Themes) > 0 {
		top := request.HackathonContext.Themes
		if len(top) > 2 {
			top = top[:2]
		}
		themeText = strings.Join(top, " + ")
	}
	skillsText := "your core skills"
	if len(request.UserSkills) > 0 {
		skillsText = strings.Join(request.UserSkills, ", ")
	}

	return models.CopilotResponse{
		ProjectTitle: request.HackathonContext.Title + " Copilot Project",
		OneLinePitch: fmt.Sprintf("Build a practical %s app using %s.", themeText, skillsText),
		ProblemStatement: "Students often struggle to turn ideas into working projects " +
			"within short hackathon windows.",
		SolutionOverview: "Create an agent-assisted workflow app that plans tasks, " +
			"tracks progress, and generates submission-ready outputs.",
		Architecture: []string{
			"React frontend for user inputs and result views",
			"Go API for orchestration and validation",
			"Medo API integration for guided planning output",
		},
		BuildPlan: []string{
			"Define one focused user problem and success metric",
			"Implement core interaction flow and working prototype",
			"Add submission polish: screenshots, summary, and demo script",
		},
		JudgingAlignment: models.JudgingAlignment{
			Execution:  "Working end-to-end flow with clear UI and reliable API handling.",
			Usefulness: "Solves project-scoping pain for students under time pressure.",
			Creativity: "Combines hackathon discovery with AI-guided execution.",
			Design:     "Simple, clear interaction with actionable outputs.",
			Complexity: "Demonstrates API orchestration, validation, and recommendation logic.",
		},
		SubmissionKit: models.SubmissionKit{
			DevpostSummary: "A skill-aware hackathon copilot that turns event context " +
				"into an actionable build and submission strategy.",
			DemoScript60s: "Show skill profile, open a hackathon card, generate plan " +
				"with Medo, then present build checklist and judging alignment.",
			Checklist: []string{
				"Working prototype link",
				"Problem + solution summary",
				"Short demo video",
				"Repository and run instructions",
			},
		},
		RiskMitigation: []string{
			"Keep scope to one polished user flow",
			"Use fallback response if external API fails",
			"Prioritize reliability over feature breadth",
		},
	}
}

func trimmedString(value any) string {
	return strings.TrimSpace(stringValue(value))
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func finiteNumber(value any) (float64, bool) {
	f, ok := value.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringList(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
