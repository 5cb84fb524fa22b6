package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jethin10/Hack-FInder/config"
	"github.com/Jethin10/Hack-FInder/internal/services"
	"github.com/Jethin10/Hack-FInder/models"
)

func copilotPayload() map[string]any {
	return map[string]any{
		"hackathonContext": map[string]any{
			"id":                  "devpost-1",
			"title":               "Global Agents Hack",
			"format":              "Online",
			"themes":              []any{"AI/ML", "Agents"},
			"startDate":           "2026-03-02T00:00:00Z",
			"finalSubmissionDate": "2026-03-05T00:00:00Z",
			"prizes":              []any{"Cash"},
			"locationText":        "Global",
		},
		"userSkills": []any{"react", "go"},
		"goal":       "win the AI track",
		"constraints": map[string]any{
			"hoursAvailable": 24,
			"teamSize":       2,
			"skillLevel":     "intermediate",
		},
	}
}

func newCopilotHandler(apiURL, apiKey string) *CopilotHandler {
	cfg := &config.Config{
		MedoAPIURL:  apiURL,
		MedoAPIKey:  apiKey,
		MedoTimeout: time.Second,
	}
	return NewCopilotHandler(services.NewCopilotService(cfg, nil, nil))
}

func postPlan(t *testing.T, handler *CopilotHandler, payload any) (*httptest.ResponseRecorder, error) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/copilot/plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	event, rec := newRequestEvent(req)
	return rec, handler.Plan(event)
}

func TestPlan_MalformedBodyIsBadRequest(t *testing.T) {
	handler := newCopilotHandler("", "")

	req := httptest.NewRequest(http.MethodPost, "/api/copilot/plan", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	event, _ := newRequestEvent(req)

	err := handler.Plan(event)
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestPlan_ValidationFailureCarriesReason(t *testing.T) {
	handler := newCopilotHandler("", "")

	payload := copilotPayload()
	delete(payload, "goal")

	_, err := postPlan(t, handler, payload)
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "goal")
}

func TestPlan_WithoutUpstreamServesFallback(t *testing.T) {
	handler := newCopilotHandler("", "")

	rec, err := postPlan(t, handler, copilotPayload())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var plan models.CopilotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "Global Agents Hack Copilot Project", plan.ProjectTitle)
	assert.NotEmpty(t, plan.BuildPlan)
	assert.NotEmpty(t, plan.RiskMitigation)
}

func TestPlan_UpstreamPlanPassedThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"projectTitle":     "StudyTogether",
			"oneLinePitch":     "Find a study buddy fast.",
			"problemStatement": "Studying alone is hard.",
			"solutionOverview": "Match students by topic.",
			"architecture":     []any{"React frontend", "Go API"},
			"buildPlan":        []any{"Scope", "Build", "Polish"},
			"judgingAlignment": map[string]any{
				"execution":  "e",
				"usefulness": "u",
				"creativity": "c",
				"design":     "d",
				"complexity": "x",
			},
			"submissionKit": map[string]any{
				"devpostSummary": "summary",
				"demoScript60s":  "script",
				"checklist":      []any{"link"},
			},
			"riskMitigation": []any{"cut scope"},
		})
	}))
	defer upstream.Close()

	handler := newCopilotHandler(upstream.URL, "test-key")

	rec, err := postPlan(t, handler, copilotPayload())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var plan models.CopilotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "StudyTogether", plan.ProjectTitle)
	assert.Equal(t, []string{"Scope", "Build", "Polish"}, plan.BuildPlan)
}
