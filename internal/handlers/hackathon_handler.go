// handlers/hackathon_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Jethin10/Hack-FInder/internal/query"
	"github.com/Jethin10/Hack-FInder/internal/skills"
	"github.com/Jethin10/Hack-FInder/internal/timeline"
	"github.com/Jethin10/Hack-FInder/models"
	"github.com/Jethin10/Hack-FInder/monitoring"
)

// RecordFinder is the slice of the store the detail endpoint needs.
type RecordFinder interface {
	FindByID(ctx context.Context, id string) (*models.Hackathon, error)
}

type HackathonHandler struct {
	engine  *query.Engine
	finder  RecordFinder
	monitor *monitoring.Monitor
}

func NewHackathonHandler(engine *query.Engine, finder RecordFinder, monitor *monitoring.Monitor) *HackathonHandler {
	return &HackathonHandler{
		engine:  engine,
		finder:  finder,
		monitor: monitor,
	}
}

// List - filtered, sorted, paginated hackathon listing
func (h *HackathonHandler) List(e *core.RequestEvent) error {
	started := time.Now()

	filters := query.ParseFilters(e.Request.URL.Query())
	response, err := h.engine.List(e.Request.Context(), filters)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to load hackathons", err)
	}

	if h.monitor != nil {
		h.monitor.TrackListQuery("list", time.Since(started))
	}
	return e.JSON(http.StatusOK, response)
}

// Command - natural-language command applied on top of the current filters
func (h *HackathonHandler) Command(e *core.RequestEvent) error {
	started := time.Now()

	values := e.Request.URL.Query()
	command := values.Get("command")
	if command == "" {
		command = values.Get("q")
	}
	if command == "" {
		return apis.NewBadRequestError("Command text required", nil)
	}

	previous := query.ParseFilters(values)
	filters := query.ParseCommand(command, previous)

	response, err := h.engine.List(e.Request.Context(), filters)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to load hackathons", err)
	}

	if h.monitor != nil {
		h.monitor.TrackListQuery("command", time.Since(started))
	}
	return e.JSON(http.StatusOK, map[string]any{
		"filters": filters,
		"results": response,
	})
}

// rankedItem decorates a list item with its skill-match metrics.
type rankedItem struct {
	models.ListItem
	MatchScore   int `json:"matchScore"`
	MatchOverlap int `json:"matchOverlap"`
}

// Ranked - the filtered list reordered by skill-match score
func (h *HackathonHandler) Ranked(e *core.RequestEvent) error {
	started := time.Now()

	var req struct {
		Filters    *models.ListFilters `json:"filters"`
		UserSkills []string            `json:"userSkills"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	filters := models.DefaultListFilters()
	if req.Filters != nil {
		filters = query.SanitizeFilters(*req.Filters)
	}

	response, err := h.engine.List(e.Request.Context(), filters)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to load hackathons", err)
	}

	sources := make([]skills.TagSource, len(response.Data))
	for i, item := range response.Data {
		sources[i] = skills.TagSource{Title: item.Title, Themes: item.Themes}
	}

	ranked := make([]rankedItem, len(response.Data))
	for position, entry := range skills.Rank(req.UserSkills, sources) {
		ranked[position] = rankedItem{
			ListItem:     response.Data[entry.Index],
			MatchScore:   entry.Score,
			MatchOverlap: entry.Overlap,
		}
	}

	if h.monitor != nil {
		h.monitor.TrackListQuery("ranked", time.Since(started))
	}
	return e.JSON(http.StatusOK, map[string]any{
		"data":        ranked,
		"total":       response.Total,
		"limit":       response.Limit,
		"offset":      response.Offset,
		"facets":      response.Facets,
		"generatedAt": response.GeneratedAt,
	})
}

// Detail - one hackathon with its timeline description
func (h *HackathonHandler) Detail(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	if id == "" {
		return apis.NewBadRequestError("Hackathon ID required", nil)
	}

	record, err := h.finder.FindByID(e.Request.Context(), id)
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to load hackathon", err)
	}
	if record == nil {
		return apis.NewNotFoundError("Hackathon not found", nil)
	}

	description := timeline.Describe(record.StartDate, record.FinalSubmissionDate, time.Now().UTC())
	return e.JSON(http.StatusOK, map[string]any{
		"hackathon": record,
		"timeline":  description,
	})
}
