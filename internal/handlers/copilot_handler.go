package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Jethin10/Hack-FInder/internal/services"
)

type CopilotHandler struct {
	copilotService *services.CopilotService
}

func NewCopilotHandler(copilotService *services.CopilotService) *CopilotHandler {
	return &CopilotHandler{copilotService: copilotService}
}

// Plan - generate a project plan for a hackathon. Upstream failures degrade
// to the fallback plan, so only invalid input produces an error.
func (h *CopilotHandler) Plan(e *core.RequestEvent) error {
	var payload map[string]any
	if err := e.BindBody(&payload); err != nil {
		return apis.NewBadRequestError("Invalid request payload", err)
	}

	request, err := services.ValidateRequest(payload)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			return apis.NewBadRequestError(validationErr.Reason, nil)
		}
		return apis.NewBadRequestError("Invalid request payload", err)
	}

	plan := h.copilotService.GeneratePlan(e.Request.Context(), request)
	return e.JSON(http.StatusOK, plan)
}
