package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Jethin10/Hack-FInder/models"
)

// Refresher runs the ingestion pipeline and remembers its last result.
type Refresher interface {
	Run(ctx context.Context) (models.RefreshResult, error)
	LastResult(ctx context.Context) (*models.RefreshResult, error)
}

type RefreshHandler struct {
	refresher Refresher
}

func NewRefreshHandler(refresher Refresher) *RefreshHandler {
	return &RefreshHandler{refresher: refresher}
}

// Run - trigger the ingestion pipeline and wait for its summary
func (h *RefreshHandler) Run(e *core.RequestEvent) error {
	result, err := h.refresher.Run(e.Request.Context())
	if err != nil {
		return apis.NewApiError(http.StatusBadGateway, err.Error(), nil)
	}
	return e.JSON(http.StatusOK, result)
}

// Last - the most recent cached refresh result
func (h *RefreshHandler) Last(e *core.RequestEvent) error {
	result, err := h.refresher.LastResult(e.Request.Context())
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to load last refresh", err)
	}
	if result == nil {
		return apis.NewNotFoundError("No refresh has completed yet", nil)
	}
	return e.JSON(http.StatusOK, result)
}
