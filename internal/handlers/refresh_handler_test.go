package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jethin10/Hack-FInder/models"
)

type fakeRefresher struct {
	result  models.RefreshResult
	last    *models.RefreshResult
	runErr  error
	lastErr error
}

func (f *fakeRefresher) Run(context.Context) (models.RefreshResult, error) {
	return f.result, f.runErr
}

func (f *fakeRefresher) LastResult(context.Context) (*models.RefreshResult, error) {
	return f.last, f.lastErr
}

func refreshResultFixture() models.RefreshResult {
	return models.RefreshResult{
		StartedAt:   "2026-03-01T00:00:00Z",
		CompletedAt: "2026-03-01T00:02:10Z",
		Summary: models.RefreshSummary{
			Status:      "ok",
			Sources:     []string{"devpost", "devfolio"},
			Fetched:     42,
			WrittenToDB: 40,
		},
	}
}

func TestRefreshRun_ReturnsSummary(t *testing.T) {
	handler := NewRefreshHandler(&fakeRefresher{result: refreshResultFixture()})

	req := httptest.NewRequest(http.MethodPost, "/api/hackathons/refresh", nil)
	event, rec := newRequestEvent(req)

	require.NoError(t, handler.Run(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.RefreshResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 42, result.Summary.Fetched)
	assert.Equal(t, 40, result.Summary.WrittenToDB)
}

func TestRefreshRun_PipelineFailureIsBadGateway(t *testing.T) {
	handler := NewRefreshHandler(&fakeRefresher{runErr: errors.New("refresh ingestion timed out")})

	req := httptest.NewRequest(http.MethodPost, "/api/hackathons/refresh", nil)
	event, _ := newRequestEvent(req)

	err := handler.Run(event)
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Message, "timed out")
}

func TestRefreshLast_NothingCachedIsNotFound(t *testing.T) {
	handler := NewRefreshHandler(&fakeRefresher{last: nil})

	req := httptest.NewRequest(http.MethodGet, "/api/hackathons/refresh/last", nil)
	event, _ := newRequestEvent(req)

	err := handler.Last(event)
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestRefreshLast_ReturnsCachedResult(t *testing.T) {
	cached := refreshResultFixture()
	handler := NewRefreshHandler(&fakeRefresher{last: &cached})

	req := httptest.NewRequest(http.MethodGet, "/api/hackathons/refresh/last", nil)
	event, rec := newRequestEvent(req)

	require.NoError(t, handler.Last(event))
	assert.Equal(t, http.StatusOK, rec.Code)

	var result models.RefreshResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "2026-03-01T00:00:00Z", result.StartedAt)
}

func TestRefreshLast_CacheErrorBecomes500(t *testing.T) {
	handler := NewRefreshHandler(&fakeRefresher{lastErr: errors.New("redis unreachable")})

	req := httptest.NewRequest(http.MethodGet, "/api/hackathons/refresh/last", nil)
	event, _ := newRequestEvent(req)

	err := handler.Last(event)
	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}
