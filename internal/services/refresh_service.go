package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Jethin10/Hack-FInder/config"
	"github.com/Jethin10/Hack-FInder/internal/store"
	"github.com/Jethin10/Hack-FInder/models"
	"github.com/Jethin10/Hack-FInder/monitoring"
)

// ErrNoSummary is returned when the ingestion output contains no summary line.
var ErrNoSummary = errors.New("ingestion summary was not found in script output")

const (
	lastRefreshKey = "refresh:last"
	lastRefreshTTL = 24 * time.Hour
	refreshChannel = "hackathons-refresh"
)

// Importer is the slice of the store the refresh pipeline writes through.
type Importer interface {
	ImportBatch(records []models.Hackathon) (store.ImportResult, error)
}

// CommandRunner executes the ingestion script and returns its stdout.
// Swapped out in tests.
type CommandRunner func(ctx context.Context, bin string, args []string) ([]byte, error)

type RefreshService struct {
	cfg      *config.Config
	importer Importer
	redis    *redis.Client
	pubnub   *pubnub.PubNub
	monitor  *monitoring.Monitor
	logger   *slog.Logger
	runner   CommandRunner

	group singleflight.Group
}

func NewRefreshService(cfg *config.Config, importer Importer, redisClient *redis.Client,
	pn *pubnub.PubNub, monitor *monitoring.Monitor, logger *slog.Logger) *RefreshService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshService{
		cfg:      cfg,
		importer: importer,
		redis:    redisClient,
		pubnub:   pn,
		monitor:  monitor,
		logger:   logger,
		runner:   runIngestionCommand,
	}
}

// Run executes the ingestion pipeline end to end: spawn the script, parse its
// summary line, import the JSON it wrote, cache and broadcast the result.
// Concurrent calls coalesce into one run and all receive its result.
func (s *RefreshService) Run(ctx context.Context) (models.RefreshResult, error) {
	value, err, shared := s.group.Do("refresh", func() (any, error) {
		result, runErr := s.execute(ctx)
		if runErr != nil && s.monitor != nil {
			s.monitor.TrackRefresh("error")
		}
		return result, runErr
	})
	if err != nil {
		return models.RefreshResult{}, err
	}
	if shared {
		s.logger.Info("joined in-flight refresh")
	}
	return value.(models.RefreshResult), nil
}

func (s *RefreshService) execute(ctx context.Context) (models.RefreshResult, error) {
	startedAt := time.Now().UTC()

	// The run is shared by every coalesced waiter, so it must not die with
	// the request context of whichever caller happened to start it. Only the
	// configured timeout bounds it.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.RefreshTimeout)
	defer cancel()

	args := []string{s.cfg.IngestionScript, "--max-pages", fmt.Sprint(s.cfg.IngestionMaxPages)}
	s.logger.Info("starting refresh", "bin", s.cfg.IngestionBin, "args", args)

	output, err := s.runner(runCtx, s.cfg.IngestionBin, args)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return models.RefreshResult{}, errors.New("refresh ingestion timed out")
		}
		return models.RefreshResult{}, err
	}

	summary, err := ExtractSummary(string(output))
	if err != nil {
		return models.RefreshResult{}, err
	}

	// The script already wrote the JSON snapshot; fold it into the store so
	// the API serves what was just fetched.
	if records, loadErr := store.LoadIngestedFile(s.cfg.IngestedJSONPath); loadErr != nil {
		s.logger.Warn("refresh completed but snapshot unreadable, store not updated",
			"path", s.cfg.IngestedJSONPath, "error", loadErr)
	} else if imported, importErr := s.importer.ImportBatch(records); importErr != nil {
		return models.RefreshResult{}, fmt.Errorf("import refreshed records: %w", importErr)
	} else {
		summary.WrittenToDB = imported.Written
		summary.DeactivatedInDB = imported.Deactivated
	}

	result := models.RefreshResult{
		StartedAt:   startedAt.Format(time.RFC3339),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
	}

	s.cacheResult(context.WithoutCancel(ctx), result)
	s.broadcast(result)
	if s.monitor != nil {
		s.monitor.TrackRefresh(summary.Status)
	}

	s.logger.Info("refresh finished",
		"status", summary.Status,
		"fetched", summary.Fetched,
		"writtenToDb", summary.WrittenToDB,
		"deactivatedInDb", summary.DeactivatedInDB)
	return result, nil
}

// LastResult returns the most recent cached refresh result, or nil when no
// refresh has completed since the cache last expired.
func (s *RefreshService) LastResult(ctx context.Context) (*models.RefreshResult, error) {
	data, err := s.redis.Get(ctx, lastRefreshKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read last refresh: %w", err)
	}
	var result models.RefreshResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode last refresh: %w", err)
	}
	return &result, nil
}

func (s *RefreshService) cacheResult(ctx context.Context, result models.RefreshResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, lastRefreshKey, data, lastRefreshTTL).Err(); err != nil {
		s.logger.Warn("could not cache refresh result", "error", err)
	}
}

func (s *RefreshService) broadcast(result models.RefreshResult) {
	if s.pubnub == nil {
		return
	}
	_, _, err := s.pubnub.Publish().
		Channel(refreshChannel).
		Message(map[string]any{
			"type":        "refresh_completed",
			"status":      result.Summary.Status,
			"fetched":     result.Summary.Fetched,
			"completedAt": result.CompletedAt,
		}).
		Execute()
	if err != nil {
		s.logger.Warn("could not broadcast refresh completion", "error", err)
	}
}

// ingestionSummaryLine is the snake_case JSON line the Python script prints.
type ingestionSummaryLine struct {
	Status        *string         `json:"status"`
	Sources       []any           `json:"sources"`
	Fetched       json.RawMessage `json:"fetched"`
	WrittenToDB   json.RawMessage `json:"written_to_db"`
	WrittenToJSON json.RawMessage `json:"written_to_json"`
	Deactivated   json.RawMessage `json:"deactivated_in_db"`
}

// ExtractSummary scans the script output from the last line backwards for a
// JSON object carrying a "fetched" key. Non-JSON lines (progress logs) and
// JSON lines without that key are skipped.
func ExtractSummary(output string) (models.RefreshSummary, error) {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")

	for index := len(lines) - 1; index >= 0; index-- {
		line := strings.TrimSpace(lines[index])
		if line == "" {
			continue
		}

		var parsed ingestionSummaryLine
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			continue
		}
		if parsed.Fetched == nil {
			continue
		}

		summary := models.RefreshSummary{
			Status:          "ok",
			Sources:         []string{},
			Fetched:         coerceNumber(parsed.Fetched),
			WrittenToDB:     coerceNumber(parsed.WrittenToDB),
			WrittenToJSON:   coerceNumber(parsed.WrittenToJSON),
			DeactivatedInDB: coerceNumber(parsed.Deactivated),
		}
		if parsed.Status != nil {
			summary.Status = *parsed.Status
		}
		for _, source := range parsed.Sources {
			if name, ok := source.(string); ok {
				if trimmed := strings.TrimSpace(name); trimmed != "" {
					summary.Sources = append(summary.Sources, trimmed)
				}
			}
		}
		return summary, nil
	}

	return models.RefreshSummary{}, ErrNoSummary
}

// coerceNumber mirrors the permissive numeric handling of the ingestion
// contract: anything non-numeric counts as zero.
func coerceNumber(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var asFloat float64
	if err := json.Unmarshal(raw, &asFloat); err == nil {
		return int(asFloat)
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		var parsed float64
		if _, scanErr := fmt.Sscanf(asString, "%g", &parsed); scanErr == nil {
			return int(parsed)
		}
	}
	return 0
}

func runIngestionCommand(ctx context.Context, bin string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = strings.TrimSpace(stdout.String())
		}
		if message == "" {
			message = "refresh ingestion failed"
		}
		return nil, fmt.Errorf("%s: %w", message, err)
	}
	return stdout.Bytes(), nil
}
