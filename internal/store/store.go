// Package store persists hackathon records in the embedded database and
// hydrates them back into domain models. Malformed stored rows degrade field
// by field instead of failing the whole query.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"github.com/Jethin10/Hack-FInder/models"
)

const CollectionName = "hackathons"

type Store struct {
	app    core.App
	logger *slog.Logger
}

func New(app core.App, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{app: app, logger: logger}
}

// FetchActive returns the active records whose format is one of formats.
// This is the coarse pass; the query engine applies every other filter
// in memory.
func (s *Store) FetchActive(ctx context.Context, formats []models.Format) ([]models.Hackathon, error) {
	if len(formats) == 0 {
		return nil, nil
	}

	values := make([]any, len(formats))
	for i, format := range formats {
		values[i] = string(format)
	}

	var rows []dbx.NullStringMap
	err := s.app.DB().
		Select("external_id", "title", "url", "source_platform", "format",
			"location_text", "coordinates", "start_date",
			"final_submission_date", "created_at_iso", "days_to_final",
			"themes", "prizes", "organizer_past_events").
		From(CollectionName).
		Where(dbx.And(
			dbx.HashExp{"is_active": true},
			dbx.In("format", values...),
		)).
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch active hackathons: %w", err)
	}

	records := make([]models.Hackathon, 0, len(rows))
	for _, row := range rows {
		records = append(records, s.hydrate(row))
	}
	return records, nil
}

// FindByID looks a record up by its external id (e.g. "devpost-12345").
func (s *Store) FindByID(ctx context.Context, id string) (*models.Hackathon, error) {
	var rows []dbx.NullStringMap
	err := s.app.DB().
		Select("external_id", "title", "url", "source_platform", "format",
			"location_text", "coordinates", "start_date",
			"final_submission_date", "created_at_iso", "days_to_final",
			"themes", "prizes", "organizer_past_events").
		From(CollectionName).
		Where(dbx.HashExp{"external_id": id, "is_active": true}).
		Limit(1).
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("find hackathon %q: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	record := s.hydrate(rows[0])
	return &record, nil
}

// CountActive reports how many active records exist, for bootstrap and the
// active-records gauge.
func (s *Store) CountActive(ctx context.Context) (int, error) {
	var row struct {
		Total int `db:"total"`
	}
	err := s.app.DB().
		NewQuery("SELECT COUNT(*) AS total FROM " + CollectionName + " WHERE is_active = TRUE").
		WithContext(ctx).
		One(&row)
	if err != nil {
		return 0, fmt.Errorf("count active hackathons: %w", err)
	}
	return row.Total, nil
}

// hydrate converts a raw row into a domain record. Unparseable themes or
// prizes degrade to empty / {Unspecified}; a half-present coordinate pair
// degrades to no coordinates.
func (s *Store) hydrate(row dbx.NullStringMap) models.Hackathon {
	record := models.Hackathon{
		ID:                  row["external_id"].String,
		Title:               row["title"].String,
		URL:                 row["url"].String,
		SourcePlatform:      row["source_platform"].String,
		Format:              models.Format(row["format"].String),
		LocationText:        row["location_text"].String,
		StartDate:           row["start_date"].String,
		FinalSubmissionDate: row["final_submission_date"].String,
		CreatedAt:           row["created_at_iso"].String,
	}

	if days, err := strconv.Atoi(row["days_to_final"].String); err == nil {
		record.DaysToFinal = days
	}
	if past, err := strconv.Atoi(row["organizer_past_events"].String); err == nil {
		record.OrganizerPastEvents = past
	}

	if raw := row["coordinates"].String; raw != "" && raw != "null" {
		var coords models.Coordinates
		if err := json.Unmarshal([]byte(raw), &coords); err != nil {
			s.logger.Warn("malformed coordinates column, dropping",
				"id", record.ID, "error", err)
		} else {
			record.Coordinates = &coords
		}
	}

	record.Themes = []string{}
	if raw := row["themes"].String; raw != "" {
		var themes []string
		if err := json.Unmarshal([]byte(raw), &themes); err != nil {
			s.logger.Warn("malformed themes column, dropping",
				"id", record.ID, "error", err)
		} else if themes != nil {
			record.Themes = themes
		}
	}

	var prizes []models.PrizeCategory
	if raw := row["prizes"].String; raw != "" {
		if err := json.Unmarshal([]byte(raw), &prizes); err != nil {
			s.logger.Warn("malformed prizes column, falling back",
				"id", record.ID, "error", err)
			prizes = nil
		}
	}
	record.Prizes = models.NormalizePrizes(prizes)

	return record
}
