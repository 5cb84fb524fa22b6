package store

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"github.com/Jethin10/Hack-FInder/models"
)

// ImportResult reports what an ImportBatch call changed.
type ImportResult struct {
	Written     int
	Deactivated int
	Skipped     int
}

// ImportBatch upserts the given records keyed by external id and deactivates
// every active record that is absent from the batch. Records that fail
// validation are skipped, not fatal. The whole batch commits in one
// transaction.
func (s *Store) ImportBatch(records []models.Hackathon) (ImportResult, error) {
	var result ImportResult

	err := s.app.RunInTransaction(func(txApp core.App) error {
		collection, err := txApp.FindCollectionByNameOrId(CollectionName)
		if err != nil {
			return fmt.Errorf("find %s collection: %w", CollectionName, err)
		}

		seen := make(map[string]bool, len(records))
		for _, record := range records {
			if err := ValidateRecord(record); err != nil {
				s.logger.Warn("skipping invalid record", "id", record.ID, "error", err)
				result.Skipped++
				continue
			}
			if seen[record.ID] {
				result.Skipped++
				continue
			}
			seen[record.ID] = true

			row, err := txApp.FindFirstRecordByData(CollectionName, "external_id", record.ID)
			if err != nil {
				row = core.NewRecord(collection)
				row.Set("external_id", record.ID)
			}
			if err := s.fill(row, record); err != nil {
				return err
			}
			if err := txApp.Save(row); err != nil {
				return fmt.Errorf("save record %q: %w", record.ID, err)
			}
			result.Written++
		}

		stale, err := txApp.FindAllRecords(CollectionName)
		if err != nil {
			return fmt.Errorf("list records for deactivation: %w", err)
		}
		for _, row := range stale {
			if !row.GetBool("is_active") || seen[row.GetString("external_id")] {
				continue
			}
			row.Set("is_active", false)
			if err := txApp.Save(row); err != nil {
				return fmt.Errorf("deactivate record %q: %w", row.GetString("external_id"), err)
			}
			result.Deactivated++
		}

		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (s *Store) fill(row *core.Record, record models.Hackathon) error {
	themes, err := json.Marshal(record.Themes)
	if err != nil {
		return fmt.Errorf("marshal themes for %q: %w", record.ID, err)
	}
	prizes, err := json.Marshal(models.NormalizePrizes(record.Prizes))
	if err != nil {
		return fmt.Errorf("marshal prizes for %q: %w", record.ID, err)
	}

	row.Set("title", record.Title)
	row.Set("url", record.URL)
	row.Set("source_platform", record.SourcePlatform)
	row.Set("format", string(record.Format))
	row.Set("location_text", record.LocationText)
	row.Set("start_date", record.StartDate)
	row.Set("final_submission_date", record.FinalSubmissionDate)
	row.Set("created_at_iso", record.CreatedAt)
	row.Set("days_to_final", record.DaysToFinal)
	row.Set("themes", string(themes))
	row.Set("prizes", string(prizes))
	row.Set("organizer_past_events", record.OrganizerPastEvents)
	row.Set("is_active", true)

	if record.Coordinates != nil {
		coords, err := json.Marshal(record.Coordinates)
		if err != nil {
			return fmt.Errorf("marshal coordinates for %q: %w", record.ID, err)
		}
		row.Set("coordinates", string(coords))
	} else {
		row.Set("coordinates", nil)
	}
	return nil
}

// ValidateRecord enforces the minimum shape a listing needs before it may
// enter the database.
func ValidateRecord(record models.Hackathon) error {
	switch {
	case record.ID == "":
		return fmt.Errorf("missing id")
	case record.Title == "":
		return fmt.Errorf("missing title")
	case record.URL == "":
		return fmt.Errorf("missing url")
	case !record.Format.IsValid():
		return fmt.Errorf("invalid format %q", record.Format)
	case record.StartDate == "":
		return fmt.Errorf("missing start date")
	case record.FinalSubmissionDate == "":
		return fmt.Errorf("missing final submission date")
	case record.DaysToFinal < 0:
		return fmt.Errorf("negative days to final")
	case record.OrganizerPastEvents < 0:
		return fmt.Errorf("negative organizer past events")
	}
	return nil
}
