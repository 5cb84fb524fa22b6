package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Jethin10/Hack-FInder/models"
)

// Bootstrap makes sure the database has something to serve. When forceSeed is
// set, or the table is empty, it imports the ingestion output at jsonPath;
// if that file is missing or unreadable it falls back to the built-in seed
// dataset.
func (s *Store) Bootstrap(ctx context.Context, jsonPath string, forceSeed bool) error {
	if !forceSeed {
		count, err := s.CountActive(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.Info("database already populated", "active", count)
			return nil
		}
	}

	records, err := LoadIngestedFile(jsonPath)
	if err != nil {
		s.logger.Warn("ingestion output unavailable, using seed data",
			"path", jsonPath, "error", err)
		records = SeedHackathons()
	}

	result, err := s.ImportBatch(records)
	if err != nil {
		return fmt.Errorf("bootstrap import: %w", err)
	}
	s.logger.Info("bootstrap import finished",
		"written", result.Written,
		"deactivated", result.Deactivated,
		"skipped", result.Skipped)
	return nil
}

// LoadIngestedFile reads the JSON array the ingestion pipeline writes.
func LoadIngestedFile(path string) ([]models.Hackathon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []models.Hackathon
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s contains no records", path)
	}
	return records, nil
}
