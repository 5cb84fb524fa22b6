// Package query turns raw HTTP query parameters into a filter specification
// and runs the list pipeline: fetch, hydrate, filter, enrich, sort, paginate,
// facet.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Jethin10/Hack-FInder/models"
)

const (
	minRadiusKm        = 10
	maxRadiusKm        = 2000
	defaultRadiusKm    = 50
	minLimit           = 1
	maxLimit           = 200
	defaultLimit       = 50
	minStartWithinDays = 1
	maxStartWithinDays = 60
)

func parseBool(values url.Values, key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(values.Get(key)))
	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}

func parseFloat(values url.Values, key string, fallback float64) float64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return fallback
	}
	return parsed
}

func parseClampedInt(values url.Values, key string, fallback, min, max int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if parsed < min {
		return min
	}
	if parsed > max {
		return max
	}
	return parsed
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func parseList(values url.Values, key string) []string {
	raw := values.Get(key)
	if raw == "" {
		return []string{}
	}

	entries := strings.Split(raw, ",")
	parsed := make([]string, 0, len(entries))
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(trimmed); err == nil {
			trimmed = decoded
		}
		if trimmed != "" {
			parsed = append(parsed, trimmed)
		}
	}
	return parsed
}

func parsePrizes(values url.Values, key string) []models.PrizeCategory {
	entries := parseList(values, key)
	prizes := make([]models.PrizeCategory, 0, len(entries))
	for _, entry := range entries {
		if candidate := models.PrizeCategory(entry); models.ValidPrizeCategories[candidate] {
			prizes = append(prizes, candidate)
		}
	}
	return prizes
}

func parseEnum(values url.Values, key string, allowed []string, fallback string) string {
	raw := values.Get(key)
	for _, candidate := range allowed {
		if raw == candidate {
			return candidate
		}
	}
	return fallback
}

// ParseFilters builds a filter specification from list-endpoint query
// parameters. Every field clamps or falls back to a safe default; parsing
// never fails.
func ParseFilters(values url.Values) models.ListFilters {
	filters := models.DefaultListFilters()

	filters.IncludeOnline = parseBool(values, "includeOnline", true)
	filters.IncludeOffline = parseBool(values, "includeOffline", true)
	filters.IncludeHybrid = parseBool(values, "includeHybrid", true)

	baseLat := parseFloat(values, "baseLat", math.NaN())
	baseLng := parseFloat(values, "baseLng", math.NaN())
	if !math.IsNaN(baseLat) && !math.IsNaN(baseLng) {
		filters.BaseCoordinates = &models.Coordinates{Lat: baseLat, Lng: baseLng}
	}
	filters.RadiusKm = clampFloat(parseFloat(values, "radiusKm", defaultRadiusKm), minRadiusKm, maxRadiusKm)

	// 0 keeps the registration-window filter disabled.
	filters.StartWithinDays = parseClampedInt(values, "startWithinDays", 0, 0, maxStartWithinDays)
	if filters.StartWithinDays < minStartWithinDays {
		filters.StartWithinDays = 0
	}

	filters.TimeToFinal = models.TimeToFinalFilter(parseEnum(values, "timeToFinal",
		[]string{"any", "lt3days", "oneWeek", "oneMonthPlus"}, "any"))
	filters.StartProximity = models.StartProximityFilter(parseEnum(values, "startProximity",
		[]string{"any", "happeningNow", "lt48Hours", "nextWeek"}, "any"))
	filters.OrganizerTrackRecord = models.OrganizerTrackRecordFilter(parseEnum(values, "organizerTrackRecord",
		[]string{"any", "established", "firstTime"}, "any"))
	filters.SortBy = models.SortBy(parseEnum(values, "sortBy",
		[]string{"startDate", "daysToFinal", "createdAt"}, "startDate"))
	filters.SortOrder = models.SortOrder(parseEnum(values, "sortOrder",
		[]string{"asc", "desc"}, "asc"))

	filters.Themes = parseList(values, "themes")
	filters.Prizes = parsePrizes(values, "prizes")

	filters.SearchQuery = values.Get("searchQuery")
	if filters.SearchQuery == "" {
		filters.SearchQuery = values.Get("q")
	}

	filters.Limit = parseClampedInt(values, "limit", defaultLimit, minLimit, maxLimit)
	filters.Offset = parseClampedInt(values, "offset", 0, 0, math.MaxInt32)

	return filters
}

// SanitizeFilters re-applies the numeric clamps to a filter specification
// that arrived in a request body and therefore skipped the query-string
// parsers. Unknown enum values need no handling here: the engine treats them
// as "any".
func SanitizeFilters(filters models.ListFilters) models.ListFilters {
	if filters.RadiusKm == 0 {
		filters.RadiusKm = defaultRadiusKm
	}
	filters.RadiusKm = clampFloat(filters.RadiusKm, minRadiusKm, maxRadiusKm)

	if filters.StartWithinDays < minStartWithinDays {
		filters.StartWithinDays = 0
	} else if filters.StartWithinDays > maxStartWithinDays {
		filters.StartWithinDays = maxStartWithinDays
	}

	switch {
	case filters.Limit == 0:
		filters.Limit = defaultLimit
	case filters.Limit < minLimit:
		filters.Limit = minLimit
	case filters.Limit > maxLimit:
		filters.Limit = maxLimit
	}

	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return filters
}
