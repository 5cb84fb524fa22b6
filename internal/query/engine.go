package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Jethin10/Hack-FInder/internal/geo"
	"github.com/Jethin10/Hack-FInder/internal/timeline"
	"github.com/Jethin10/Hack-FInder/models"
)

// RecordSource is the store adapter the engine reads from. Implementations
// must only return active records; the format set is a coarse pre-filter the
// engine re-validates.
type RecordSource interface {
	FetchActive(ctx context.Context, formats []models.Format) ([]models.Hackathon, error)
}

// Engine runs list queries. It is stateless per call; concurrent calls are
// independent.
type Engine struct {
	source RecordSource
	now    func() time.Time
}

// NewEngine builds an engine over a record source using wall-clock time.
func NewEngine(source RecordSource) *Engine {
	return &Engine{source: source, now: time.Now}
}

// NewEngineWithClock builds an engine with an injected clock for tests.
func NewEngineWithClock(source RecordSource, now func() time.Time) *Engine {
	return &Engine{source: source, now: now}
}

func matchesFormat(record models.Hackathon, filters models.ListFilters) bool {
	switch record.Format {
	case models.FormatOnline:
		return filters.IncludeOnline
	case models.FormatOffline:
		return filters.IncludeOffline
	case models.FormatHybrid:
		return filters.IncludeHybrid
	default:
		return false
	}
}

func matchesOrganizerTrackRecord(record models.Hackathon, filters models.ListFilters) bool {
	switch filters.OrganizerTrackRecord {
	case models.OrganizerEstablished:
		return record.OrganizerPastEvents >= 3
	case models.OrganizerFirstTimer:
		return record.OrganizerPastEvents == 0
	default:
		return true
	}
}

func matchesThemes(record models.Hackathon, filters models.ListFilters) bool {
	if len(filters.Themes) == 0 {
		return true
	}
	for _, wanted := range filters.Themes {
		for _, theme := range record.Themes {
			if theme == wanted {
				return true
			}
		}
	}
	return false
}

func matchesPrizes(record models.Hackathon, filters models.ListFilters) bool {
	if len(filters.Prizes) == 0 {
		return true
	}
	for _, wanted := range filters.Prizes {
		for _, prize := range record.Prizes {
			if prize == wanted {
				return true
			}
		}
	}
	return false
}

func matchesSearch(record models.Hackathon, filters models.ListFilters) bool {
	needle := strings.ToLower(strings.TrimSpace(filters.SearchQuery))
	if needle == "" {
		return true
	}

	if strings.Contains(strings.ToLower(record.Title), needle) ||
		strings.Contains(strings.ToLower(record.LocationText), needle) ||
		strings.Contains(strings.ToLower(record.SourcePlatform), needle) {
		return true
	}
	for _, theme := range record.Themes {
		if strings.Contains(strings.ToLower(theme), needle) {
			return true
		}
	}
	return false
}

// distanceIfApplicable decides geo inclusion. Online records are never
// geo-filtered; Offline/Hybrid records with no coordinates cannot be verified
// within radius and are dropped when a base location is set.
func distanceIfApplicable(record models.Hackathon, filters models.ListFilters) (include bool, distanceKm *float64) {
	localFormat := record.Format == models.FormatOffline || record.Format == models.FormatHybrid
	if filters.BaseCoordinates == nil || !localFormat {
		return true, nil
	}
	if record.Coordinates == nil {
		return false, nil
	}

	distance := geo.DistanceKm(*filters.BaseCoordinates, *record.Coordinates)
	rounded := geo.RoundKm(distance)
	return distance <= filters.RadiusKm, &rounded
}

func buildFacets(items []models.ListItem) models.Facets {
	themeSet := map[string]bool{}
	prizeSet := map[models.PrizeCategory]bool{}
	sourceSet := map[string]bool{}

	for _, item := range items {
		sourceSet[item.SourcePlatform] = true
		for _, theme := range item.Themes {
			themeSet[theme] = true
		}
		for _, prize := range item.Prizes {
			prizeSet[prize] = true
		}
	}

	facets := models.Facets{
		Themes:  make([]string, 0, len(themeSet)),
		Prizes:  make([]models.PrizeCategory, 0, len(prizeSet)),
		Sources: make([]string, 0, len(sourceSet)),
	}
	for theme := range themeSet {
		facets.Themes = append(facets.Themes, theme)
	}
	for prize := range prizeSet {
		facets.Prizes = append(facets.Prizes, prize)
	}
	for source := range sourceSet {
		facets.Sources = append(facets.Sources, source)
	}

	sort.Strings(facets.Themes)
	sort.Slice(facets.Prizes, func(i, j int) bool { return facets.Prizes[i] < facets.Prizes[j] })
	sort.Strings(facets.Sources)

	return facets
}

func sortKey(item models.ListItem, sortBy models.SortBy) float64 {
	switch sortBy {
	case models.SortByDaysToFinal:
		return float64(item.DaysToFinal)
	case models.SortByCreatedAt:
		return timestampKey(item.CreatedAt)
	default:
		return timestampKey(item.StartDate)
	}
}

// timestampKey degrades unparseable timestamps to zero so one corrupt row
// cannot break an entire sort.
func timestampKey(value string) float64 {
	ts, err := timeline.ParseTimestamp(value)
	if err != nil {
		return 0
	}
	return float64(ts.UnixMilli())
}

func sortItems(items []models.ListItem, filters models.ListFilters) {
	direction := 1.0
	if filters.SortOrder == models.SortDesc {
		direction = -1
	}

	sort.SliceStable(items, func(left, right int) bool {
		return (sortKey(items[left], filters.SortBy)-sortKey(items[right], filters.SortBy))*direction < 0
	})
}

func paginate(items []models.ListItem, offset, limit int) []models.ListItem {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= len(items) {
		return []models.ListItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// List executes the full query pipeline and returns the paginated, faceted
// response. Bad data in individual records degrades; List only fails when
// the store itself does.
func (e *Engine) List(ctx context.Context, filters models.ListFilters) (models.ListResponse, error) {
	now := e.now()
	response := models.ListResponse{
		Data:        []models.ListItem{},
		Limit:       filters.Limit,
		Offset:      filters.Offset,
		Facets:      models.Facets{Themes: []string{}, Prizes: []models.PrizeCategory{}, Sources: []string{}},
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	formats := filters.EnabledFormats()
	if len(formats) == 0 {
		// Deliberately empty, not an error: the caller unchecked every format.
		return response, nil
	}

	records, err := e.source.FetchActive(ctx, formats)
	if err != nil {
		return models.ListResponse{}, err
	}

	filtered := make([]models.ListItem, 0, len(records))
	for _, record := range records {
		if !matchesFormat(record, filters) {
			continue
		}
		if filters.StartWithinDays > 0 &&
			!timeline.WithinRegistrationWindow(record.StartDate, record.FinalSubmissionDate, filters.StartWithinDays, now) {
			continue
		}
		if !timeline.MatchesTimeToFinal(filters.TimeToFinal, record.DaysToFinal) {
			continue
		}
		if !matchesOrganizerTrackRecord(record, filters) {
			continue
		}
		if !matchesThemes(record, filters) {
			continue
		}
		if !matchesPrizes(record, filters) {
			continue
		}
		if !matchesSearch(record, filters) {
			continue
		}

		startsInHours, isHappeningNow := timeline.StartProximity(record.StartDate, record.FinalSubmissionDate, now)
		if !timeline.MatchesStartProximity(filters.StartProximity, startsInHours, isHappeningNow) {
			continue
		}

		include, distanceKm := distanceIfApplicable(record, filters)
		if !include {
			continue
		}

		filtered = append(filtered, models.ListItem{
			Hackathon:       record,
			DistanceKm:      distanceKm,
			StartsInHours:   startsInHours,
			IsHappeningNow:  isHappeningNow,
			OrganizerStatus: models.OrganizerStatusFor(record.OrganizerPastEvents),
		})
	}

	// Facets summarise the filtered view before pagination slices it.
	response.Facets = buildFacets(filtered)

	sortItems(filtered, filters)
	response.Total = len(filtered)
	response.Data = paginate(filtered, filters.Offset, filters.Limit)

	return response, nil
}
