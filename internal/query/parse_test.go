package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jethin10/Hack-FInder/models"
)

func TestParseFilters_Defaults(t *testing.T) {
	filters := ParseFilters(url.Values{})

	assert.True(t, filters.IncludeOnline)
	assert.True(t, filters.IncludeOffline)
	assert.True(t, filters.IncludeHybrid)
	assert.Nil(t, filters.BaseCoordinates)
	assert.Equal(t, float64(50), filters.RadiusKm)
	assert.Equal(t, 0, filters.StartWithinDays)
	assert.Equal(t, models.TimeToFinalAny, filters.TimeToFinal)
	assert.Equal(t, models.StartProximityAny, filters.StartProximity)
	assert.Equal(t, models.OrganizerAny, filters.OrganizerTrackRecord)
	assert.Empty(t, filters.Themes)
	assert.Empty(t, filters.Prizes)
	assert.Equal(t, models.SortByStartDate, filters.SortBy)
	assert.Equal(t, models.SortAsc, filters.SortOrder)
	assert.Equal(t, 50, filters.Limit)
	assert.Equal(t, 0, filters.Offset)
}

func TestParseFilters_BooleanStrings(t *testing.T) {
	filters := ParseFilters(url.Values{
		"includeOnline":  {"false"},
		"includeOffline": {"TRUE"},
		"includeHybrid":  {"nonsense"},
	})

	assert.False(t, filters.IncludeOnline)
	assert.True(t, filters.IncludeOffline)
	assert.True(t, filters.IncludeHybrid)
}

func TestParseFilters_CoordinatesRequireBothAxes(t *testing.T) {
	filters := ParseFilters(url.Values{"baseLat": {"28.6"}})
	assert.Nil(t, filters.BaseCoordinates)

	filters = ParseFilters(url.Values{"baseLat": {"28.6"}, "baseLng": {"77.2"}})
	require.NotNil(t, filters.BaseCoordinates)
	assert.Equal(t, 28.6, filters.BaseCoordinates.Lat)
	assert.Equal(t, 77.2, filters.BaseCoordinates.Lng)
}

func TestParseFilters_Clamping(t *testing.T) {
	filters := ParseFilters(url.Values{
		"radiusKm":        {"99999"},
		"limit":           {"1000"},
		"offset":          {"-3"},
		"startWithinDays": {"900"},
	})

	assert.Equal(t, float64(2000), filters.RadiusKm)
	assert.Equal(t, 200, filters.Limit)
	assert.Equal(t, 0, filters.Offset)
	assert.Equal(t, 60, filters.StartWithinDays)

	filters = ParseFilters(url.Values{"radiusKm": {"1"}, "limit": {"0"}})
	assert.Equal(t, float64(10), filters.RadiusKm)
	assert.Equal(t, 1, filters.Limit)
}

func TestParseFilters_StartWithinDaysDisabledBelowOne(t *testing.T) {
	filters := ParseFilters(url.Values{"startWithinDays": {"0"}})
	assert.Equal(t, 0, filters.StartWithinDays)

	filters = ParseFilters(url.Values{"startWithinDays": {"-4"}})
	assert.Equal(t, 0, filters.StartWithinDays)

	filters = ParseFilters(url.Values{"startWithinDays": {"7"}})
	assert.Equal(t, 7, filters.StartWithinDays)
}

func TestParseFilters_EnumsFallBack(t *testing.T) {
	filters := ParseFilters(url.Values{
		"timeToFinal":    {"whenever"},
		"startProximity": {"lt48Hours"},
		"sortBy":         {"price"},
		"sortOrder":      {"desc"},
	})

	assert.Equal(t, models.TimeToFinalAny, filters.TimeToFinal)
	assert.Equal(t, models.StartProximityLt48Hours, filters.StartProximity)
	assert.Equal(t, models.SortByStartDate, filters.SortBy)
	assert.Equal(t, models.SortDesc, filters.SortOrder)
}

func TestParseFilters_Lists(t *testing.T) {
	filters := ParseFilters(url.Values{
		"themes": {"AI/ML, Web3 ,,Gaming"},
		"prizes": {"Cash,Trips,Swag"},
	})

	assert.Equal(t, []string{"AI/ML", "Web3", "Gaming"}, filters.Themes)
	assert.Equal(t, []models.PrizeCategory{models.PrizeCash, models.PrizeSwag}, filters.Prizes)
}

func TestParseFilters_SearchQueryAliases(t *testing.T) {
	filters := ParseFilters(url.Values{"q": {"delhi"}})
	assert.Equal(t, "delhi", filters.SearchQuery)

	filters = ParseFilters(url.Values{"searchQuery": {"mumbai"}, "q": {"delhi"}})
	assert.Equal(t, "mumbai", filters.SearchQuery)
}

func TestSanitizeFilters_ClampsBodySuppliedValues(t *testing.T) {
	filters := models.DefaultListFilters()
	filters.Offset = -1
	filters.Limit = -5
	filters.RadiusKm = 0
	filters.StartWithinDays = -3

	sanitized := SanitizeFilters(filters)
	assert.Equal(t, 0, sanitized.Offset)
	assert.Equal(t, 1, sanitized.Limit)
	assert.Equal(t, 50.0, sanitized.RadiusKm)
	assert.Equal(t, 0, sanitized.StartWithinDays)

	filters.Limit = 0
	filters.RadiusKm = 9999
	filters.StartWithinDays = 99
	sanitized = SanitizeFilters(filters)
	assert.Equal(t, 50, sanitized.Limit)
	assert.Equal(t, 2000.0, sanitized.RadiusKm)
	assert.Equal(t, 60, sanitized.StartWithinDays)

	filters.Limit = 500
	sanitized = SanitizeFilters(filters)
	assert.Equal(t, 200, sanitized.Limit)
}
