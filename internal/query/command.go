package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jethin10/Hack-FInder/models"
)

const milesToKm = 1.60934

// The keyword tables below are the command contract: heuristic and
// extensible, but not to be "completed" into a full taxonomy.

var commandThemeKeywords = []struct {
	keyword string
	theme   string
}{
	{"ai", "AI/ML"},
	{"ai/ml", "AI/ML"},
	{"ml", "AI/ML"},
	{"machine learning", "AI/ML"},
	{"web3", "Web3"},
	{"blockchain", "Blockchain"},
	{"health", "Healthcare"},
	{"healthcare", "Healthcare"},
	{"climate", "Climate"},
	{"fintech", "FinTech"},
	{"open", "Open Source"},
	{"open source", "Open Source"},
	{"beginner", "Beginner-friendly"},
	{"beginners", "Beginner-friendly"},
	{"gaming", "Gaming"},
	{"game", "Gaming"},
}

var commandPrizeKeywords = []struct {
	keyword string
	prize   models.PrizeCategory
}{
	{"cash", models.PrizeCash},
	{"prize", models.PrizeCash},
	{"swag", models.PrizeSwag},
	{"internship", models.PrizeJob},
	{"intern", models.PrizeJob},
	{"job", models.PrizeJob},
}

type commandLocation struct {
	label       string
	aliases     []string
	coordinates models.Coordinates
}

var commandLocations = []commandLocation{
	{"Delhi NCR", []string{"delhi ncr", "delhi", "gurugram", "gurgaon", "new delhi", "ncr"}, models.Coordinates{Lat: 28.6139, Lng: 77.209}},
	{"Noida", []string{"noida"}, models.Coordinates{Lat: 28.5355, Lng: 77.391}},
	{"Bangalore", []string{"bangalore", "bengaluru"}, models.Coordinates{Lat: 12.9716, Lng: 77.5946}},
	{"Mumbai", []string{"mumbai"}, models.Coordinates{Lat: 19.076, Lng: 72.8777}},
	{"Pune", []string{"pune"}, models.Coordinates{Lat: 18.5204, Lng: 73.8567}},
	{"Hyderabad", []string{"hyderabad"}, models.Coordinates{Lat: 17.385, Lng: 78.4867}},
	{"Chennai", []string{"chennai", "madras"}, models.Coordinates{Lat: 13.0827, Lng: 80.2707}},
	{"Kolkata", []string{"kolkata", "calcutta"}, models.Coordinates{Lat: 22.5726, Lng: 88.3639}},
	{"Jaipur", []string{"jaipur"}, models.Coordinates{Lat: 26.9124, Lng: 75.7873}},
	{"Ahmedabad", []string{"ahmedabad"}, models.Coordinates{Lat: 23.0225, Lng: 72.5714}},
	{"San Francisco", []string{"san francisco", "sf", "bay area"}, models.Coordinates{Lat: 37.7749, Lng: -122.4194}},
	{"New York", []string{"new york", "nyc", "manhattan"}, models.Coordinates{Lat: 40.7128, Lng: -74.006}},
	{"Seattle", []string{"seattle"}, models.Coordinates{Lat: 47.6062, Lng: -122.3321}},
	{"Austin", []string{"austin"}, models.Coordinates{Lat: 30.2672, Lng: -97.7431}},
	{"Boston", []string{"boston"}, models.Coordinates{Lat: 42.3601, Lng: -71.0589}},
	{"London", []string{"london"}, models.Coordinates{Lat: 51.5074, Lng: -0.1278}},
	{"Berlin", []string{"berlin"}, models.Coordinates{Lat: 52.52, Lng: 13.405}},
	{"Amsterdam", []string{"amsterdam"}, models.Coordinates{Lat: 52.3676, Lng: 4.9041}},
	{"Paris", []string{"paris"}, models.Coordinates{Lat: 48.8566, Lng: 2.3522}},
	{"Singapore", []string{"singapore"}, models.Coordinates{Lat: 1.3521, Lng: 103.8198}},
	{"Tokyo", []string{"tokyo"}, models.Coordinates{Lat: 35.6762, Lng: 139.6503}},
	{"Sydney", []string{"sydney"}, models.Coordinates{Lat: -33.8688, Lng: 151.2093}},
	{"Toronto", []string{"toronto"}, models.Coordinates{Lat: 43.6532, Lng: -79.3832}},
	{"Vancouver", []string{"vancouver"}, models.Coordinates{Lat: 49.2827, Lng: -123.1207}},
}

var (
	startsWithinPattern   = regexp.MustCompile(`\b(?:(?:closes?|closing)\s+(?:in|within)|(?:in|within|next))\s+(\d{1,2})\s+days?\b`)
	explicitRadiusPattern = regexp.MustCompile(`(?:within|radius|around|near)\s+(\d{1,4})\s*(km|kilometers?|mi|miles?)\b`)
	looseRadiusPattern    = regexp.MustCompile(`(\d{1,4})\s*(km|mi)\b`)
)

func includesAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func clampRadiusKm(value float64) float64 {
	return clampFloat(math.Round(value), minRadiusKm, maxRadiusKm)
}

// extractRadiusKm pulls an explicit radius out of the command, converting
// miles when needed. Returns (0, false) when no radius is mentioned.
func extractRadiusKm(normalized string) (float64, bool) {
	if match := explicitRadiusPattern.FindStringSubmatch(normalized); match != nil {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, false
		}
		if strings.HasPrefix(match[2], "mi") {
			return clampRadiusKm(value * milesToKm), true
		}
		return clampRadiusKm(value), true
	}

	if match := looseRadiusPattern.FindStringSubmatch(normalized); match != nil {
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, false
		}
		if match[2] == "mi" {
			return clampRadiusKm(value * milesToKm), true
		}
		return clampRadiusKm(value), true
	}

	return 0, false
}

func detectLocation(normalized string) *commandLocation {
	for i := range commandLocations {
		if includesAny(normalized, commandLocations[i].aliases...) {
			return &commandLocations[i]
		}
	}
	return nil
}

func appendUniqueThemes(existing []string, detected []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := append([]string{}, existing...)
	for _, theme := range existing {
		seen[theme] = true
	}
	for _, theme := range detected {
		if !seen[theme] {
			seen[theme] = true
			merged = append(merged, theme)
		}
	}
	return merged
}

func appendUniquePrizes(existing []models.PrizeCategory, detected []models.PrizeCategory) []models.PrizeCategory {
	seen := make(map[models.PrizeCategory]bool, len(existing))
	merged := append([]models.PrizeCategory{}, existing...)
	for _, prize := range existing {
		seen[prize] = true
	}
	for _, prize := range detected {
		if !seen[prize] {
			seen[prize] = true
			merged = append(merged, prize)
		}
	}
	return merged
}

func isResetCommand(normalized string) bool {
	return includesAny(normalized, "reset filters", "clear filters", "clear all filters", "show everything")
}

// ParseCommand interprets a natural-language command against the previous
// filter state and returns the next one. Unrecognized fragments leave the
// corresponding filter untouched; the raw command always becomes the search
// query.
func ParseCommand(command string, previous models.ListFilters) models.ListFilters {
	normalized := strings.ToLower(strings.TrimSpace(command))
	if isResetCommand(normalized) {
		next := models.DefaultListFilters()
		next.SearchQuery = strings.TrimSpace(command)
		return next
	}

	next := previous
	next.Themes = append([]string{}, previous.Themes...)
	next.Prizes = append([]models.PrizeCategory{}, previous.Prizes...)
	next.SearchQuery = strings.TrimSpace(command)

	if match := startsWithinPattern.FindStringSubmatch(normalized); match != nil {
		if days, err := strconv.Atoi(match[1]); err == nil && days > 0 {
			if days > maxStartWithinDays {
				days = maxStartWithinDays
			}
			next.StartWithinDays = days
		}
	} else if includesAny(normalized, "any start date", "no start window") {
		next.StartWithinDays = 0
	}

	mentionsOnline := includesAny(normalized, "online", "remote", "virtual", "global")
	mentionsOffline := includesAny(normalized, "offline", "in-person", "onsite", "on-site", "local")
	mentionsHybrid := includesAny(normalized, "hybrid")

	if mentionsOnline || mentionsOffline || mentionsHybrid {
		switch {
		case mentionsOnline && mentionsOffline:
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = true, true, true
		case mentionsHybrid && !mentionsOnline && !mentionsOffline:
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = false, false, true
		case mentionsOnline && !mentionsOffline && !mentionsHybrid:
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = true, false, false
		case mentionsOffline && !mentionsOnline && !mentionsHybrid:
			// In-person requests keep hybrid events visible too.
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = false, true, true
		default:
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = mentionsOnline, mentionsOffline, mentionsHybrid
		}
	}

	if includesAny(normalized, "happening now", "live now", "ongoing") {
		next.StartProximity = models.StartProximityHappeningNow
	} else if includesAny(normalized, "48 hours", "next 48", "soon", "tomorrow", "today") {
		next.StartProximity = models.StartProximityLt48Hours
	} else if includesAny(normalized, "next week", "this week", "upcoming week") {
		next.StartProximity = models.StartProximityNextWeek
	}

	if includesAny(normalized, "sprint", "weekend", "< 3", "under 3", "fast", "quick") {
		next.TimeToFinal = models.TimeToFinalLt3Days
	} else if includesAny(normalized, "1 week", "7 days", "week-long") {
		next.TimeToFinal = models.TimeToFinalOneWeek
	} else if includesAny(normalized, "month", "long term", "long-term") {
		next.TimeToFinal = models.TimeToFinalOneMonthPlus
	}

	if includesAny(normalized, "trusted organizer", "established organizer", "hosted") {
		next.OrganizerTrackRecord = models.OrganizerEstablished
	} else if includesAny(normalized, "first-time organizer", "new organizer") {
		next.OrganizerTrackRecord = models.OrganizerFirstTimer
	}

	if includesAny(normalized, "latest", "recent", "newly added") {
		next.SortBy, next.SortOrder = models.SortByCreatedAt, models.SortDesc
	} else if includesAny(normalized, "earliest", "soonest", "start soon") {
		next.SortBy, next.SortOrder = models.SortByStartDate, models.SortAsc
	} else if includesAny(normalized, "longest", "largest commitment") {
		next.SortBy, next.SortOrder = models.SortByDaysToFinal, models.SortDesc
	} else if includesAny(normalized, "shortest", "least commitment") {
		next.SortBy, next.SortOrder = models.SortByDaysToFinal, models.SortAsc
	}

	if location := detectLocation(normalized); location != nil {
		coords := location.coordinates
		next.BaseCoordinates = &coords
		if !mentionsOnline && !mentionsOffline && !mentionsHybrid {
			next.IncludeOnline, next.IncludeOffline, next.IncludeHybrid = true, true, true
		}
	} else if includesAny(normalized, "anywhere", "global only") {
		next.BaseCoordinates = nil
	}

	if radiusKm, ok := extractRadiusKm(normalized); ok {
		next.RadiusKm = radiusKm
	} else if includesAny(normalized, "near me", "nearby") {
		next.RadiusKm = defaultRadiusKm
	}

	detectedThemes := make([]string, 0, 4)
	for _, entry := range commandThemeKeywords {
		if strings.Contains(normalized, entry.keyword) {
			detectedThemes = append(detectedThemes, entry.theme)
		}
	}
	next.Themes = appendUniqueThemes(next.Themes, detectedThemes)

	detectedPrizes := make([]models.PrizeCategory, 0, 4)
	for _, entry := range commandPrizeKeywords {
		if strings.Contains(normalized, entry.keyword) {
			detectedPrizes = append(detectedPrizes, entry.prize)
		}
	}
	if includesAny(normalized, "unspecified", "no prize", "without prize") {
		detectedPrizes = append(detectedPrizes, models.PrizeUnspecified)
	}
	next.Prizes = appendUniquePrizes(next.Prizes, detectedPrizes)

	return next
}
