package store

import (
	"time"

	"github.com/Jethin10/Hack-FInder/models"
)

// SeedHackathons builds the fallback dataset used when no ingestion output
// exists. Dates are generated relative to now so the temporal filters always
// have data to match.
func SeedHackathons() []models.Hackathon {
	now := time.Now().UTC().Truncate(time.Hour)
	iso := func(offset time.Duration) string {
		return now.Add(offset).Format(time.RFC3339)
	}
	day := 24 * time.Hour

	return []models.Hackathon{
		{
			ID:                  "seed-agents-online",
			Title:               "Autonomous Agents Challenge",
			URL:                 "https://example.dev/agents-challenge",
			SourcePlatform:      "Devpost",
			Format:              models.FormatOnline,
			LocationText:        "Online",
			StartDate:           iso(-2 * day),
			FinalSubmissionDate: iso(5 * day),
			CreatedAt:           iso(-20 * day),
			DaysToFinal:         7,
			Themes:              []string{"AI/ML", "Agents"},
			OrganizerPastEvents: 6,
			Prizes:              []models.PrizeCategory{models.PrizeCash, models.PrizeSwag},
		},
		{
			ID:                  "seed-delhi-web3",
			Title:               "Delhi Web3 Builders Weekend",
			URL:                 "https://example.dev/delhi-web3",
			SourcePlatform:      "Devfolio",
			Format:              models.FormatOffline,
			LocationText:        "Delhi, India",
			Coordinates:         &models.Coordinates{Lat: 28.6139, Lng: 77.209},
			StartDate:           iso(30 * time.Hour),
			FinalSubmissionDate: iso(30*time.Hour + 2*day),
			CreatedAt:           iso(-3 * day),
			DaysToFinal:         2,
			Themes:              []string{"Web3", "Blockchain"},
			OrganizerPastEvents: 1,
			Prizes:              []models.PrizeCategory{models.PrizeCash, models.PrizeSwag},
		},
		{
			ID:                  "seed-bangalore-health",
			Title:               "Bangalore HealthTech Sprint",
			URL:                 "https://example.dev/blr-health",
			SourcePlatform:      "Devfolio",
			Format:              models.FormatHybrid,
			LocationText:        "Bangalore, India",
			Coordinates:         &models.Coordinates{Lat: 12.9716, Lng: 77.5946},
			StartDate:           iso(5 * day),
			FinalSubmissionDate: iso(10 * day),
			CreatedAt:           iso(-10 * day),
			DaysToFinal:         5,
			Themes:              []string{"Healthcare", "AI/ML"},
			OrganizerPastEvents: 4,
			Prizes:              []models.PrizeCategory{models.PrizeCash, models.PrizeJob},
		},
		{
			ID:                  "seed-sf-climate",
			Title:               "SF Climate Hack",
			URL:                 "https://example.dev/sf-climate",
			SourcePlatform:      "MLH",
			Format:              models.FormatOffline,
			LocationText:        "San Francisco, CA",
			Coordinates:         &models.Coordinates{Lat: 37.7749, Lng: -122.4194},
			StartDate:           iso(12 * day),
			FinalSubmissionDate: iso(14 * day),
			CreatedAt:           iso(-7 * day),
			DaysToFinal:         2,
			Themes:              []string{"Climate", "Sustainability"},
			OrganizerPastEvents: 0,
			Prizes:              []models.PrizeCategory{models.PrizeSwag},
		},
		{
			ID:                  "seed-global-edu",
			Title:               "Global Education Jam",
			URL:                 "https://example.dev/global-edu",
			SourcePlatform:      "Devpost",
			Format:              models.FormatOnline,
			LocationText:        "Global",
			StartDate:           iso(20 * day),
			FinalSubmissionDate: iso(55 * day),
			CreatedAt:           iso(-1 * day),
			DaysToFinal:         35,
			Themes:              []string{"Education", "Productivity"},
			OrganizerPastEvents: 2,
			Prizes:              []models.PrizeCategory{models.PrizeCash, models.PrizeJob},
		},
		{
			ID:                  "seed-berlin-fintech",
			Title:               "Berlin FinTech Marathon",
			URL:                 "https://example.dev/berlin-fintech",
			SourcePlatform:      "HackerEarth",
			Format:              models.FormatHybrid,
			LocationText:        "Berlin, Germany",
			Coordinates:         &models.Coordinates{Lat: 52.52, Lng: 13.405},
			StartDate:           iso(3 * day),
			FinalSubmissionDate: iso(40 * day),
			CreatedAt:           iso(-15 * day),
			DaysToFinal:         37,
			Themes:              []string{"FinTech", "Open Source"},
			OrganizerPastEvents: 8,
			Prizes:              []models.PrizeCategory{models.PrizeCash, models.PrizeJob},
		},
		{
			ID:                  "seed-mumbai-mobile",
			Title:               "Mumbai Mobile Makers",
			URL:                 "https://example.dev/mumbai-mobile",
			SourcePlatform:      "Devfolio",
			Format:              models.FormatOffline,
			LocationText:        "Mumbai, India",
			Coordinates:         &models.Coordinates{Lat: 19.076, Lng: 72.8777},
			StartDate:           iso(36 * time.Hour),
			FinalSubmissionDate: iso(36*time.Hour + day),
			CreatedAt:           iso(-5 * day),
			DaysToFinal:         1,
			Themes:              []string{"Mobile", "Design"},
			OrganizerPastEvents: 3,
			Prizes:              []models.PrizeCategory{},
		},
		{
			ID:                  "seed-security-ctf",
			Title:               "Zero Day Defense Hackathon",
			URL:                 "https://example.dev/zero-day",
			SourcePlatform:      "MLH",
			Format:              models.FormatOnline,
			LocationText:        "Online",
			StartDate:           iso(-10 * day),
			FinalSubmissionDate: iso(-2 * day),
			CreatedAt:           iso(-30 * day),
			DaysToFinal:         8,
			Themes:              []string{"Security", "Cloud"},
			OrganizerPastEvents: 5,
			Prizes:              []models.PrizeCategory{models.PrizeCash},
		},
	}
}
