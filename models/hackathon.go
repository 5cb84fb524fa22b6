package models

// Format is the attendance mode of a hackathon.
type Format string

const (
	FormatOnline  Format = "Online"
	FormatOffline Format = "Offline"
	FormatHybrid  Format = "Hybrid"
)

// AllFormats lists every known format, in display order.
var AllFormats = []Format{FormatOnline, FormatOffline, FormatHybrid}

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	return f == FormatOnline || f == FormatOffline || f == FormatHybrid
}

// PrizeCategory is one of the closed set of prize kinds a listing may carry.
type PrizeCategory string

const (
	PrizeCash        PrizeCategory = "Cash"
	PrizeSwag        PrizeCategory = "Swag"
	PrizeJob         PrizeCategory = "Job/Internship"
	PrizeUnspecified PrizeCategory = "Unspecified"
)

// ValidPrizeCategories is the closed category set; anything else is dropped on read.
var ValidPrizeCategories = map[PrizeCategory]bool{
	PrizeCash:        true,
	PrizeSwag:        true,
	PrizeJob:         true,
	PrizeUnspecified: true,
}

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Hackathon is an aggregated listing as persisted in the store.
// Timestamps stay as the ISO-8601 strings the ingestion emitted; they are
// parsed at query time so one corrupt field never poisons a whole row.
type Hackathon struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	URL                 string          `json:"url"`
	SourcePlatform      string          `json:"sourcePlatform"`
	Format              Format          `json:"format"`
	LocationText        string          `json:"locationText"`
	Coordinates         *Coordinates    `json:"coordinates,omitempty"`
	StartDate           string          `json:"startDate"`
	FinalSubmissionDate string          `json:"finalSubmissionDate"`
	DaysToFinal         int             `json:"daysToFinal"`
	Themes              []string        `json:"themes"`
	OrganizerPastEvents int             `json:"organizerPastEvents"`
	Prizes              []PrizeCategory `json:"prizes"`
	CreatedAt           string          `json:"createdAt"`
}

// OrganizerStatus buckets the organizer's track record.
type OrganizerStatus string

const (
	OrganizerTrusted   OrganizerStatus = "trusted"
	OrganizerReturning OrganizerStatus = "returning"
	OrganizerFirstTime OrganizerStatus = "first-time"
)

// OrganizerStatusFor maps a past-event count to its status bucket.
func OrganizerStatusFor(pastEvents int) OrganizerStatus {
	switch {
	case pastEvents >= 3:
		return OrganizerTrusted
	case pastEvents == 0:
		return OrganizerFirstTime
	default:
		return OrganizerReturning
	}
}

// NormalizePrizes drops unknown categories and guarantees a non-empty set,
// falling back to {Unspecified} per the store contract.
func NormalizePrizes(raw []PrizeCategory) []PrizeCategory {
	prizes := make([]PrizeCategory, 0, len(raw))
	for _, p := range raw {
		if ValidPrizeCategories[p] {
			prizes = append(prizes, p)
		}
	}
	if len(prizes) == 0 {
		return []PrizeCategory{PrizeUnspecified}
	}
	return prizes
}
