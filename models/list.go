package models

// ListItem is a hackathon enriched with query-time derived fields.
// DistanceKm is only set when the query carried base coordinates and the
// record has resolvable coordinates.
type ListItem struct {
	Hackathon
	DistanceKm      *float64        `json:"distanceKm,omitempty"`
	StartsInHours   int             `json:"startsInHours"`
	IsHappeningNow  bool            `json:"isHappeningNow"`
	OrganizerStatus OrganizerStatus `json:"organizerStatus"`
}

// Facets summarises the distinct values available inside the current
// filtered view, before pagination.
type Facets struct {
	Themes  []string        `json:"themes"`
	Prizes  []PrizeCategory `json:"prizes"`
	Sources []string        `json:"sources"`
}

// ListResponse is the paginated list payload.
type ListResponse struct {
	Data        []ListItem `json:"data"`
	Total       int        `json:"total"`
	Limit       int        `json:"limit"`
	Offset      int        `json:"offset"`
	Facets      Facets     `json:"facets"`
	GeneratedAt string     `json:"generatedAt"`
}
