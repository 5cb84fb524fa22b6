package models

// TimeToFinalFilter selects by precomputed event-window length in days.
type TimeToFinalFilter string

const (
	TimeToFinalAny          TimeToFinalFilter = "any"
	TimeToFinalLt3Days      TimeToFinalFilter = "lt3days"
	TimeToFinalOneWeek      TimeToFinalFilter = "oneWeek"
	TimeToFinalOneMonthPlus TimeToFinalFilter = "oneMonthPlus"
)

// StartProximityFilter selects by how soon the event starts relative to now.
type StartProximityFilter string

const (
	StartProximityAny          StartProximityFilter = "any"
	StartProximityHappeningNow StartProximityFilter = "happeningNow"
	StartProximityLt48Hours    StartProximityFilter = "lt48Hours"
	StartProximityNextWeek     StartProximityFilter = "nextWeek"
)

// OrganizerTrackRecordFilter selects by organizer history.
type OrganizerTrackRecordFilter string

const (
	OrganizerAny         OrganizerTrackRecordFilter = "any"
	OrganizerEstablished OrganizerTrackRecordFilter = "established"
	OrganizerFirstTimer  OrganizerTrackRecordFilter = "firstTime"
)

// SortBy is the list sort field.
type SortBy string

const (
	SortByStartDate   SortBy = "startDate"
	SortByDaysToFinal SortBy = "daysToFinal"
	SortByCreatedAt   SortBy = "createdAt"
)

// SortOrder is the list sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListFilters is the full filter specification for one list query.
// StartWithinDays == 0 means the registration-window filter is disabled.
type ListFilters struct {
	IncludeOnline        bool                       `json:"includeOnline"`
	IncludeOffline       bool                       `json:"includeOffline"`
	IncludeHybrid        bool                       `json:"includeHybrid"`
	BaseCoordinates      *Coordinates               `json:"baseCoordinates,omitempty"`
	RadiusKm             float64                    `json:"radiusKm"`
	StartWithinDays      int                        `json:"startWithinDays,omitempty"`
	TimeToFinal          TimeToFinalFilter          `json:"timeToFinal"`
	StartProximity       StartProximityFilter       `json:"startProximity"`
	OrganizerTrackRecord OrganizerTrackRecordFilter `json:"organizerTrackRecord"`
	Themes               []string                   `json:"themes"`
	Prizes               []PrizeCategory            `json:"prizes"`
	SearchQuery          string                     `json:"searchQuery"`
	SortBy               SortBy                     `json:"sortBy"`
	SortOrder            SortOrder                  `json:"sortOrder"`
	Limit                int                        `json:"limit"`
	Offset               int                        `json:"offset"`
}

// DefaultListFilters returns the filter state an unconstrained query uses.
func DefaultListFilters() ListFilters {
	return ListFilters{
		IncludeOnline:        true,
		IncludeOffline:       true,
		IncludeHybrid:        true,
		RadiusKm:             50,
		TimeToFinal:          TimeToFinalAny,
		StartProximity:       StartProximityAny,
		OrganizerTrackRecord: OrganizerAny,
		Themes:               []string{},
		Prizes:               []PrizeCategory{},
		SortBy:               SortByStartDate,
		SortOrder:            SortAsc,
		Limit:                50,
		Offset:               0,
	}
}

// EnabledFormats expands the three inclusion flags into the format set the
// coarse fetch should use. Empty means the query matches nothing.
func (f ListFilters) EnabledFormats() []Format {
	formats := make([]Format, 0, 3)
	if f.IncludeOnline {
		formats = append(formats, FormatOnline)
	}
	if f.IncludeOffline {
		formats = append(formats, FormatOffline)
	}
	if f.IncludeHybrid {
		formats = append(formats, FormatHybrid)
	}
	return formats
}
