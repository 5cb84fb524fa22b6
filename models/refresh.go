package models

// RefreshSummary is the final JSON line the ingestion job prints.
type RefreshSummary struct {
	Status          string   `json:"status"`
	Sources         []string `json:"sources"`
	Fetched         int      `json:"fetched"`
	WrittenToDB     int      `json:"writtenToDb"`
	WrittenToJSON   int      `json:"writtenToJson"`
	DeactivatedInDB int      `json:"deactivatedInDb"`
}

// RefreshResult wraps one completed refresh run.
type RefreshResult struct {
	StartedAt   string         `json:"startedAt"`
	CompletedAt string         `json:"completedAt"`
	Summary     RefreshSummary `json:"summary"`
}
