package entities

// SyncResult aggregates the outcome of one bulk sync run. It is always
// returned, even on early failure, so callers never lose partial counts.
type SyncResult struct {
	TotalProcessed int    `json:"total_processed"`
	NewCount       int    `json:"new_count"`
	UpdatedCount   int    `json:"updated_count"`
	SkippedCount   int    `json:"skipped_count"`
	ActionsCreated int    `json:"actions_created"`
	Error          string `json:"error,omitempty"`
}
