package syncdto

// BulkSyncRequest is the payload for triggering a bulk sync run
type BulkSyncRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	SinceDays int    `json:"since_days,omitempty" validate:"omitempty,min=1,max=30"`
}
