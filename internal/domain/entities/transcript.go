package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptRecord is a synced transcript from an external meeting-notes
// provider. The provider-assigned session id is the idempotency key: a
// re-sync of the same session updates the record in place instead of
// creating a duplicate.
type TranscriptRecord struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	IntegrationID uuid.UUID `json:"integration_id" gorm:"type:uuid;not null;index"`
	ExternalID    string    `json:"external_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	Title         string    `json:"title,omitempty" gorm:"type:varchar(500)"`
	Text          string    `json:"text" gorm:"type:text"`
	Source        string    `json:"source,omitempty" gorm:"type:varchar(50)"`
	MeetingDate   time.Time `json:"meeting_date,omitempty" gorm:"type:timestamp"`

	// ProcessedAt is sticky: once extraction has run for this session the
	// record is never re-extracted, even when a later sync updates it.
	ProcessedAt *time.Time `json:"processed_at,omitempty" gorm:"type:timestamp;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (TranscriptRecord) TableName() string {
	return "transcript_records"
}

// NewTranscriptRecord creates a new transcript record for a synced session
func NewTranscriptRecord(userID, integrationID uuid.UUID, externalID string) *TranscriptRecord {
	return &TranscriptRecord{
		ID:            uuid.New(),
		UserID:        userID,
		IntegrationID: integrationID,
		ExternalID:    externalID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// IsProcessed reports whether action extraction already ran for this record
func (t *TranscriptRecord) IsProcessed() bool {
	return t.ProcessedAt != nil
}
