package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IntegrationProvider identifies a destination or source system type
type IntegrationProvider string

const (
	ProviderChat   IntegrationProvider = "chat"   // channel-based destination (Slack workspace)
	ProviderBoard  IntegrationProvider = "board"  // external work-item board
	ProviderSource IntegrationProvider = "source" // transcript provider (sync source)
)

// IsValid checks if the provider is a known type
func (p IntegrationProvider) IsValid() bool {
	switch p {
	case ProviderChat, ProviderBoard, ProviderSource:
		return true
	}
	return false
}

// BoardColumnMapping binds semantic slots to board column ids. Only
// explicitly configured slots are written to the board; an empty id means
// the slot is omitted, never guessed.
type BoardColumnMapping struct {
	AssigneeColumnID    string `json:"assignee_column_id,omitempty"`
	DueDateColumnID     string `json:"due_date_column_id,omitempty"`
	PriorityColumnID    string `json:"priority_column_id,omitempty"`
	DescriptionColumnID string `json:"description_column_id,omitempty"`
}

// Integration is a user's credential for one external system
type Integration struct {
	ID          uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID           `json:"user_id" gorm:"type:uuid;not null;index"`
	Provider    IntegrationProvider `json:"provider" gorm:"type:varchar(50);not null;index"`
	AccessToken string              `json:"-" gorm:"type:text;not null"` // Never expose in JSON
	IsActive    bool                `json:"is_active" gorm:"default:true;not null"`

	// Board-specific configuration
	BoardID       string                                 `json:"board_id,omitempty" gorm:"type:varchar(255)"`
	ColumnMapping datatypes.JSONType[BoardColumnMapping] `json:"column_mapping,omitempty" gorm:"type:jsonb"`

	// Sync bookkeeping for source integrations
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty" gorm:"type:timestamp"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Integration) TableName() string {
	return "integrations"
}

// ChannelConfig binds an integration to a notification channel, scoped to a
// project or a team. Project-level rows override team-level rows during
// channel resolution.
type ChannelConfig struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	IntegrationID uuid.UUID  `json:"integration_id" gorm:"type:uuid;not null;index"`
	ProjectID     *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid;index"`
	TeamID        *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid;index"`
	ChannelID     string     `json:"channel_id" gorm:"type:varchar(255);not null"`
	ChannelName   string     `json:"channel_name,omitempty" gorm:"type:varchar(255)"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (ChannelConfig) TableName() string {
	return "channel_configs"
}
