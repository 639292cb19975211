package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID       uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email    string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string     `json:"name" gorm:"type:varchar(255);not null"`
	IsActive bool       `json:"is_active" gorm:"default:true;not null"`
	TeamID   *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Team groups users and can carry a default notification channel config
type Team struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// Project is a unit of work ownership; it may belong to a team, which is
// the second hop in channel resolution.
type Project struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	TeamID    *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}
