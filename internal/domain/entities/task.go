package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TaskPriority defines the internal store's fixed priority tiers
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityQuick  TaskPriority = "quick" // default tier for unclassified items
)

// IsValid checks if the task priority is valid
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow, TaskPriorityQuick:
		return true
	}
	return false
}

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// Task is an action item materialized in the internal store.
// The owner is the user who ran the pipeline; the inferred assignee is
// linked through a separate TaskAssignment record when it resolves.
type Task struct {
	ID           uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID      uuid.UUID    `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title        string       `json:"title" gorm:"type:text;not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Priority     TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'quick'"`
	Status       TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	Source       string       `json:"source,omitempty" gorm:"type:varchar(50)"`
	TranscriptID *uuid.UUID   `json:"transcript_id,omitempty" gorm:"type:uuid;index"`
	DueDate      *time.Time   `json:"due_date,omitempty" gorm:"type:timestamp"`

	// Visual context captured alongside the transcript
	ScreenshotRefs datatypes.JSONSlice[int] `json:"screenshot_refs,omitempty" gorm:"type:jsonb"`

	// Cross-system linkage to the external board, filled by the board processor
	BoardItemID  string `json:"board_item_id,omitempty" gorm:"type:varchar(255);index"`
	BoardItemURL string `json:"board_item_url,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new task owned by the given user
func NewTask(ownerID uuid.UUID, title string) *Task {
	return &Task{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Priority:  TaskPriorityQuick,
		Status:    TaskStatusOpen,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// TaskAssignment links a task to a resolved assignee identity
type TaskAssignment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (TaskAssignment) TableName() string {
	return "task_assignments"
}

// NewTaskAssignment creates an assignment link between a task and a user
func NewTaskAssignment(taskID, userID uuid.UUID) *TaskAssignment {
	return &TaskAssignment{
		ID:        uuid.New(),
		TaskID:    taskID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}
