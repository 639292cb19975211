package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// TaskRepository defines persistence operations for tasks in the internal store
type TaskRepository interface {
	CreateTask(ctx context.Context, task *entities.Task) error
	UpdateTask(ctx context.Context, task *entities.Task) error
	GetTaskByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	ListTasksByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.Task, error)

	CreateAssignment(ctx context.Context, assignment *entities.TaskAssignment) error
}
