package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// TaskRepository handles task data operations
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask creates a new task
func (r *TaskRepository) CreateTask(ctx context.Context, task *entities.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// UpdateTask updates a task
func (r *TaskRepository) UpdateTask(ctx context.Context, task *entities.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Task{}).
		Where("id = ?", task.ID).
		Save(task).Error
}

// GetTaskByID retrieves a task by ID
func (r *TaskRepository) GetTaskByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// ListTasksByTranscript retrieves all tasks created from a transcript
func (r *TaskRepository) ListTasksByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.Task, error) {
	var tasks []*entities.Task
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateAssignment creates an assignment link between a task and a user
func (r *TaskRepository) CreateAssignment(ctx context.Context, assignment *entities.TaskAssignment) error {
	if assignment == nil {
		return errors.New("assignment cannot be nil")
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}
