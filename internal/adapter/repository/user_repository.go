package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// UserRepository handles user and project data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListWorkspaceMembers returns the user plus all active users on the same team
func (r *UserRepository) ListWorkspaceMembers(ctx context.Context, userID uuid.UUID) ([]*entities.User, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if user.TeamID == nil {
		return []*entities.User{user}, nil
	}

	var members []*entities.User
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND is_active = ?", *user.TeamID, true).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	// The requesting user is always included, even if deactivated mid-sync
	found := false
	for _, m := range members {
		if m.ID == user.ID {
			found = true
			break
		}
	}
	if !found {
		members = append(members, user)
	}
	return members, nil
}

// GetProject retrieves a project by ID
func (r *UserRepository) GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var project entities.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}
