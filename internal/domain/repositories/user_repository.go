package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// UserRepository defines persistence operations for users and projects
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// ListWorkspaceMembers returns the users visible to the given user for
	// assignee resolution: the user plus everyone on the same team.
	ListWorkspaceMembers(ctx context.Context, userID uuid.UUID) ([]*entities.User, error)

	GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error)
}
