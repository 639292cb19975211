package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// IntegrationRepository defines persistence operations for integration
// credentials and their channel configurations
type IntegrationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Integration, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Integration, error)
	ListActiveByProvider(ctx context.Context, provider entities.IntegrationProvider) ([]*entities.Integration, error)
	UpdateLastSyncedAt(ctx context.Context, id uuid.UUID, syncedAt time.Time) error

	ListChannelConfigsByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ChannelConfig, error)
	ListChannelConfigsByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.ChannelConfig, error)
}
