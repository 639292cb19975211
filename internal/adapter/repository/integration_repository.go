package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// IntegrationRepository handles integration credential data operations
type IntegrationRepository struct {
	db *gorm.DB
}

// NewIntegrationRepository creates a new integration repository
func NewIntegrationRepository(db *gorm.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

// GetByID retrieves an integration by ID
func (r *IntegrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Integration, error) {
	var integration entities.Integration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&integration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &integration, nil
}

// ListActiveByUser retrieves all active integrations owned by a user
func (r *IntegrationRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Integration, error) {
	var integrations []*entities.Integration
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

// ListActiveByProvider retrieves all active integrations of one provider type
func (r *IntegrationRepository) ListActiveByProvider(ctx context.Context, provider entities.IntegrationProvider) ([]*entities.Integration, error) {
	var integrations []*entities.Integration
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND is_active = ?", provider, true).
		Order("created_at ASC").
		Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

// UpdateLastSyncedAt persists the sync window watermark
func (r *IntegrationRepository) UpdateLastSyncedAt(ctx context.Context, id uuid.UUID, syncedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Integration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_synced_at": syncedAt,
			"updated_at":     time.Now(),
		}).Error
}

// ListChannelConfigsByProject retrieves channel configs bound to a project
func (r *IntegrationRepository) ListChannelConfigsByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ChannelConfig, error) {
	var configs []*entities.ChannelConfig
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// ListChannelConfigsByTeam retrieves channel configs bound to a team
func (r *IntegrationRepository) ListChannelConfigsByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.ChannelConfig, error) {
	var configs []*entities.ChannelConfig
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}
