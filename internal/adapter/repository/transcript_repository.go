package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// TranscriptRepository handles transcript record data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Upsert creates or updates a transcript record keyed by its external
// session id. ProcessedAt on an existing row is never overwritten here.
func (r *TranscriptRepository) Upsert(ctx context.Context, record *entities.TranscriptRecord) (*entities.TranscriptRecord, bool, error) {
	if record == nil {
		return nil, false, errors.New("record cannot be nil")
	}
	if record.ExternalID == "" {
		return nil, false, errors.New("record external id is required")
	}

	existing, err := r.GetByExternalID(ctx, record.ExternalID)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
			return nil, false, err
		}
		return record, true, nil
	}

	updates := map[string]interface{}{
		"title":        record.Title,
		"text":         record.Text,
		"source":       record.Source,
		"meeting_date": record.MeetingDate,
		"updated_at":   time.Now(),
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.TranscriptRecord{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return nil, false, err
	}

	existing.Title = record.Title
	existing.Text = record.Text
	existing.Source = record.Source
	existing.MeetingDate = record.MeetingDate
	return existing, false, nil
}

// GetByExternalID retrieves a transcript record by its provider session id
func (r *TranscriptRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.TranscriptRecord, error) {
	var record entities.TranscriptRecord
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkProcessed sets the sticky processed timestamp on a transcript record
func (r *TranscriptRepository) MarkProcessed(ctx context.Context, id uuid.UUID, processedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.TranscriptRecord{}).
		Where("id = ? AND processed_at IS NULL", id).
		Updates(map[string]interface{}{
			"processed_at": processedAt,
			"updated_at":   time.Now(),
		}).Error
}
