package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for synced transcripts
type TranscriptRepository interface {
	// Upsert creates the record when the external session id is unseen and
	// updates the stored copy in place otherwise. ProcessedAt is preserved
	// across updates. Returns the stored record and whether it was created.
	Upsert(ctx context.Context, record *entities.TranscriptRecord) (*entities.TranscriptRecord, bool, error)

	GetByExternalID(ctx context.Context, externalID string) (*entities.TranscriptRecord, error)
	MarkProcessed(ctx context.Context, id uuid.UUID, processedAt time.Time) error
}
