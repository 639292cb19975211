package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/domain/repositories"
	"github.com/johnquangdev/actionsync/internal/infrastructure/cache"
	"github.com/johnquangdev/actionsync/internal/infrastructure/external/meetingsource"
	"github.com/johnquangdev/actionsync/internal/usecase/extraction"
	"github.com/johnquangdev/actionsync/internal/usecase/fanout"
	"github.com/johnquangdev/actionsync/pkg/config"
	"github.com/johnquangdev/actionsync/pkg/jobcontext"
)

// TranscriptSource is the slice of the provider client the orchestrator
// needs. *meetingsource.Client satisfies it.
type TranscriptSource interface {
	ListRecentTranscripts(ctx context.Context, since time.Time) ([]meetingsource.Transcript, error)
}

// ProcessorFactory builds the fan-out processor set for a run
type ProcessorFactory interface {
	CreateProcessors(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID, projectID *uuid.UUID) ([]fanout.Processor, error)
	SummaryNotifier(ctx context.Context, userID uuid.UUID) (*fanout.ChatProcessor, error)
}

// Service orchestrates bulk transcript sync: fetch recent transcripts from
// the source credential, upsert them idempotently, extract action items and
// fan them out per transcript, then advance the sync watermark.
type Service struct {
	integrationRepo repositories.IntegrationRepository
	transcriptRepo  repositories.TranscriptRepository
	engine          *extraction.Engine
	factory         ProcessorFactory
	locker          cache.Locker
	cfg             *config.SyncConfig
	sourceCfg       *config.SourceConfig
	logger          *zap.Logger

	// overridable in tests
	newSource func(token string) TranscriptSource
	now       func() time.Time
}

// NewService creates the sync orchestrator
func NewService(
	integrationRepo repositories.IntegrationRepository,
	transcriptRepo repositories.TranscriptRepository,
	engine *extraction.Engine,
	factory ProcessorFactory,
	locker cache.Locker,
	cfg *config.SyncConfig,
	sourceCfg *config.SourceConfig,
	logger *zap.Logger,
) *Service {
	s := &Service{
		integrationRepo: integrationRepo,
		transcriptRepo:  transcriptRepo,
		engine:          engine,
		factory:         factory,
		locker:          locker,
		cfg:             cfg,
		sourceCfg:       sourceCfg,
		logger:          logger,
		now:             time.Now,
	}
	s.newSource = func(token string) TranscriptSource {
		return meetingsource.NewClient(sourceCfg, token)
	}
	return s
}

// BulkSync pulls recent transcripts for one source integration and runs the
// extraction pipeline over each. sinceDays overrides the computed window
// when positive. A structured result is always returned; Error is set on
// early failure instead of partial counts being lost.
func (s *Service) BulkSync(ctx context.Context, userID, integrationID uuid.UUID, sinceDays int) *entities.SyncResult {
	result := &entities.SyncResult{}

	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		result.Error = fmt.Sprintf("load integration: %v", err)
		return result
	}
	if integration == nil {
		result.Error = fmt.Sprintf("integration %s not found", integrationID)
		return result
	}
	if !integration.IsActive {
		result.Error = fmt.Sprintf("integration %s is inactive", integrationID)
		return result
	}

	lockKey := "sync:lock:" + integrationID.String()
	acquired, err := s.locker.TryLock(ctx, lockKey, s.cfg.LockTTL)
	if err != nil {
		result.Error = fmt.Sprintf("acquire sync lock: %v", err)
		return result
	}
	if !acquired {
		result.Error = fmt.Sprintf("sync already running for integration %s", integrationID)
		return result
	}
	defer func() {
		if err := s.locker.Unlock(context.Background(), lockKey); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ failed to release sync lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	now := s.now()
	since := now.AddDate(0, 0, -s.windowDays(integration, sinceDays, now))

	transcripts, err := s.fetchTranscripts(ctx, integration.AccessToken, since)
	if err != nil {
		result.Error = fmt.Sprintf("fetch transcripts: %v", err)
		return result
	}
	if s.logger != nil {
		s.logger.Info("📥 fetched transcripts from provider",
			zap.String("integration_id", integrationID.String()),
			zap.Int("count", len(transcripts)),
			zap.Time("since", since))
	}

	for _, t := range transcripts {
		if err := s.syncOne(ctx, userID, integrationID, t, result); err != nil {
			result.SkippedCount++
			if s.logger != nil {
				s.logger.Warn("⚠️ transcript skipped",
					zap.String("external_id", t.SessionID),
					zap.Error(err))
			}
		}
	}

	// The watermark always advances so one bad transcript cannot pin the
	// window forever; unprocessed records are retried on the next run.
	if err := s.integrationRepo.UpdateLastSyncedAt(ctx, integrationID, now); err != nil && s.logger != nil {
		s.logger.Error("❌ failed to advance sync watermark",
			zap.String("integration_id", integrationID.String()),
			zap.Error(err))
	}

	if result.NewCount+result.UpdatedCount > 0 {
		s.notifySummary(ctx, userID, result)
	}

	if s.logger != nil {
		fields := []zap.Field{
			zap.String("integration_id", integrationID.String()),
			zap.Int("total", result.TotalProcessed),
			zap.Int("new", result.NewCount),
			zap.Int("updated", result.UpdatedCount),
			zap.Int("skipped", result.SkippedCount),
			zap.Int("actions", result.ActionsCreated),
		}
		if run, ok := jobcontext.FromContext(ctx); ok {
			fields = append(fields,
				zap.String("trigger", run.Trigger),
				zap.Duration("elapsed", time.Since(run.StartedAt)))
		}
		s.logger.Info("✅ bulk sync finished", fields...)
	}
	return result
}

// syncOne runs the pipeline for a single transcript. Any error leaves the
// record unprocessed and retryable; counters for success paths are updated
// in place on result.
func (s *Service) syncOne(ctx context.Context, userID, integrationID uuid.UUID, t meetingsource.Transcript, result *entities.SyncResult) error {
	record := entities.NewTranscriptRecord(userID, integrationID, t.SessionID)
	record.Title = t.Title
	record.Text = t.Text
	record.Source = "meeting"
	record.MeetingDate = t.Date

	stored, created, err := s.transcriptRepo.Upsert(ctx, record)
	if err != nil {
		return fmt.Errorf("upsert transcript: %w", err)
	}
	result.TotalProcessed++
	if created {
		result.NewCount++
	} else {
		result.UpdatedCount++
	}

	// processed is sticky: a transcript is never re-extracted
	if stored.IsProcessed() {
		return nil
	}

	items := s.engine.Extract(ctx, stored.Text, extraction.Options{
		MaxActions: s.cfg.MaxActions,
		ChunkSize:  s.cfg.ChunkSize,
	})

	if len(items) > 0 {
		processors, err := s.factory.CreateProcessors(ctx, userID, &stored.ID, nil)
		if err != nil {
			return fmt.Errorf("create processors: %w", err)
		}
		for _, p := range processors {
			if v := p.ValidateConfig(); !v.Valid {
				if s.logger != nil {
					s.logger.Warn("⚠️ processor config invalid, skipping",
						zap.String("processor", p.Name()),
						zap.Strings("errors", v.Errors))
				}
				continue
			}
			pr := p.ProcessActionItems(ctx, items)
			result.ActionsCreated += pr.ProcessedCount
			if !pr.Success && s.logger != nil {
				s.logger.Warn("⚠️ processor reported errors",
					zap.String("processor", pr.Processor),
					zap.Strings("errors", pr.Errors))
			}
		}
	}

	if err := s.transcriptRepo.MarkProcessed(ctx, stored.ID, s.now()); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}

// windowDays computes the sync window: explicit override, else days since
// the last successful sync (default when never synced), capped.
func (s *Service) windowDays(integration *entities.Integration, sinceDays int, now time.Time) int {
	days := sinceDays
	if days <= 0 {
		days = s.cfg.DefaultWindowDays
		if integration.LastSyncedAt != nil {
			elapsed := int(now.Sub(*integration.LastSyncedAt).Hours()/24) + 1
			if elapsed > 0 {
				days = elapsed
			}
		}
	}
	if days > s.cfg.MaxWindowDays {
		days = s.cfg.MaxWindowDays
	}
	if days < 1 {
		days = 1
	}
	return days
}

// fetchTranscripts lists the provider's recent page, retrying transient
// failures with exponential backoff. This is the only retried call in the
// pipeline.
func (s *Service) fetchTranscripts(ctx context.Context, token string, since time.Time) ([]meetingsource.Transcript, error) {
	source := s.newSource(token)

	var transcripts []meetingsource.Transcript
	operation := func() error {
		var err error
		transcripts, err = source.ListRecentTranscripts(ctx, since)
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return transcripts, nil
}

// notifySummary posts a one-line sync summary to the user's chat channel.
// Failures are logged and never fail the sync.
func (s *Service) notifySummary(ctx context.Context, userID uuid.UUID, result *entities.SyncResult) {
	notifier, err := s.factory.SummaryNotifier(ctx, userID)
	if err != nil || notifier == nil {
		return
	}
	text := fmt.Sprintf("🔄 Sync complete: %d transcript(s) (%d new, %d updated), %d action item(s) created",
		result.TotalProcessed, result.NewCount, result.UpdatedCount, result.ActionsCreated)
	if err := notifier.PostText(ctx, text); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ summary notification failed", zap.Error(err))
	}
}
