package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/domain/repositories"
	"github.com/johnquangdev/actionsync/pkg/config"
	"github.com/johnquangdev/actionsync/pkg/jobcontext"
)

// Scheduler periodically re-runs bulk sync for every active source
// integration. Each tick visits integrations whose last sync is older than
// the configured gap, bounded per tick so one tick cannot run unbounded.
type Scheduler struct {
	svc             *Service
	integrationRepo repositories.IntegrationRepository
	cfg             *config.SchedulerConfig
	logger          *zap.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  bool
	mu       sync.Mutex
}

// NewScheduler creates the background sync scheduler
func NewScheduler(svc *Service, integrationRepo repositories.IntegrationRepository, cfg *config.SchedulerConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		svc:             svc,
		integrationRepo: integrationRepo,
		cfg:             cfg,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the scheduler loop. Calling Start twice is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || !s.cfg.Enabled {
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.run()

	if s.logger != nil {
		s.logger.Info("👷 sync scheduler started",
			zap.Duration("interval", s.cfg.Interval),
			zap.Duration("min_gap", s.cfg.MinSyncGap))
	}
}

// Stop signals the loop to exit and waits for the in-flight tick to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()

	if s.logger != nil {
		s.logger.Info("🛑 sync scheduler stopped")
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.tick(context.Background())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	integrations, err := s.integrationRepo.ListActiveByProvider(ctx, entities.ProviderSource)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ scheduler could not list source integrations", zap.Error(err))
		}
		return
	}

	now := time.Now()
	synced := 0
	for _, integration := range integrations {
		if synced >= s.cfg.MaxPerTick {
			break
		}
		if integration.LastSyncedAt != nil && now.Sub(*integration.LastSyncedAt) < s.cfg.MinSyncGap {
			continue
		}

		// Each scheduled run gets its own bounded job context
		runCtx, cancel := jobcontext.Begin(ctx, integration.ID, "scheduled")
		result := s.svc.BulkSync(runCtx, integration.UserID, integration.ID, 0)
		cancel()
		synced++
		if result.Error != "" && s.logger != nil {
			s.logger.Warn("⚠️ scheduled sync failed",
				zap.String("integration_id", integration.ID.String()),
				zap.String("error", result.Error))
		}
	}
}
