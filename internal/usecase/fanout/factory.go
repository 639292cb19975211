package fanout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/domain/repositories"
	"github.com/johnquangdev/actionsync/internal/infrastructure/external/board"
	"github.com/johnquangdev/actionsync/pkg/config"
)

// Factory assembles the processor set for one pipeline run from the
// user's active integrations. The internal processor is always present;
// chat and board processors join when a usable credential exists.
type Factory struct {
	taskRepo        repositories.TaskRepository
	userRepo        repositories.UserRepository
	integrationRepo repositories.IntegrationRepository
	boardCfg        *config.BoardConfig
	logger          *zap.Logger

	// overridable in tests
	newChatClient  func(token string) ChatAPI
	newBoardClient func(token string) BoardAPI
}

// NewFactory creates a processor factory
func NewFactory(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	integrationRepo repositories.IntegrationRepository,
	boardCfg *config.BoardConfig,
	logger *zap.Logger,
) *Factory {
	f := &Factory{
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		integrationRepo: integrationRepo,
		boardCfg:        boardCfg,
		logger:          logger,
	}
	f.newChatClient = func(token string) ChatAPI {
		return slack.New(token)
	}
	f.newBoardClient = func(token string) BoardAPI {
		return board.NewClient(boardCfg, token)
	}
	return f
}

// CreateProcessors builds the processors for a run on behalf of userID.
// transcriptID links created tasks back to their transcript; projectID,
// when known, steers chat channel resolution.
func (f *Factory) CreateProcessors(ctx context.Context, userID uuid.UUID, transcriptID *uuid.UUID, projectID *uuid.UUID) ([]Processor, error) {
	processors := []Processor{
		NewInternalProcessor(userID, transcriptID, f.taskRepo, f.userRepo, f.logger),
	}

	integrations, err := f.integrationRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active integrations: %w", err)
	}

	for _, integration := range integrations {
		switch integration.Provider {
		case entities.ProviderChat:
			p, err := f.chatProcessor(ctx, integration, userID, projectID)
			if err != nil {
				if f.logger != nil {
					f.logger.Warn("⚠️ skipping chat integration",
						zap.String("integration_id", integration.ID.String()),
						zap.Error(err))
				}
				continue
			}
			if p != nil {
				processors = append(processors, p)
			}
		case entities.ProviderBoard:
			if integration.BoardID == "" {
				if f.logger != nil {
					f.logger.Warn("⚠️ board integration has no board configured",
						zap.String("integration_id", integration.ID.String()))
				}
				continue
			}
			bp := NewBoardProcessor(
				f.newBoardClient(integration.AccessToken),
				integration.BoardID,
				integration.ColumnMapping.Data(),
				f.logger,
			)
			bp.link = f.taskLinker(transcriptID)
			processors = append(processors, bp)
		case entities.ProviderSource:
			// Source credentials feed the sync loop, not fan-out
		default:
			if f.logger != nil {
				f.logger.Warn("⚠️ unknown integration provider skipped",
					zap.String("provider", string(integration.Provider)),
					zap.String("integration_id", integration.ID.String()))
			}
		}
	}

	return processors, nil
}

// taskLinker returns a TaskLinker that stores the board item handle on the
// matching internal task. The internal processor runs before the board
// processor, so tasks for the transcript already exist; matching is by the
// normalized title the internal processor also used.
func (f *Factory) taskLinker(transcriptID *uuid.UUID) TaskLinker {
	if transcriptID == nil {
		return nil
	}
	id := *transcriptID
	return func(ctx context.Context, item *entities.ParsedActionItem, created *board.CreateItemResponse) {
		tasks, err := f.taskRepo.ListTasksByTranscript(ctx, id)
		if err != nil {
			if f.logger != nil {
				f.logger.Warn("⚠️ board link lookup failed", zap.Error(err))
			}
			return
		}
		title := taskTitle(item.Text)
		for _, task := range tasks {
			if task.BoardItemID != "" || task.Title != title {
				continue
			}
			task.BoardItemID = created.ID
			task.BoardItemURL = created.URL
			if err := f.taskRepo.UpdateTask(ctx, task); err != nil && f.logger != nil {
				f.logger.Warn("⚠️ board link update failed",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
			}
			return
		}
	}
}

// SummaryNotifier returns a chat processor suitable for one-line summary
// messages, or nil when the user has no chat integration with a resolvable
// channel. Summaries have no project scope, so resolution starts at the
// user's team.
func (f *Factory) SummaryNotifier(ctx context.Context, userID uuid.UUID) (*ChatProcessor, error) {
	integrations, err := f.integrationRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list active integrations: %w", err)
	}
	for _, integration := range integrations {
		if integration.Provider != entities.ProviderChat {
			continue
		}
		cfg, err := f.resolveChannel(ctx, integration.ID, userID, nil)
		if err != nil || cfg == nil {
			continue
		}
		return NewChatProcessor(f.newChatClient(integration.AccessToken), cfg.ChannelID, cfg.ChannelName, f.logger), nil
	}
	return nil, nil
}

// chatProcessor resolves the destination channel for a chat credential.
// Resolution walks project config, then the project's team config, then
// the user's team config; only configs owned by this credential count.
// No resolvable channel means no chat processor, not an error.
func (f *Factory) chatProcessor(ctx context.Context, integration *entities.Integration, userID uuid.UUID, projectID *uuid.UUID) (Processor, error) {
	cfg, err := f.resolveChannel(ctx, integration.ID, userID, projectID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		if f.logger != nil {
			f.logger.Info("📭 no channel configured for chat integration",
				zap.String("integration_id", integration.ID.String()))
		}
		return nil, nil
	}
	return NewChatProcessor(f.newChatClient(integration.AccessToken), cfg.ChannelID, cfg.ChannelName, f.logger), nil
}

func (f *Factory) resolveChannel(ctx context.Context, integrationID, userID uuid.UUID, projectID *uuid.UUID) (*entities.ChannelConfig, error) {
	var teamID *uuid.UUID

	if projectID != nil {
		configs, err := f.integrationRepo.ListChannelConfigsByProject(ctx, *projectID)
		if err != nil {
			return nil, fmt.Errorf("list project channel configs: %w", err)
		}
		if cfg := ownedBy(configs, integrationID); cfg != nil {
			return cfg, nil
		}
		project, err := f.userRepo.GetProject(ctx, *projectID)
		if err != nil {
			return nil, fmt.Errorf("get project: %w", err)
		}
		if project != nil {
			teamID = project.TeamID
		}
	}

	if teamID == nil {
		user, err := f.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if user != nil {
			teamID = user.TeamID
		}
	}
	if teamID == nil {
		return nil, nil
	}

	configs, err := f.integrationRepo.ListChannelConfigsByTeam(ctx, *teamID)
	if err != nil {
		return nil, fmt.Errorf("list team channel configs: %w", err)
	}
	return ownedBy(configs, integrationID), nil
}

// ownedBy picks the first config bound to the given credential
func ownedBy(configs []*entities.ChannelConfig, integrationID uuid.UUID) *entities.ChannelConfig {
	for _, cfg := range configs {
		if cfg.IntegrationID == integrationID && cfg.ChannelID != "" {
			return cfg
		}
	}
	return nil
}
