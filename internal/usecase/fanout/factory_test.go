package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/pkg/config"
)

type fakeIntegrationRepo struct {
	integrations []*entities.Integration
	configs      []*entities.ChannelConfig
}

func (f *fakeIntegrationRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Integration, error) {
	for _, i := range f.integrations {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, nil
}

func (f *fakeIntegrationRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]*entities.Integration, error) {
	var out []*entities.Integration
	for _, i := range f.integrations {
		if i.UserID == userID && i.IsActive {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIntegrationRepo) ListActiveByProvider(_ context.Context, provider entities.IntegrationProvider) ([]*entities.Integration, error) {
	var out []*entities.Integration
	for _, i := range f.integrations {
		if i.Provider == provider && i.IsActive {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeIntegrationRepo) UpdateLastSyncedAt(_ context.Context, id uuid.UUID, syncedAt time.Time) error {
	for _, i := range f.integrations {
		if i.ID == id {
			t := syncedAt
			i.LastSyncedAt = &t
		}
	}
	return nil
}

func (f *fakeIntegrationRepo) ListChannelConfigsByProject(_ context.Context, projectID uuid.UUID) ([]*entities.ChannelConfig, error) {
	var out []*entities.ChannelConfig
	for _, c := range f.configs {
		if c.ProjectID != nil && *c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeIntegrationRepo) ListChannelConfigsByTeam(_ context.Context, teamID uuid.UUID) ([]*entities.ChannelConfig, error) {
	var out []*entities.ChannelConfig
	for _, c := range f.configs {
		if c.TeamID != nil && *c.TeamID == teamID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestFactory(integrationRepo *fakeIntegrationRepo, userRepo *fakeUserRepo) *Factory {
	f := NewFactory(&fakeTaskRepo{}, userRepo, integrationRepo, &config.BoardConfig{BaseURL: "https://board.test"}, nil)
	f.newChatClient = func(token string) ChatAPI { return &fakeChatAPI{} }
	f.newBoardClient = func(token string) BoardAPI { return &fakeBoardAPI{} }
	return f
}

func processorNames(processors []Processor) []string {
	names := make([]string, 0, len(processors))
	for _, p := range processors {
		names = append(names, p.Name())
	}
	return names
}

func TestFactory_InternalAlwaysPresent(t *testing.T) {
	userID := uuid.New()
	f := newTestFactory(&fakeIntegrationRepo{}, &fakeUserRepo{})

	processors, err := f.CreateProcessors(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(processors) != 1 || processors[0].Name() != "internal" {
		t.Fatalf("expected only the internal processor, got %v", processorNames(processors))
	}
}

func TestFactory_BoardProcessorFromIntegration(t *testing.T) {
	userID := uuid.New()
	repo := &fakeIntegrationRepo{integrations: []*entities.Integration{{
		ID:       uuid.New(),
		UserID:   userID,
		Provider: entities.ProviderBoard,
		IsActive: true,
		BoardID:  "board-1",
		ColumnMapping: datatypes.NewJSONType(entities.BoardColumnMapping{
			PriorityColumnID: "col_priority",
		}),
	}}}
	f := newTestFactory(repo, &fakeUserRepo{})

	processors, err := f.CreateProcessors(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := processorNames(processors)
	if len(names) != 2 || names[1] != "board" {
		t.Fatalf("expected internal+board, got %v", names)
	}
}

func TestFactory_BoardWithoutBoardIDIsSkipped(t *testing.T) {
	userID := uuid.New()
	repo := &fakeIntegrationRepo{integrations: []*entities.Integration{{
		ID:       uuid.New(),
		UserID:   userID,
		Provider: entities.ProviderBoard,
		IsActive: true,
	}}}
	f := newTestFactory(repo, &fakeUserRepo{})

	processors, _ := f.CreateProcessors(context.Background(), userID, nil, nil)
	if len(processors) != 1 {
		t.Fatalf("unconfigured board integration must be skipped, got %v", processorNames(processors))
	}
}

func TestFactory_ChatChannelResolutionProjectFirst(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	projectID := uuid.New()
	chatID := uuid.New()

	repo := &fakeIntegrationRepo{
		integrations: []*entities.Integration{{
			ID: chatID, UserID: userID, Provider: entities.ProviderChat, IsActive: true,
		}},
		configs: []*entities.ChannelConfig{
			{IntegrationID: chatID, TeamID: &teamID, ChannelID: "C-team"},
			{IntegrationID: chatID, ProjectID: &projectID, ChannelID: "C-project"},
		},
	}
	userRepo := &fakeUserRepo{
		users:    map[uuid.UUID]*entities.User{userID: {ID: userID, TeamID: &teamID}},
		projects: map[uuid.UUID]*entities.Project{projectID: {ID: projectID, TeamID: &teamID}},
	}
	f := newTestFactory(repo, userRepo)

	processors, err := f.CreateProcessors(context.Background(), userID, nil, &projectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat := findChat(t, processors)
	if chat.channelID != "C-project" {
		t.Fatalf("project config must win, got %q", chat.channelID)
	}
}

func TestFactory_ChatChannelFallsBackToTeam(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	chatID := uuid.New()

	repo := &fakeIntegrationRepo{
		integrations: []*entities.Integration{{
			ID: chatID, UserID: userID, Provider: entities.ProviderChat, IsActive: true,
		}},
		configs: []*entities.ChannelConfig{
			{IntegrationID: chatID, TeamID: &teamID, ChannelID: "C-team"},
		},
	}
	userRepo := &fakeUserRepo{
		users: map[uuid.UUID]*entities.User{userID: {ID: userID, TeamID: &teamID}},
	}
	f := newTestFactory(repo, userRepo)

	processors, err := f.CreateProcessors(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	chat := findChat(t, processors)
	if chat.channelID != "C-team" {
		t.Fatalf("expected team channel, got %q", chat.channelID)
	}
}

func TestFactory_ChannelOwnedByOtherCredentialIgnored(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	chatID := uuid.New()

	repo := &fakeIntegrationRepo{
		integrations: []*entities.Integration{{
			ID: chatID, UserID: userID, Provider: entities.ProviderChat, IsActive: true,
		}},
		configs: []*entities.ChannelConfig{
			// Config bound to a different credential must not be used
			{IntegrationID: uuid.New(), TeamID: &teamID, ChannelID: "C-foreign"},
		},
	}
	userRepo := &fakeUserRepo{
		users: map[uuid.UUID]*entities.User{userID: {ID: userID, TeamID: &teamID}},
	}
	f := newTestFactory(repo, userRepo)

	processors, err := f.CreateProcessors(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range processors {
		if p.Name() == "chat_notification" {
			t.Fatal("chat processor must not be built from another credential's config")
		}
	}
}

func TestFactory_UnknownProviderSkipped(t *testing.T) {
	userID := uuid.New()
	repo := &fakeIntegrationRepo{integrations: []*entities.Integration{{
		ID: uuid.New(), UserID: userID, Provider: "calendar", IsActive: true,
	}}}
	f := newTestFactory(repo, &fakeUserRepo{})

	processors, err := f.CreateProcessors(context.Background(), userID, nil, nil)
	if err != nil {
		t.Fatalf("unknown provider must not error: %v", err)
	}
	if len(processors) != 1 {
		t.Fatalf("expected only internal, got %v", processorNames(processors))
	}
}

func TestFactory_SummaryNotifier(t *testing.T) {
	userID := uuid.New()
	teamID := uuid.New()
	chatID := uuid.New()

	repo := &fakeIntegrationRepo{
		integrations: []*entities.Integration{{
			ID: chatID, UserID: userID, Provider: entities.ProviderChat, IsActive: true,
		}},
		configs: []*entities.ChannelConfig{
			{IntegrationID: chatID, TeamID: &teamID, ChannelID: "C-team"},
		},
	}
	userRepo := &fakeUserRepo{
		users: map[uuid.UUID]*entities.User{userID: {ID: userID, TeamID: &teamID}},
	}
	f := newTestFactory(repo, userRepo)

	notifier, err := f.SummaryNotifier(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier == nil || notifier.channelID != "C-team" {
		t.Fatalf("expected notifier on team channel, got %+v", notifier)
	}

	none, err := f.SummaryNotifier(context.Background(), uuid.New())
	if err != nil || none != nil {
		t.Fatalf("user without chat integration should get nil notifier, got %+v, %v", none, err)
	}
}

func findChat(t *testing.T, processors []Processor) *ChatProcessor {
	t.Helper()
	for _, p := range processors {
		if chat, ok := p.(*ChatProcessor); ok {
			return chat
		}
	}
	t.Fatalf("no chat processor in %v", processorNames(processors))
	return nil
}

func TestFactory_BoardLinkRecordedOnTask(t *testing.T) {
	userID := uuid.New()
	transcriptID := uuid.New()
	repo := &fakeIntegrationRepo{integrations: []*entities.Integration{{
		ID:            uuid.New(),
		UserID:        userID,
		Provider:      entities.ProviderBoard,
		AccessToken:   "board-token",
		BoardID:       "board-1",
		ColumnMapping: datatypes.NewJSONType(entities.BoardColumnMapping{}),
		IsActive:      true,
	}}}
	taskRepo := &fakeTaskRepo{}
	f := NewFactory(taskRepo, &fakeUserRepo{}, repo, &config.BoardConfig{}, nil)
	f.newBoardClient = func(token string) BoardAPI { return &fakeBoardAPI{} }

	existing := entities.NewTask(userID, "Review the budget")
	existing.TranscriptID = &transcriptID
	taskRepo.tasks = append(taskRepo.tasks, existing)

	processors, err := f.CreateProcessors(context.Background(), userID, &transcriptID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bp *BoardProcessor
	for _, p := range processors {
		if b, ok := p.(*BoardProcessor); ok {
			bp = b
		}
	}
	if bp == nil {
		t.Fatal("board processor missing")
	}

	result := bp.ProcessActionItems(context.Background(), []*entities.ParsedActionItem{
		{Text: "todo: review the budget"},
	})
	if result.ProcessedCount != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if existing.BoardItemID != "item-1" || existing.BoardItemURL == "" {
		t.Fatalf("task not linked to board item: %+v", existing)
	}
	if len(taskRepo.updated) != 1 {
		t.Fatalf("expected one task update, got %d", len(taskRepo.updated))
	}
}
