package main

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/actionsync/internal/domain/entities"
	"github.com/johnquangdev/actionsync/internal/infrastructure/database"
	"github.com/johnquangdev/actionsync/pkg/config"
)

func main() {
	log.Println("🚀 Starting demo data creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	log.Println("🗑️  Cleaning up existing demo data...")
	db.Where("user_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.TranscriptRecord{})
	db.Where("integration_id IN (SELECT id FROM integrations WHERE user_id IN (SELECT id FROM users WHERE email LIKE ?))", "%@demo.local").Delete(&entities.ChannelConfig{})
	db.Where("user_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.Integration{})
	db.Where("owner_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.Task{})
	db.Where("email LIKE ?", "%@demo.local").Delete(&entities.User{})

	log.Println("👥 Creating demo team and users...")
	team := &entities.Team{ID: uuid.New(), Name: "Demo Team"}
	if err := db.Create(team).Error; err != nil {
		log.Fatalf("Failed to create team: %v", err)
	}

	demoUsers := []struct {
		Email string
		Name  string
	}{
		{Email: "alice@demo.local", Name: "Alice Nguyen"},
		{Email: "bob@demo.local", Name: "Bob Tran"},
		{Email: "sarah@demo.local", Name: "Sarah Le"},
	}

	var owner *entities.User
	for _, u := range demoUsers {
		user := &entities.User{
			ID:       uuid.New(),
			Email:    u.Email,
			Name:     u.Name,
			IsActive: true,
			TeamID:   &team.ID,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		if owner == nil {
			owner = user
		}
		log.Printf("  ✅ %s (%s)", user.Name, user.Email)
	}

	log.Println("🔌 Creating demo integrations...")
	source := &entities.Integration{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Provider:    entities.ProviderSource,
		AccessToken: "demo-source-token",
		IsActive:    true,
	}
	chat := &entities.Integration{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Provider:    entities.ProviderChat,
		AccessToken: "demo-chat-token",
		IsActive:    true,
	}
	boardIntegration := &entities.Integration{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Provider:    entities.ProviderBoard,
		AccessToken: "demo-board-token",
		IsActive:    true,
		BoardID:     "demo-board-1",
		ColumnMapping: datatypes.NewJSONType(entities.BoardColumnMapping{
			AssigneeColumnID: "col_assignee",
			DueDateColumnID:  "col_due",
			PriorityColumnID: "col_priority",
		}),
	}
	for _, integration := range []*entities.Integration{source, chat, boardIntegration} {
		if err := db.Create(integration).Error; err != nil {
			log.Fatalf("Failed to create %s integration: %v", integration.Provider, err)
		}
		log.Printf("  ✅ %s integration %s", integration.Provider, integration.ID)
	}

	channelCfg := &entities.ChannelConfig{
		ID:            uuid.New(),
		IntegrationID: chat.ID,
		TeamID:        &team.ID,
		ChannelID:     "C0000000001",
		ChannelName:   "demo-standup",
	}
	if err := db.Create(channelCfg).Error; err != nil {
		log.Fatalf("Failed to create channel config: %v", err)
	}
	log.Printf("  ✅ channel config #%s for team %s", channelCfg.ChannelName, team.Name)

	log.Println("✅ Demo data created. Trigger a sync with:")
	log.Printf("   curl -X POST localhost:8080/v1/sync/%s -d '{\"user_id\":\"%s\"}' -H 'Content-Type: application/json'", source.ID, owner.ID)
}
