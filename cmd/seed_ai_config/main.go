package main

import (
	"context"
	"log"
	"os"
	"strings"

	"portfolio-ai-be/internal/config"
	"portfolio-ai-be/internal/dto"
	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/admin/aiconfig"
	"portfolio-ai-be/pkg/database"
	"portfolio-ai-be/pkg/vault"

	"gopkg.in/yaml.v3"
)

// profileFile is the YAML shape of SEED_PROFILE_FILE
type profileFile struct {
	Name         string   `yaml:"name"`
	Position     string   `yaml:"position"`
	Location     string   `yaml:"location"`
	Introduction string   `yaml:"introduction"`
	Education    string   `yaml:"education"`
	Skills       []string `yaml:"skills"`
	Email        string   `yaml:"email"`
}

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	secretVault, err := vault.New(cfg.Security.EncryptionKey)
	if err != nil {
		log.Fatal("Error: ENCRYPTION_KEY is not usable:", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)

	log.Println("Starting AI Configuration Seeder...")

	// 3. Seed AI configuration; provider keys are encrypted through the vault
	res, changed, err := aiconfig.NewManager(secretVault).UpdateConfig(ctx, uowFactory.NewUnitOfWork(ctx), seedRequest())
	if err != nil {
		log.Fatalf("Error: Failed to seed AI configuration: %v", err)
	}
	log.Printf("AI configuration seeded (provider=%s, enabled=%t, keys=%v)", res.Provider, res.Enabled, changed)

	// 4. Seed admin profile
	if path := os.Getenv("SEED_PROFILE_FILE"); path != "" {
		if err := seedProfile(ctx, uowFactory, path); err != nil {
			log.Fatalf("Error: Failed to seed admin profile: %v", err)
		}
		log.Printf("Admin profile seeded from %s", path)
	}

	log.Println("✅ Success: AI Configuration seeding completed.")
}

func seedRequest() dto.UpdateAiConfigRequest {
	req := dto.UpdateAiConfigRequest{
		OpenAIKey:     secretFromEnv("SEED_OPENAI_API_KEY"),
		GeminiKey:     secretFromEnv("SEED_GEMINI_API_KEY"),
		AnthropicKey:  secretFromEnv("SEED_ANTHROPIC_API_KEY"),
		PerplexityKey: secretFromEnv("SEED_PERPLEXITY_API_KEY"),
	}

	if provider, ok := os.LookupEnv("SEED_AI_PROVIDER"); ok {
		req.Provider = &provider
	}
	if model, ok := os.LookupEnv("SEED_AI_MODEL"); ok {
		req.SelectedModel = &model
	}
	if enabled, ok := os.LookupEnv("SEED_AI_ENABLED"); ok {
		on := strings.EqualFold(enabled, "true")
		req.Enabled = &on
	}
	return req
}

// secretFromEnv leaves the stored key untouched when the variable is unset
func secretFromEnv(key string) vault.SecretUpdate {
	value, ok := os.LookupEnv(key)
	if !ok {
		return vault.SecretUpdate{}
	}
	return vault.ParseSecretUpdate(&value)
}

func seedProfile(ctx context.Context, uowFactory unitofwork.RepositoryFactory, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var p profileFile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return err
	}

	repo := uowFactory.NewUnitOfWork(ctx).AdminProfileRepository()
	existing, err := repo.FindFirst(ctx)
	if err != nil {
		return err
	}

	profile := &entity.AdminProfile{}
	if existing != nil {
		profile = existing
	}
	profile.Name = p.Name
	profile.Position = p.Position
	profile.Location = p.Location
	profile.Introduction = p.Introduction
	profile.Education = p.Education
	profile.Skills = p.Skills
	profile.Email = p.Email

	return repo.Save(ctx, profile)
}
