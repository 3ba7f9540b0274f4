package bootstrap

import (
	"context"
	"fmt"
	"log"

	"portfolio-ai-be/internal/config"
	"portfolio-ai-be/internal/controller"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/internal/repository/memory"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/internal/service"
	"portfolio-ai-be/pkg/admin/aiconfig"
	adminEvents "portfolio-ai-be/pkg/admin/events"
	"portfolio-ai-be/pkg/llm"
	"portfolio-ai-be/pkg/llm/factory"
	"portfolio-ai-be/pkg/ratelimit"
	"portfolio-ai-be/pkg/vault"

	pktNats "portfolio-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	AdminController   controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	secretVault, err := vault.New(cfg.Security.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("init vault: %w", err)
	}
	if cfg.Security.JwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	container := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	container.closers = append(container.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	// NATS is optional; without it events only reach the in-process bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	} else {
		container.closers = append(container.closers, natsPub.Close)
	}

	chatLimiter, settingsLimiter := newLimiters(cfg, sysLogger)

	// 4. Providers
	providers, err := factory.NewRegistry(factory.BaseURLs{
		OpenAI:     cfg.Providers.OpenAIBaseURL,
		Gemini:     cfg.Providers.GeminiBaseURL,
		Anthropic:  cfg.Providers.AnthropicBaseURL,
		Perplexity: cfg.Providers.PerplexityBaseURL,
	}, llm.NewHTTPClient(cfg.Providers.HTTPTimeout), sysLogger)
	if err != nil {
		return nil, fmt.Errorf("init providers: %w", err)
	}

	// 5. Services
	eventPublisher := adminEvents.NewGatewayPublisher(pubSub, natsPub, sysLogger)
	configCache := memory.NewPublicConfigCache(cfg.App.PublicConfigTTL)
	aiConfigManager := aiconfig.NewManager(secretVault)

	chatbotService := service.NewChatbotService(
		uowFactory,
		providers,
		secretVault,
		chatLimiter,
		settingsLimiter,
		aiConfigManager,
		configCache,
		eventPublisher,
		sysLogger,
	)

	adminService := service.NewAdminService(
		uowFactory,
		sysLogger,
		aiConfigManager,
		configCache,
		settingsLimiter,
		eventPublisher,
	)

	container.ConsumerService = service.NewConsumerService(pubSub, adminEvents.Topic, uowFactory, sysLogger)

	// 6. Controllers
	container.ChatbotController = controller.NewChatbotController(chatbotService)
	container.AdminController = controller.NewAdminController(adminService, chatbotService, cfg.Security.JwtSecret)

	return container, nil
}

// newLimiters prefers Redis and falls back to process-local windows when it is unreachable at startup
func newLimiters(cfg *config.Config, log logger.ILogger) (ratelimit.Limiter, ratelimit.Limiter) {
	chatPolicy := ratelimit.Policy{Prefix: "ratelimit:chat", Limit: cfg.RateLimit.ChatLimit, Window: cfg.RateLimit.ChatWindow}
	settingsPolicy := ratelimit.Policy{Prefix: "ratelimit:settings", Limit: cfg.RateLimit.SettingsLimit, Window: cfg.RateLimit.SettingsWindow}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unavailable, using in-memory rate limiter", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return ratelimit.NewMemoryLimiter(chatPolicy), ratelimit.NewMemoryLimiter(settingsPolicy)
	}

	return ratelimit.NewRedisLimiter(rdb, chatPolicy), ratelimit.NewRedisLimiter(rdb, settingsPolicy)
}

// Close releases the bus and broker connections
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
