package events

import (
	"context"

	"portfolio-ai-be/internal/pkg/logger"
	pkgEvents "portfolio-ai-be/pkg/events"
	pktNats "portfolio-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Topic is the in-process watermill topic the system log consumer reads
const Topic = "gateway.events"

// Publisher abstracts the operator-facing side channel of the gateway.
// Publishing never fails the caller; delivery problems are only logged.
type Publisher interface {
	PublishProviderCallFailed(ctx context.Context, provider, model string, statusCode int, reason string)
	PublishConversationPersistFailed(ctx context.Context, sessionId, reason string)
	PublishRateLimiterUnavailable(ctx context.Context, scope, reason string)
	PublishAiConfigUpdated(ctx context.Context, provider string, enabled bool, changedKeys []string)
	PublishProviderConnectionTested(ctx context.Context, provider string, success bool, modelCount int)
}

// GatewayPublisher fans each event out to the in-process bus and, when connected, to NATS
type GatewayPublisher struct {
	bus    message.Publisher
	nats   *pktNats.Publisher
	logger logger.ILogger
}

// NewGatewayPublisher accepts a nil NATS publisher when the broker is unavailable
func NewGatewayPublisher(bus message.Publisher, natsPub *pktNats.Publisher, logger logger.ILogger) *GatewayPublisher {
	return &GatewayPublisher{
		bus:    bus,
		nats:   natsPub,
		logger: logger,
	}
}

func (p *GatewayPublisher) PublishProviderCallFailed(ctx context.Context, provider, model string, statusCode int, reason string) {
	p.publish(ctx, pkgEvents.New(pkgEvents.TypeProviderCallFailed, map[string]interface{}{
		"level":       "ERROR",
		"provider":    provider,
		"model":       model,
		"status_code": statusCode,
		"reason":      reason,
	}))
}

func (p *GatewayPublisher) PublishConversationPersistFailed(ctx context.Context, sessionId, reason string) {
	p.publish(ctx, pkgEvents.New(pkgEvents.TypeConversationPersistFailed, map[string]interface{}{
		"level":       "ERROR",
		"session_id":  sessionId,
		"reason":      reason,
		"entity_type": "conversation",
	}))
}

func (p *GatewayPublisher) PublishRateLimiterUnavailable(ctx context.Context, scope, reason string) {
	p.publish(ctx, pkgEvents.New(pkgEvents.TypeRateLimiterUnavailable, map[string]interface{}{
		"level":  "WARN",
		"scope":  scope,
		"reason": reason,
	}))
}

func (p *GatewayPublisher) PublishAiConfigUpdated(ctx context.Context, provider string, enabled bool, changedKeys []string) {
	p.publish(ctx, pkgEvents.New(pkgEvents.TypeAiConfigUpdated, map[string]interface{}{
		"level":        "INFO",
		"provider":     provider,
		"enabled":      enabled,
		"changed_keys": changedKeys,
		"entity_type":  "ai_config",
	}))
}

func (p *GatewayPublisher) PublishProviderConnectionTested(ctx context.Context, provider string, success bool, modelCount int) {
	p.publish(ctx, pkgEvents.New(pkgEvents.TypeProviderConnectionTested, map[string]interface{}{
		"level":       "INFO",
		"provider":    provider,
		"success":     success,
		"model_count": modelCount,
	}))
}

func (p *GatewayPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	payload, err := pkgEvents.Marshal(evt)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		return
	}

	if p.bus != nil {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := p.bus.Publish(Topic, msg); err != nil {
			p.logger.Error("EVENTS", "Failed to publish event on bus", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		}
	}

	if p.nats != nil {
		if err := p.nats.Publish(ctx, evt); err != nil {
			p.logger.Warn("EVENTS", "Failed to publish event to NATS", map[string]interface{}{"type": evt.Type, "error": err.Error()})
		}
	}
}
