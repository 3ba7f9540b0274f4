package service

import (
	"context"
	"fmt"
	"time"

	"portfolio-ai-be/internal/entity"
	"portfolio-ai-be/internal/pkg/logger"
	"portfolio-ai-be/internal/repository/unitofwork"
	"portfolio-ai-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes gateway events from the in-process bus into system_logs
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	evt, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Warn("CONSUMER", "Dropping malformed event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never retry garbage
		return
	}

	entry := systemLogFromEvent(evt)

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Create(ctx, entry); err != nil {
		cs.logger.Error("CONSUMER", "Failed to store system log", map[string]interface{}{
			"type":  evt.Type,
			"error": err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func systemLogFromEvent(evt events.BaseEvent) *entity.SystemLog {
	details := make(map[string]interface{}, len(evt.Data)+1)
	for k, v := range evt.Data {
		details[k] = v
	}
	details["event_type"] = evt.Type

	level, _ := details["level"].(string)
	delete(details, "level")
	switch level {
	case entity.LogLevelInfo, entity.LogLevelWarn, entity.LogLevelError:
	default:
		level = entity.LogLevelInfo
	}

	createdAt := evt.OccurredAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &entity.SystemLog{
		Level:     level,
		Module:    "GATEWAY",
		Message:   eventMessage(evt),
		Details:   details,
		CreatedAt: createdAt,
	}
}

func eventMessage(evt events.BaseEvent) string {
	switch evt.Type {
	case events.TypeProviderCallFailed:
		return fmt.Sprintf("Provider call failed (%v)", evt.Data["provider"])
	case events.TypeConversationPersistFailed:
		return "Conversation could not be saved"
	case events.TypeRateLimiterUnavailable:
		return "Rate limiter unavailable, request denied"
	case events.TypeAiConfigUpdated:
		return "AI configuration updated"
	case events.TypeProviderConnectionTested:
		return fmt.Sprintf("Provider connection tested (%v)", evt.Data["provider"])
	}
	return evt.Type
}
