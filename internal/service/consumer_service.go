package service

import (
	"context"

	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the chat roster cache in step with roster writes.
type consumerService struct {
	subscriber  message.Subscriber
	rosterCache RosterContextStore
	logger      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	rosterCache RosterContextStore,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:  subscriber,
		rosterCache: rosterCache,
		logger:      logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, events.TopicRosterChanged)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	event, err := events.DecodeRosterChanged(msg)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to decode roster event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// malformed payloads would redeliver forever
		msg.Ack()
		return
	}

	cs.rosterCache.Delete(event.UserID)
	cs.logger.Debug("CONSUMER", "Roster context evicted", map[string]interface{}{
		"user_id": event.UserID.String(),
		"action":  event.Action,
	})
	msg.Ack()
}
