package service

import (
	"context"

	"fantasy-hoops-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	publisher message.Publisher
}

func NewPublisherService(publisher message.Publisher) IPublisherService {
	return &publisherService{
		publisher: publisher,
	}
}

// Publish sends the event on its own topic.
func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	msg, err := events.ToMessage(event)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	return p.publisher.Publish(event.EventType(), msg)
}
