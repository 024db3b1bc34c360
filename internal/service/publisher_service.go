package service

import (
	"context"
	"encoding/json"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// PublisherService puts store transitions on the in-process bus. It is the
// store's Sink.
type PublisherService struct {
	topicName string
	publisher message.Publisher
	logger    logger.ILogger
}

var _ store.Sink = &PublisherService{}

func NewPublisherService(topicName string, publisher message.Publisher, log logger.ILogger) *PublisherService {
	return &PublisherService{
		topicName: topicName,
		publisher: publisher,
		logger:    log,
	}
}

func (p *PublisherService) Publish(ctx context.Context, t store.Transition) {
	payload, err := json.Marshal(t)
	if err != nil {
		p.logger.Error(constant.LogModuleEvents, "Failed to marshal transition", map[string]interface{}{
			"action": t.Action,
			"error":  err,
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error(constant.LogModuleEvents, "Failed to publish transition", map[string]interface{}{
			"action": t.Action,
			"error":  err,
		})
	}
}
