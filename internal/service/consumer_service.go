package service

import (
	"context"
	"encoding/json"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/dto"
	"smart-pdf-assistant/internal/pkg/logger"
	"smart-pdf-assistant/pkg/events"
	"smart-pdf-assistant/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
)

// SessionDelivery pushes a ready-made frame to every open page.
// Typically implemented by the WebSocket Hub.
type SessionDelivery interface {
	Broadcast(frame []byte)
}

// EventSink forwards transitions outside the process (NATS).
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   SessionDelivery
	sink       EventSink
	logger     logger.ILogger
}

// NewConsumerService fans transitions out to pages and, when sink is not nil,
// to the external event bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery SessionDelivery,
	sink EventSink,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		sink:       sink,
		logger:     log,
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
	// Always ack: a transition that cannot be delivered now is superseded by the next one.
	defer msg.Ack()

	var t store.Transition
	if err := json.Unmarshal(msg.Payload, &t); err != nil {
		cs.logger.Error(constant.LogModuleEvents, "Failed to unmarshal transition", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	frame, err := json.Marshal(dto.SessionEvent{
		Type:   dto.SessionEventType,
		Action: t.Action,
		Data:   dto.NewSessionResponse(t.Session),
	})
	if err != nil {
		cs.logger.Error(constant.LogModuleEvents, "Failed to marshal session frame", map[string]interface{}{"error": err})
		return
	}
	cs.delivery.Broadcast(frame)

	if cs.sink != nil {
		if err := cs.sink.Publish(ctx, events.NewTransitionEvent(t)); err != nil {
			cs.logger.Warn(constant.LogModuleEvents, "Failed to forward transition", map[string]interface{}{
				"action": t.Action,
				"error":  err.Error(),
			})
		}
	}
}
