package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const sourceName = "projectsphere"

// Topic carries every domain event; subscribers filter on Event.Type.
const Topic = "projectsphere.events"

// WatermillEventPublisher publishes events on an in-process Watermill
// GoChannel bus.
type WatermillEventPublisher struct {
	pubSub *gochannel.GoChannel
	logger *slog.Logger
}

// NewWatermillEventPublisher creates the in-process event bus.
func NewWatermillEventPublisher(logger *slog.Logger) *WatermillEventPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &WatermillEventPublisher{
		pubSub: pubSub,
		logger: logger,
	}
}

// Subscribe returns a channel of raw messages for consumers (audit trail,
// notification fan-out).
func (p *WatermillEventPublisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, Topic)
}

func (p *WatermillEventPublisher) Publish(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = watermill.NewUUID()
	}
	if event.Source == "" {
		event.Source = sourceName
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("type", event.Type)
	msg.SetContext(ctx)

	if err := p.pubSub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "event published", "event_type", event.Type, "event_id", event.ID)
	return nil
}

func (p *WatermillEventPublisher) Close() error {
	return p.pubSub.Close()
}
