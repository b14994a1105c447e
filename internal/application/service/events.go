package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-admin/adapters/event"
	"github.com/khoahotran/portfolio-admin/pkg/logger"
)

type EventPublisher interface {
	PublishContentEvent(ctx context.Context, payload event.ContentEventPayload) error
}

const publishTimeout = 5 * time.Second

// PublishInBackground sends the event without blocking the request. Failures are only logged.
func PublishInBackground(p EventPublisher, log logger.Logger, payload event.ContentEventPayload) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.PublishContentEvent(ctx, payload); err != nil {
			log.Error("Failed to publish content event", err,
				zap.String("resource", string(payload.Resource)),
				zap.String("resource_id", payload.ResourceID.String()),
				zap.String("event_type", string(payload.EventType)),
			)
		}
	}()
}
