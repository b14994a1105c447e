package event

import "context"

// HandlerFunc consumes a content event in-process.
type HandlerFunc func(ctx context.Context, payload ContentEventPayload) error

// LocalPublisher delivers events straight to a handler. It stands in for Kafka when no brokers are configured.
type LocalPublisher struct {
	handle HandlerFunc
}

func NewLocalPublisher(h HandlerFunc) *LocalPublisher {
	return &LocalPublisher{handle: h}
}

func (p *LocalPublisher) PublishContentEvent(ctx context.Context, payload ContentEventPayload) error {
	if p.handle == nil {
		return nil
	}
	return p.handle(ctx, payload)
}
