package event

import (
	"time"

	"github.com/google/uuid"
)

const TopicContentEvents = "portfolio.content.events"

type ContentEventType string

const (
	ContentEventCreated ContentEventType = "created"
	ContentEventUpdated ContentEventType = "updated"
	ContentEventDeleted ContentEventType = "deleted"
)

type Resource string

const (
	ResourceAbout      Resource = "about"
	ResourceExperience Resource = "experience"
	ResourceFeedback   Resource = "feedback"
	ResourceProject    Resource = "project"
)

// ContentEventPayload describes one successful write to a collection.
type ContentEventPayload struct {
	EventType  ContentEventType `json:"event_type"`
	Resource   Resource         `json:"resource"`
	ResourceID uuid.UUID        `json:"resource_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewContentEvent(t ContentEventType, r Resource, id uuid.UUID) ContentEventPayload {
	return ContentEventPayload{EventType: t, Resource: r, ResourceID: id, OccurredAt: time.Now().UTC()}
}
