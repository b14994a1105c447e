package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPublisher_DeliversToHandler(t *testing.T) {
	var got ContentEventPayload
	p := NewLocalPublisher(func(ctx context.Context, payload ContentEventPayload) error {
		got = payload
		return nil
	})
	evt := NewContentEvent(ContentEventCreated, ResourceFeedback, uuid.New())

	require.NoError(t, p.PublishContentEvent(context.Background(), evt))
	assert.Equal(t, evt, got)
}

func TestLocalPublisher_PropagatesError(t *testing.T) {
	p := NewLocalPublisher(func(ctx context.Context, payload ContentEventPayload) error {
		return errors.New("cache down")
	})
	assert.Error(t, p.PublishContentEvent(context.Background(), NewContentEvent(ContentEventDeleted, ResourceProject, uuid.New())))
}

func TestContentEventPayload_WireFormat(t *testing.T) {
	id := uuid.New()
	raw, err := json.Marshal(NewContentEvent(ContentEventUpdated, ResourceExperience, id))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "updated", m["event_type"])
	assert.Equal(t, "experience", m["resource"])
	assert.Equal(t, id.String(), m["resource_id"])
}
