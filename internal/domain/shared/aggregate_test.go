package shared

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseAggregateRoot(t *testing.T) {
	t.Run("starts at version 1 with no events", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		assert.Equal(t, 1, agg.GetVersion())
		assert.NotEqual(t, uuid.Nil, agg.ID)
		assert.Empty(t, agg.ReleaseEvents())
	})

	t.Run("release drains the buffer exactly once", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.AddDomainEvent(&testDomainEvent{NewBaseDomainEvent("test.created", "Test", agg.ID)})
		agg.AddDomainEvent(&testDomainEvent{NewBaseDomainEvent("test.updated", "Test", agg.ID)})

		events := agg.ReleaseEvents()
		require.Len(t, events, 2)
		assert.Equal(t, "test.created", events[0].EventType())
		assert.Equal(t, "test.updated", events[1].EventType())

		assert.Empty(t, agg.ReleaseEvents())
	})

	t.Run("events added after a release are drained by the next one", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.AddDomainEvent(&testDomainEvent{NewBaseDomainEvent("test.created", "Test", agg.ID)})
		agg.ReleaseEvents()

		agg.AddDomainEvent(&testDomainEvent{NewBaseDomainEvent("test.updated", "Test", agg.ID)})
		events := agg.ReleaseEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "test.updated", events[0].EventType())
	})

	t.Run("increment version", func(t *testing.T) {
		agg := NewBaseAggregateRoot()
		agg.IncrementVersion()
		assert.Equal(t, 2, agg.GetVersion())
	})
}

type testDomainEvent struct {
	BaseDomainEvent
}

func TestNewBaseDomainEvent(t *testing.T) {
	aggID := uuid.New()
	event := NewBaseDomainEvent("test.created", "Test", aggID)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "test.created", event.EventType())
	assert.Equal(t, aggID, event.AggregateID())
	assert.Equal(t, "Test", event.AggregateType())
	assert.False(t, event.OccurredAt().IsZero())

	other := NewBaseDomainEvent("test.created", "Test", aggID)
	assert.NotEqual(t, event.EventID(), other.EventID())
}
