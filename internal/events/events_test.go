// internal/events/events_test.go
package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/projektfabrik/pf-backend/internal/models"
)

type recordingHandler struct {
	mu       sync.Mutex
	events   []Event
	failures int
}

func (h *recordingHandler) Handle(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.failures > 0 {
		h.failures--
		return errors.New("transient failure")
	}
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) received() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}

func TestDispatcherDeliversEvents(t *testing.T) {
	handler := &recordingHandler{}
	dispatcher := NewDispatcher(handler)

	dispatcher.Publish(Event{
		Type:      EventStatusChanged,
		Project:   &models.ProjectRequest{ProjectName: "Test Project"},
		OldStatus: models.ProjectStatusPending,
		NewStatus: models.ProjectStatusApproved,
	})
	dispatcher.Publish(Event{Type: EventProjectRemoved})

	dispatcher.Shutdown()

	events := handler.received()
	assert.Len(t, events, 2)
	assert.Equal(t, EventStatusChanged, events[0].Type)
	assert.Equal(t, models.ProjectStatusApproved, events[0].NewStatus)
	assert.Equal(t, EventProjectRemoved, events[1].Type)
}

func TestDispatcherSetsTimestamp(t *testing.T) {
	handler := &recordingHandler{}
	dispatcher := NewDispatcher(handler)

	dispatcher.Publish(Event{Type: EventContactReceived})
	dispatcher.Shutdown()

	events := handler.received()
	assert.Len(t, events, 1)
	assert.False(t, events[0].At.IsZero())
	assert.WithinDuration(t, time.Now(), events[0].At, time.Minute)
}

func TestDispatcherRetriesTransientFailures(t *testing.T) {
	handler := &recordingHandler{failures: 1}
	dispatcher := NewDispatcher(handler)
	dispatcher.retryBackoff = time.Millisecond

	dispatcher.Publish(Event{Type: EventProjectSubmitted})
	dispatcher.Shutdown()

	events := handler.received()
	assert.Len(t, events, 1)
	assert.Equal(t, EventProjectSubmitted, events[0].Type)
}

func TestDispatcherFansOutToAllHandlers(t *testing.T) {
	first := &recordingHandler{}
	second := &recordingHandler{}
	dispatcher := NewDispatcher(first, second)

	dispatcher.Publish(Event{Type: EventProjectExpired})
	dispatcher.Shutdown()

	assert.Len(t, first.received(), 1)
	assert.Len(t, second.received(), 1)
}

func TestDispatcherShutdownIsIdempotent(t *testing.T) {
	dispatcher := NewDispatcher()
	dispatcher.Shutdown()

	assert.NotPanics(t, func() {
		dispatcher.Shutdown()
	})
}

func TestDispatcherPublishAfterShutdownIsDropped(t *testing.T) {
	handler := &recordingHandler{}
	dispatcher := NewDispatcher(handler)
	dispatcher.Shutdown()

	assert.NotPanics(t, func() {
		dispatcher.Publish(Event{Type: EventStatusChanged})
	})
	assert.Empty(t, handler.received())
}
