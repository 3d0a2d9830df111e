// internal/events/events.go
//
// Post-commit notification dispatch. Status transitions publish events after
// the database write has committed; a background worker delivers them to the
// registered handlers with transient retries. Delivery failure is logged and
// dropped, never propagated back to the transition.
package events

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projektfabrik/pf-backend/internal/models"
)

type EventType string

const (
	EventProjectSubmitted   EventType = "project.submitted"
	EventStatusChanged      EventType = "project.status_changed"
	EventProjectRemoved     EventType = "project.removed"
	EventRestorationDecided EventType = "project.restoration_decided"
	EventProjectExpired     EventType = "project.expired"
	EventContactReceived    EventType = "contact.received"
)

type Event struct {
	Type      EventType
	Project   *models.ProjectRequest
	Contact   *models.ContactMessage
	OldStatus models.ProjectStatus
	NewStatus models.ProjectStatus
	Review    *models.RestorationReview
	At        time.Time
}

// Handler consumes a single event. Handlers are responsible for swallowing
// their own downstream errors; a returned error triggers a retry.
type Handler interface {
	Handle(event Event) error
}

const (
	defaultBufferSize   = 256
	maxAttempts         = 3
	defaultRetryBackoff = 2 * time.Second
)

type Dispatcher struct {
	handlers     []Handler
	queue        chan Event
	retryBackoff time.Duration
	wg           sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(handlers ...Handler) *Dispatcher {
	d := &Dispatcher{
		handlers:     handlers,
		queue:        make(chan Event, defaultBufferSize),
		retryBackoff: defaultRetryBackoff,
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Publish enqueues an event without blocking the caller. If the queue is
// full, or the dispatcher has already shut down, the event is dropped and
// logged; notifications are best-effort.
func (d *Dispatcher) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logrus.WithField("event", event.Type).Warn("Dispatcher stopped, dropping notification event")
		return
	}

	select {
	case d.queue <- event:
	default:
		logrus.WithField("event", event.Type).Warn("Event queue full, dropping notification event")
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for event := range d.queue {
		for _, handler := range d.handlers {
			d.deliver(handler, event)
		}
	}
}

func (d *Dispatcher) deliver(handler Handler, event Event) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = handler.Handle(event); err == nil {
			return
		}

		logrus.WithError(err).WithFields(logrus.Fields{
			"event":   event.Type,
			"attempt": attempt,
		}).Warn("Event delivery failed")

		if attempt < maxAttempts {
			time.Sleep(d.retryBackoff * time.Duration(attempt))
		}
	}

	logrus.WithError(err).WithField("event", event.Type).Error("Event delivery abandoned")
}

// Shutdown drains the queue and stops the worker. Later publishes become
// logged no-ops.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}
