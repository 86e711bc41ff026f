package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/sismt/attendance-system/internal/core/ports"
)

const subscriberBuffer = 16

// Hub fans registration events out to connected dashboard streams. Slow
// subscribers drop events rather than block the registration path.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan *ports.RegistrationResult]struct{}
	log         zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan *ports.RegistrationResult]struct{}),
		log:         log,
	}
}

// Subscribe registers a new listener. The returned cancel function must be
// called when the subscriber disconnects.
func (h *Hub) Subscribe() (<-chan *ports.RegistrationResult, func()) {
	ch := make(chan *ports.RegistrationResult, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a registration to every subscriber without blocking.
func (h *Hub) Publish(event *ports.RegistrationResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.log.Warn().Str("person_id", event.PersonID).Msg("notification dropped for slow subscriber")
		}
	}
}

// SubscriberCount reports the number of connected listeners.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
