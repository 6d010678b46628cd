package manager

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/floatwm/internal/wm"
)

// EventType names a change broadcast to subscribers.
type EventType string

const (
	EventGeometry EventType = "geometry"
	EventState    EventType = "state"
	EventMap      EventType = "map"
	EventUnmap    EventType = "unmap"
	EventDesktop  EventType = "desktop"
	EventScreens  EventType = "screens"
	EventConfig   EventType = "config"
)

// Event is one change notification. Client is a copy taken on the dispatch
// thread and safe to read anywhere.
type Event struct {
	Type    EventType  `json:"type"`
	Client  *wm.Client `json:"client,omitempty"`
	Desktop int        `json:"desktop"`
}

// DefaultSubscriberBuffer is the channel size handed out by Subscribe when
// no size is given.
const DefaultSubscriberBuffer = 64

// Hub fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	logger *slog.Logger
}

type subscriber struct {
	ch      chan Event
	once    sync.Once
	dropped int
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; it may be called more than once.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	s := &subscriber{ch: make(chan Event, buffer)}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s.ch, func() {
		h.mu.Lock()
		delete(h.subs, s)
		h.mu.Unlock()
		s.once.Do(func() { close(s.ch) })
	}
}

// Publish delivers ev to every subscriber with room for it.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			s.dropped++
			h.logger.Debug("subscriber lagging, event dropped", "type", ev.Type, "dropped", s.dropped)
		}
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
