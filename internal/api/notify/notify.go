// Package notify broadcasts record-change events to listeners scoped to
// one project, so wizard clients can re-aggregate when any input of the
// step graph changes.
package notify

import (
	"sync"

	"github.com/injaz-app/injaz/pkg/core"
)

// Event describes one record change on a project.
type Event struct {
	ProjectID string      `json:"project_id"`
	Kind      string      `json:"kind"` // project, siteplan, license, contract, awarding
	StepID    core.StepID `json:"step_id,omitempty"`
}

// Hub fans change events out to per-project subscribers. Sends never
// block: a subscriber whose buffer is full misses the ping and catches
// up on its next refresh.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a listener for one project's events. The caller
// must Unsubscribe when done.
func (h *Hub) Subscribe(projectID string) chan Event {
	ch := make(chan Event, 8)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[projectID] == nil {
		h.subs[projectID] = make(map[chan Event]struct{})
	}
	h.subs[projectID][ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (h *Hub) Unsubscribe(projectID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[projectID]; ok {
		if _, ok := set[ch]; ok {
			delete(set, ch)
			close(ch)
		}
		if len(set) == 0 {
			delete(h.subs, projectID)
		}
	}
}

// Publish sends an event to every subscriber of its project.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[ev.ProjectID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports the number of listeners for a project.
func (h *Hub) SubscriberCount(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[projectID])
}
