// Package correlation routes asynchronous IQ replies back to the
// requests that produced them, keyed by stanza id.
package correlation

import (
	"fmt"
	"sync"
	"time"

	"github.com/warble-im/warble/internal/logger"
	"github.com/warble-im/warble/internal/stanza"
)

// DefaultTimeout bounds how long a registered request waits for its
// reply before the entry is expired.
const DefaultTimeout = 5 * time.Second

// Handler consumes the reply stanza for a registered request.
// It is invoked at most once.
type Handler func(reply *stanza.Node)

// Cleanup releases resources captured at registration time. It runs
// exactly once when the entry is removed, whether by reply, expiry or
// teardown.
type Cleanup func()

type entry struct {
	handler Handler
	cleanup Cleanup
	timer   *time.Timer
}

// Registry holds the pending request/response conversations of one
// connection. All entries are dropped on disconnect via Clear.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
	logger  logger.Logger
}

// New creates a registry. A non-positive timeout falls back to
// DefaultTimeout; a nil logger falls back to a no-op logger.
func New(timeout time.Duration, log logger.Logger) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		entries: make(map[string]*entry),
		timeout: timeout,
		logger:  log,
	}
}

// Register installs a one-shot reply handler for the given stanza id.
// A duplicate id is a caller bug and returns an error. The entry is
// expired automatically after the registry's timeout.
func (r *Registry) Register(id string, handler Handler, cleanup Cleanup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("reply handler already registered for id %q", id)
	}

	e := &entry{handler: handler, cleanup: cleanup}
	e.timer = time.AfterFunc(r.timeout, func() {
		r.expire(id, e)
	})
	r.entries[id] = e
	return nil
}

// Dispatch routes an inbound stanza to the handler registered for its
// id, then runs the cleanup and removes the entry. It reports whether
// the stanza was consumed. Stanzas that are not IQ replies, carry no
// id, or match no entry are left for other subsystems.
//
// The entry is removed before the handler runs, so a concurrent expiry
// or a second reply with the same id finds nothing and is a no-op.
func (r *Registry) Dispatch(st *stanza.Node) bool {
	if st == nil || !st.IsIQ() {
		return false
	}
	switch st.Type() {
	case stanza.TypeResult, stanza.TypeError:
	default:
		return false
	}
	id := st.ID()
	if id == "" {
		return false
	}

	e := r.take(id)
	if e == nil {
		return false
	}

	e.handler(st)
	if e.cleanup != nil {
		e.cleanup()
	}
	return true
}

// Expire removes the entry for id without invoking its handler, running
// only the cleanup. Expiring an unknown id is a no-op, which makes the
// expiry timer safe against a reply that arrived first.
func (r *Registry) Expire(id string) {
	e := r.take(id)
	if e == nil {
		return
	}

	r.logger.Debug("reply handler expired without a response",
		logger.String("id", id))
	if e.cleanup != nil {
		e.cleanup()
	}
}

// expire removes the entry for id only when it is still the one this
// timer was armed for. A fired timer whose callback is still in flight
// must not touch a newer registration under the same id: that entry
// has its own timer and its own full window.
func (r *Registry) expire(id string, armed *entry) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e != armed {
		r.mu.Unlock()
		return
	}
	delete(r.entries, id)
	r.mu.Unlock()

	r.logger.Debug("reply handler expired without a response",
		logger.String("id", id))
	if e.cleanup != nil {
		e.cleanup()
	}
}

// Clear removes every entry, running each cleanup without invoking any
// handler. Called on disconnect: replies arriving afterwards belong to
// a dead connection.
func (r *Registry) Clear() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range entries {
		e.timer.Stop()
		if e.cleanup != nil {
			e.cleanup()
		}
	}
}

// Pending returns the number of outstanding conversations.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// take removes and returns the entry for id, stopping its timer.
// Returns nil if the id is not registered.
func (r *Registry) take(id string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	delete(r.entries, id)
	e.timer.Stop()
	return e
}
