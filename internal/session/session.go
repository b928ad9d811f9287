// Package session wires the synchronization core around one
// connection: correlation registry, bookmark store, autocomplete index
// and room-join orchestrator, plus the connect/disconnect lifecycle
// that keeps per-connection state from leaking across reconnects.
package session

import (
	"sync"

	"github.com/warble-im/warble/internal/autocomplete"
	"github.com/warble-im/warble/internal/bookmarks"
	"github.com/warble-im/warble/internal/config"
	"github.com/warble-im/warble/internal/correlation"
	"github.com/warble-im/warble/internal/logger"
	"github.com/warble-im/warble/internal/muc"
	"github.com/warble-im/warble/internal/stanza"
	"github.com/warble-im/warble/internal/version"
)

// Collaborators are the externally owned subsystems injected into the
// core. Conn, Rooms, Presence, UI and Accounts are required;
// Conferences is optional.
type Collaborators struct {
	Conn        bookmarks.Conn
	Rooms       muc.Rooms
	Presence    muc.Presence
	UI          muc.UI
	Accounts    muc.Accounts
	Conferences bookmarks.ConferenceTracker
}

// Session owns the per-connection protocol state.
type Session struct {
	cfg    *config.Config
	logger logger.Logger

	registry     *correlation.Registry
	index        *autocomplete.Index
	store        *bookmarks.Store
	orchestrator *muc.Orchestrator

	mu           sync.Mutex
	routines     []func()
	shutdownOnce sync.Once
}

// New wires a session. A nil config loads from the environment; a nil
// logger is built from the config.
func New(cfg *config.Config, log logger.Logger, c Collaborators) *Session {
	if cfg == nil {
		cfg = config.Load()
	}
	if log == nil {
		log = logger.New(cfg.LogLevel, cfg.PrettyLog)
	}

	s := &Session{
		cfg:    cfg,
		logger: log,
	}
	s.registry = correlation.New(cfg.ReplyTimeout, log)
	s.index = autocomplete.New()
	s.store = bookmarks.New(bookmarks.Deps{
		Conn:        c.Conn,
		Registry:    s.registry,
		Index:       s.index,
		Logger:      log,
		Conferences: c.Conferences,
		Shutdown:    s,
	})
	s.orchestrator = muc.New(s.store, c.Rooms, c.Presence, c.UI, c.Accounts, log)
	s.store.NotifyAutojoin(s.orchestrator.JoinBookmark)

	log.Info("session core initialized",
		logger.String("version", version.Version),
		logger.Duration("reply_timeout", cfg.ReplyTimeout))

	return s
}

// Connected arms the core for a fresh connection: it pulls the stored
// bookmark set, which repopulates the cache and index and triggers
// autojoin for flagged rooms.
func (s *Session) Connected() error {
	return s.store.Request()
}

// Disconnected tears down per-connection state: every pending
// conversation is cleaned up without invoking handlers, and the
// bookmark cache and index are reset.
func (s *Session) Disconnected() {
	s.registry.Clear()
	s.store.Reset()
}

// Dispatch routes an inbound stanza to the conversation that is
// waiting for it. Reports whether the stanza was consumed; unconsumed
// stanzas belong to other subsystems.
func (s *Session) Dispatch(st *stanza.Node) bool {
	return s.registry.Dispatch(st)
}

// AddShutdownRoutine registers a routine run once at Shutdown.
func (s *Session) AddShutdownRoutine(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routines = append(s.routines, fn)
}

// Shutdown finalizes the session. Registered routines run exactly
// once, in registration order, followed by the registry teardown.
func (s *Session) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		routines := s.routines
		s.routines = nil
		s.mu.Unlock()

		for _, fn := range routines {
			fn()
		}
		s.registry.Clear()
		_ = s.logger.Sync()
	})
}

// ─────────────────────────────────────────────────────────────────
// Command-layer surface
// ─────────────────────────────────────────────────────────────────

// Bookmarks exposes the bookmark store to the command layer.
func (s *Session) Bookmarks() *bookmarks.Store {
	return s.store
}

// Join joins or re-surfaces a bookmarked room. Returns false when no
// bookmark exists for room.
func (s *Session) Join(room string) bool {
	return s.orchestrator.Join(room)
}

// Complete cycles through bookmark keys matching prefix.
func (s *Session) Complete(prefix string, previous bool) (string, bool) {
	return s.index.Complete(prefix, previous)
}

// CompleteReset forgets the completion cycling position.
func (s *Session) CompleteReset() {
	s.index.Reset()
}
