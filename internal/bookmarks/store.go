// Package bookmarks holds the authoritative in-memory cache of
// server-stored MUC bookmarks and keeps it synchronized with the
// server over the stream: a full pull on connect, a full-state push
// after every local mutation.
package bookmarks

import (
	"sync"

	"github.com/warble-im/warble/internal/autocomplete"
	"github.com/warble-im/warble/internal/correlation"
	"github.com/warble-im/warble/internal/domain"
	"github.com/warble-im/warble/internal/logger"
	"github.com/warble-im/warble/internal/stanza"
)

// PullRequestID is the fixed correlation id of the initial pull
// request. Fixed so a reconnect can re-arm the pull without leaking a
// stale registration.
const PullRequestID = "bookmark_init_request"

// Conn sends a stanza over the active connection.
type Conn interface {
	Send(st *stanza.Node)
}

// ConferenceTracker records MUC service domains as they are
// discovered, for later service discovery suggestions.
type ConferenceTracker interface {
	AddConferenceServer(domain string)
}

// ShutdownHooks registers routines run once at session teardown.
type ShutdownHooks interface {
	AddShutdownRoutine(fn func())
}

// Deps are the collaborators of the store. Conn, Registry, Index and
// Logger are required; the rest are optional.
type Deps struct {
	Conn     Conn
	Registry *correlation.Registry
	Index    *autocomplete.Index
	Logger   logger.Logger

	Conferences ConferenceTracker
	Shutdown    ShutdownHooks
}

// Store owns the Bookmark records. Other components only ever see
// copies, so no reference survives a store mutation.
type Store struct {
	mu        sync.RWMutex
	bookmarks map[string]*domain.Bookmark

	conn        Conn
	registry    *correlation.Registry
	index       *autocomplete.Index
	logger      logger.Logger
	conferences ConferenceTracker
	shutdown    ShutdownHooks

	autojoin     func(domain.Bookmark)
	shutdownOnce sync.Once
}

// New creates an empty store.
func New(d Deps) *Store {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		bookmarks:   make(map[string]*domain.Bookmark),
		conn:        d.Conn,
		registry:    d.Registry,
		index:       d.Index,
		logger:      log,
		conferences: d.Conferences,
		shutdown:    d.Shutdown,
	}
}

// NotifyAutojoin sets the callback invoked for every pulled bookmark
// whose autojoin flag is set. Safe to call while replies are being
// dispatched.
func (s *Store) NotifyAutojoin(fn func(domain.Bookmark)) {
	s.mu.Lock()
	s.autojoin = fn
	s.mu.Unlock()
}

// Request clears the local cache and asks the server for the stored
// bookmark set. Idempotent: calling it again (reconnect) re-arms the
// pull and leaves no residue from the previous connection.
func (s *Store) Request() error {
	s.shutdownOnce.Do(func() {
		if s.shutdown != nil {
			s.shutdown.AddShutdownRoutine(s.Reset)
		}
	})

	s.Reset()

	// A pull from a previous connection may still be registered under
	// the fixed id; drop it so re-registration cannot fail.
	s.registry.Expire(PullRequestID)
	if err := s.registry.Register(PullRequestID, s.handlePull, nil); err != nil {
		return err
	}

	iq := stanza.IQ(stanza.TypeGet, PullRequestID)
	query := stanza.NewNS(stanza.NameQuery, stanza.NSPrivate)
	query.Add(stanza.NewNS(stanza.NameStorage, stanza.NSBookmarks))
	iq.Add(query)

	s.conn.Send(&iq)
	return nil
}

// handlePull repopulates the cache and index from a pull reply and
// fires the autojoin callback for flagged rooms. Fragments that do not
// parse are skipped; the rest of the reply is still applied.
func (s *Store) handlePull(reply *stanza.Node) {
	if !reply.IsIQ() {
		return
	}
	query := reply.Child(stanza.NameQuery)
	if query == nil {
		return
	}
	storage := query.Child(stanza.NameStorage)
	if storage == nil {
		return
	}

	for i := range storage.Children {
		bm, ok := bookmarkFromConference(&storage.Children[i])
		if !ok {
			continue
		}

		s.logger.Debug("handling pulled bookmark",
			logger.String("room", bm.Room),
			logger.Bool("autojoin", bm.Autojoin))

		s.mu.Lock()
		s.bookmarks[bm.Room] = &bm
		autojoin := s.autojoin
		s.mu.Unlock()
		s.index.Add(bm.Room)
		s.trackConferenceServer(bm.Room)

		if bm.Autojoin && autojoin != nil {
			autojoin(bm)
		}
	}
}

// Add creates a bookmark and pushes the new set to the server.
// Returns false when a bookmark for room already exists; the existing
// entry is left untouched. autojoin enables the flag for the literal
// "on" and leaves it disabled for anything else.
func (s *Store) Add(room, nick, password, autojoin, name string) bool {
	s.trackConferenceServer(room)

	s.mu.Lock()
	if _, exists := s.bookmarks[room]; exists {
		s.mu.Unlock()
		return false
	}
	s.bookmarks[room] = &domain.Bookmark{
		Room:     room,
		Nick:     nick,
		Password: password,
		Name:     name,
		Autojoin: autojoin == "on",
	}
	s.mu.Unlock()

	s.index.Add(room)
	s.Push()
	return true
}

// Update overwrites only the fields supplied (non-nil) and pushes the
// new set. Returns false when no bookmark exists for room. The
// autojoin token is two-valued: "on" and "off" set the flag, any other
// literal leaves the current state unchanged.
func (s *Store) Update(room string, nick, password, autojoin, name *string) bool {
	s.mu.Lock()
	bm, ok := s.bookmarks[room]
	if !ok {
		s.mu.Unlock()
		return false
	}
	if nick != nil {
		bm.Nick = *nick
	}
	if password != nil {
		bm.Password = *password
	}
	if name != nil {
		bm.Name = *name
	}
	if autojoin != nil {
		switch *autojoin {
		case "on":
			bm.Autojoin = true
		case "off":
			bm.Autojoin = false
		}
	}
	s.mu.Unlock()

	s.Push()
	return true
}

// Remove deletes a bookmark and pushes the new set. Returns false when
// no bookmark exists for room.
func (s *Store) Remove(room string) bool {
	s.mu.Lock()
	if _, ok := s.bookmarks[room]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.bookmarks, room)
	s.mu.Unlock()

	s.index.Remove(room)
	s.Push()
	return true
}

// Lookup returns a copy of the bookmark for room.
func (s *Store) Lookup(room string) (domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bm, ok := s.bookmarks[room]
	if !ok {
		return domain.Bookmark{}, false
	}
	return *bm, true
}

// Exists reports whether a bookmark exists for room.
func (s *Store) Exists(room string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.bookmarks[room]
	return ok
}

// List returns a snapshot of all bookmarks in unspecified order.
func (s *Store) List() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bookmark, 0, len(s.bookmarks))
	for _, bm := range s.bookmarks {
		out = append(out, *bm)
	}
	return out
}

// Push serializes the entire cache into one set request and sends it.
// The server replaces its whole stored collection with this set, which
// is why unknown vendor fields are carried in the cache rather than
// dropped during parsing.
func (s *Store) Push() {
	iq := stanza.IQ(stanza.TypeSet, stanza.NewID())
	query := stanza.NewNS(stanza.NameQuery, stanza.NSPrivate)
	storage := stanza.NewNS(stanza.NameStorage, stanza.NSBookmarks)

	s.mu.RLock()
	for _, bm := range s.bookmarks {
		storage.Add(conferenceNode(*bm))
	}
	s.mu.RUnlock()

	query.Add(storage)
	iq.Add(query)
	s.conn.Send(&iq)
}

// Reset drops the cache and the autocomplete index. Per-connection
// state must not leak across reconnects.
func (s *Store) Reset() {
	s.mu.Lock()
	s.bookmarks = make(map[string]*domain.Bookmark)
	s.mu.Unlock()
	s.index.Clear()
}

func (s *Store) trackConferenceServer(room string) {
	if s.conferences == nil {
		return
	}
	if dom := domain.Domainpart(room); dom != "" {
		s.conferences.AddConferenceServer(dom)
	}
}
