// Package muc drives the join sequence for bookmarked rooms. The
// orchestrator holds no room state of its own: activity and roster
// progress are owned by an injected collaborator, which keeps this
// package free of transport dependencies.
package muc

import (
	"github.com/warble-im/warble/internal/domain"
	"github.com/warble-im/warble/internal/logger"
)

// Rooms is the externally owned MUC session state and join machinery.
type Rooms interface {
	// Active reports whether a join for the room has been started.
	Active(room string) bool
	// RosterComplete reports whether the occupant roster of an active
	// room has been fully received.
	RosterComplete(room string) bool
	// Join registers a pending join for the room.
	Join(room, nick, password string)
	// RequestAffiliationList asks the room for the holders of one
	// affiliation ("member", "admin", "owner").
	RequestAffiliationList(room, affiliation string)
}

// Presence emits the directed presence that initiates a room join.
type Presence interface {
	SendJoin(room, nick, password string)
}

// UI surfaces an already joined room to the user.
type UI interface {
	FocusRoom(room string)
}

// Bookmarks is the read-only view of the bookmark store.
type Bookmarks interface {
	Lookup(room string) (domain.Bookmark, bool)
}

// Accounts resolves the default nickname of the current session, used
// when a bookmark carries none.
type Accounts interface {
	DefaultNick() string
}

// affiliations queried after a join, in this order, to pre-populate
// room governance data.
var affiliations = [...]string{"member", "admin", "owner"}

// Orchestrator sequences the actions needed to join or re-display a
// bookmarked room.
type Orchestrator struct {
	bookmarks Bookmarks
	rooms     Rooms
	presence  Presence
	ui        UI
	accounts  Accounts
	logger    logger.Logger
}

// New wires an orchestrator. All collaborators are required except the
// logger, which defaults to a no-op.
func New(bookmarks Bookmarks, rooms Rooms, presence Presence, ui UI, accounts Accounts, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{
		bookmarks: bookmarks,
		rooms:     rooms,
		presence:  presence,
		ui:        ui,
		accounts:  accounts,
		logger:    log,
	}
}

// Join joins the bookmarked room, or focuses it if it is already
// joined. Returns false when no bookmark exists for room; no traffic
// is produced in that case.
func (o *Orchestrator) Join(room string) bool {
	bm, ok := o.bookmarks.Lookup(room)
	if !ok {
		return false
	}
	o.JoinBookmark(bm)
	return true
}

// JoinBookmark is the autojoin entry point: it acts on a bookmark the
// caller already holds. Three mutually exclusive outcomes:
//
//   - room not active: initiate the join (presence, registration,
//     affiliation queries); completion is reported asynchronously by
//     the Rooms collaborator.
//   - active with a complete roster: focus the room, no network action.
//   - active with an incomplete roster: a join is already in flight,
//     do nothing.
func (o *Orchestrator) JoinBookmark(bm domain.Bookmark) {
	switch {
	case !o.rooms.Active(bm.Room):
		nick := bm.Nick
		if nick == "" {
			nick = o.accounts.DefaultNick()
		}
		o.logger.Debug("initiating room join",
			logger.String("room", bm.Room),
			logger.String("nick", nick))
		o.presence.SendJoin(bm.Room, nick, bm.Password)
		o.rooms.Join(bm.Room, nick, bm.Password)
		for _, aff := range affiliations {
			o.rooms.RequestAffiliationList(bm.Room, aff)
		}
	case o.rooms.RosterComplete(bm.Room):
		o.ui.FocusRoom(bm.Room)
	default:
		// join already in flight; a second join would only cause a
		// presence storm
	}
}
