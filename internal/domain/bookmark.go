// Package domain contains the core data structures of the client,
// independent of the wire protocol and transport layers.
package domain

// Flag is a tri-state boolean for fields that must distinguish
// "never seen" from an explicit true or false.
type Flag int

const (
	FlagUnset Flag = iota
	FlagTrue
	FlagFalse
)

// ParseFlag maps the wire literals "true" and "false" onto a Flag.
// Any other value is FlagUnset.
func ParseFlag(s string) Flag {
	switch s {
	case "true":
		return FlagTrue
	case "false":
		return FlagFalse
	default:
		return FlagUnset
	}
}

// String returns the wire literal for the flag, or "" when unset.
func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return ""
	}
}

// Bookmark represents one server-stored MUC room bookmark.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Room is the bare JID of the room.
	// Example: project@conference.example.org
	Room string

	// ─────────────────────────────
	// Join preferences
	// ─────────────────────────────

	// Nick is the preferred join nickname.
	// Empty means: use the account's default nickname.
	Nick string

	// Password is the room password, if the room requires one.
	Password string

	// Name is the display name of the bookmark.
	// Empty means: fall back to the localpart of Room.
	Name string

	// Autojoin marks the room to be joined automatically after the
	// bookmark set has been pulled on connect.
	Autojoin bool

	// ─────────────────────────────
	// Vendor extensions
	// ─────────────────────────────

	// Minimize is Gajim's minimize-on-autojoin extension flag. This
	// client does not act on it, but the push protocol overwrites the
	// whole server-side collection, so the flag is carried verbatim
	// to avoid destroying another client's data on re-save.
	Minimize Flag
}

// DisplayName returns the explicit bookmark name when set, otherwise
// the localpart of the room JID. May be empty if the room JID has no
// localpart.
func (b Bookmark) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return Localpart(b.Room)
}
