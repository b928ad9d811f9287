package bookmarks

import (
	"github.com/warble-im/warble/internal/domain"
	"github.com/warble-im/warble/internal/stanza"
)

// bookmarkFromConference maps one conference element of a pull reply
// onto a Bookmark. Returns false for elements that cannot be
// interpreted (wrong name, missing jid); such fragments are skipped,
// never treated as errors.
func bookmarkFromConference(n *stanza.Node) (domain.Bookmark, bool) {
	if n.Name() != stanza.NameConference {
		return domain.Bookmark{}, false
	}
	room := n.Attr(stanza.AttrJID)
	if room == "" {
		return domain.Bookmark{}, false
	}

	bm := domain.Bookmark{
		Room: room,
		Name: n.Attr(stanza.AttrName),
	}

	// "1" and "true" mean enabled; anything else (or absent) disabled.
	switch n.Attr(stanza.AttrAutojoin) {
	case "1", "true":
		bm.Autojoin = true
	}

	if nick := n.Child(stanza.NameNick); nick != nil {
		bm.Nick = nick.Text
	}
	if password := n.Child(stanza.NamePassword); password != nil {
		bm.Password = password.Text
	}

	// Gajim's minimize flag is not part of this client's model but is
	// kept so a later push does not erase it.
	if minimize := n.ChildNS(stanza.NameMinimize, stanza.NSGajimBookmarks); minimize != nil {
		bm.Minimize = domain.ParseFlag(minimize.Text)
	}

	return bm, true
}

// conferenceNode maps a Bookmark onto the conference element of a push
// request.
func conferenceNode(bm domain.Bookmark) stanza.Node {
	n := stanza.New(stanza.NameConference)
	n.SetAttr(stanza.AttrJID, bm.Room)

	// Explicit name, else the localpart of the room JID. A room JID
	// without a localpart gets no name attribute at all.
	if name := bm.DisplayName(); name != "" {
		n.SetAttr(stanza.AttrName, name)
	}

	if bm.Autojoin {
		n.SetAttr(stanza.AttrAutojoin, "true")
	} else {
		n.SetAttr(stanza.AttrAutojoin, "false")
	}

	if bm.Nick != "" {
		nick := stanza.New(stanza.NameNick)
		nick.SetText(bm.Nick)
		n.Add(nick)
	}
	if bm.Password != "" {
		password := stanza.New(stanza.NamePassword)
		password.SetText(bm.Password)
		n.Add(password)
	}

	// Emitted only when the flag was explicitly seen; an unset flag
	// must not fabricate data on the server.
	if bm.Minimize != domain.FlagUnset {
		minimize := stanza.NewNS(stanza.NameMinimize, stanza.NSGajimBookmarks)
		minimize.SetText(bm.Minimize.String())
		n.Add(minimize)
	}

	return n
}
