package stanza

import (
	"strings"
	"testing"
)

func TestIQBuild(t *testing.T) {
	iq := IQ(TypeGet, "req-1")

	if !iq.IsIQ() {
		t.Fatal("IQ() did not produce an iq element")
	}
	if got := iq.Type(); got != TypeGet {
		t.Errorf("Type() = %q, want %q", got, TypeGet)
	}
	if got := iq.ID(); got != "req-1" {
		t.Errorf("ID() = %q, want %q", got, "req-1")
	}
}

func TestSetAttrReplaces(t *testing.T) {
	n := New("conference")
	n.SetAttr("autojoin", "false")
	n.SetAttr("autojoin", "true")

	if got := n.Attr("autojoin"); got != "true" {
		t.Errorf("Attr(autojoin) = %q, want %q", got, "true")
	}
	if len(n.Attrs) != 1 {
		t.Errorf("SetAttr() duplicated the attribute, got %d attrs", len(n.Attrs))
	}
}

func TestAttrAbsent(t *testing.T) {
	n := New("conference")
	if got := n.Attr("jid"); got != "" {
		t.Errorf("Attr() on missing attribute = %q, want empty", got)
	}
}

func TestParseNamespacedTree(t *testing.T) {
	raw := `<iq type="result" id="bookmark_init_request">` +
		`<query xmlns="jabber:iq:private">` +
		`<storage xmlns="storage:bookmarks">` +
		`<conference jid="room@conf.example" autojoin="1">` +
		`<nick>alice</nick>` +
		`<minimize xmlns="xmpp:gajim.org/bookmarks">true</minimize>` +
		`</conference>` +
		`</storage>` +
		`</query>` +
		`</iq>`

	n, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	query := n.Child(NameQuery)
	if query == nil {
		t.Fatal("Child(query) = nil")
	}
	if got := query.Namespace(); got != NSPrivate {
		t.Errorf("query namespace = %q, want %q", got, NSPrivate)
	}

	storage := query.ChildNS(NameStorage, NSBookmarks)
	if storage == nil {
		t.Fatal("ChildNS(storage) = nil")
	}

	conference := storage.Child(NameConference)
	if conference == nil {
		t.Fatal("Child(conference) = nil")
	}
	// unprefixed children inherit the default namespace
	if got := conference.Namespace(); got != NSBookmarks {
		t.Errorf("conference namespace = %q, want inherited %q", got, NSBookmarks)
	}
	if got := conference.Attr(AttrJID); got != "room@conf.example" {
		t.Errorf("Attr(jid) = %q, want %q", got, "room@conf.example")
	}

	nick := conference.Child(NameNick)
	if nick == nil {
		t.Fatal("Child(nick) = nil")
	}
	if nick.Text != "alice" {
		t.Errorf("nick text = %q, want %q", nick.Text, "alice")
	}

	minimize := conference.ChildNS(NameMinimize, NSGajimBookmarks)
	if minimize == nil {
		t.Fatal("ChildNS(minimize, gajim) = nil")
	}
	if minimize.Text != "true" {
		t.Errorf("minimize text = %q, want %q", minimize.Text, "true")
	}
}

func TestParseConcatenatesText(t *testing.T) {
	n, err := Parse([]byte(`<nick>al<x/>ice</nick>`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if n.Text != "alice" {
		t.Errorf("text = %q, want concatenated %q", n.Text, "alice")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	iq := IQ(TypeSet, "push-1")
	query := NewNS(NameQuery, NSPrivate)
	storage := NewNS(NameStorage, NSBookmarks)
	conference := New(NameConference)
	conference.SetAttr(AttrJID, "room@conf.example")
	conference.SetAttr(AttrAutojoin, "false")
	nick := New(NameNick)
	nick.SetText("alice")
	conference.Add(nick)
	storage.Add(conference)
	query.Add(storage)
	iq.Add(query)

	data, err := iq.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `xmlns="storage:bookmarks"`) {
		t.Errorf("Marshal() output missing storage namespace: %s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() of marshalled output error: %v", err)
	}
	queryBack := back.Child(NameQuery)
	if queryBack == nil {
		t.Fatal("query lost in round trip")
	}
	storageBack := queryBack.ChildNS(NameStorage, NSBookmarks)
	if storageBack == nil {
		t.Fatal("storage lost in round trip")
	}
	conferenceBack := storageBack.Child(NameConference)
	if conferenceBack == nil {
		t.Fatal("conference lost in round trip")
	}
	if got := conferenceBack.Attr(AttrJID); got != "room@conf.example" {
		t.Errorf("jid after round trip = %q, want %q", got, "room@conf.example")
	}
	nickBack := conferenceBack.Child(NameNick)
	if nickBack == nil || nickBack.Text != "alice" {
		t.Errorf("nick lost in round trip: %+v", nickBack)
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("NewID() not unique: %q vs %q", a, b)
	}
}
