// Package stanza builds and inspects XMPP stanzas as generic trees of
// namespaced XML elements. It is pure data transformation: no I/O, and
// no schema validation beyond what callers ask for.
package stanza

import (
	"encoding/xml"

	"github.com/google/uuid"
)

// Element names, attribute names, IQ types and namespaces that appear
// on the wire. The exact strings are required for interoperability.
const (
	NameIQ         = "iq"
	NameQuery      = "query"
	NameStorage    = "storage"
	NameConference = "conference"
	NameNick       = "nick"
	NamePassword   = "password"
	NameMinimize   = "minimize"

	AttrID       = "id"
	AttrType     = "type"
	AttrJID      = "jid"
	AttrName     = "name"
	AttrAutojoin = "autojoin"

	TypeGet    = "get"
	TypeSet    = "set"
	TypeResult = "result"
	TypeError  = "error"

	NSPrivate        = "jabber:iq:private"
	NSBookmarks      = "storage:bookmarks"
	NSGajimBookmarks = "xmpp:gajim.org/bookmarks"
)

// Node is a single XML element: name, optional namespace, attributes,
// concatenated text content and ordered children.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// New returns an element with the given local name and no namespace.
func New(name string) Node {
	return Node{XMLName: xml.Name{Local: name}}
}

// NewNS returns an element with the given local name and namespace.
func NewNS(name, ns string) Node {
	return Node{XMLName: xml.Name{Space: ns, Local: name}}
}

// IQ returns an info-query stanza of the given type ("get"/"set") with
// the given correlation id.
func IQ(typ, id string) Node {
	n := New(NameIQ)
	n.SetAttr(AttrType, typ)
	n.SetAttr(AttrID, id)
	return n
}

// NewID returns a unique stanza identifier.
func NewID() string {
	return uuid.NewString()
}

// Name returns the local element name.
func (n *Node) Name() string {
	return n.XMLName.Local
}

// Namespace returns the element namespace, resolved during parsing for
// inherited default namespaces.
func (n *Node) Namespace() string {
	return n.XMLName.Space
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing an existing value.
func (n *Node) SetAttr(name, value string) *Node {
	for i, a := range n.Attrs {
		if a.Name.Local == name && a.Name.Space == "" {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return n
}

// SetText sets the text content of the element.
func (n *Node) SetText(s string) *Node {
	n.Text = s
	return n
}

// Add appends child elements.
func (n *Node) Add(children ...Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Child returns the first child with the given local name, or nil.
// Absence of an expected child is not an error; callers return early.
func (n *Node) Child(name string) *Node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// ChildNS returns the first child with the given local name and
// namespace, or nil.
func (n *Node) ChildNS(name, ns string) *Node {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name && n.Children[i].XMLName.Space == ns {
			return &n.Children[i]
		}
	}
	return nil
}

// ID returns the stanza's correlation id attribute.
func (n *Node) ID() string {
	return n.Attr(AttrID)
}

// Type returns the stanza's type attribute.
func (n *Node) Type() string {
	return n.Attr(AttrType)
}

// IsIQ reports whether the element is an info-query stanza.
func (n *Node) IsIQ() bool {
	return n.XMLName.Local == NameIQ
}

// Marshal serializes the element tree to its wire form.
func (n *Node) Marshal() ([]byte, error) {
	return xml.Marshal(n)
}

// Parse decodes one element tree from its wire form.
func Parse(data []byte) (*Node, error) {
	var n Node
	if err := xml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
