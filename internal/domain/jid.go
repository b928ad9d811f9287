package domain

import "strings"

// Bare strips the resource suffix from a JID.
// Example: "room@conf.example/nick" -> "room@conf.example"
func Bare(jid string) string {
	bare, _, _ := strings.Cut(jid, "/")
	return bare
}

// Localpart returns the part of a JID before the '@'.
// A JID without a localpart (a bare domain) yields "".
func Localpart(jid string) string {
	local, _, found := strings.Cut(Bare(jid), "@")
	if !found {
		return ""
	}
	return local
}

// Domainpart returns the domain of a JID. For a JID without an '@'
// the whole bare JID is the domain.
func Domainpart(jid string) string {
	_, dom, found := strings.Cut(Bare(jid), "@")
	if !found {
		return Bare(jid)
	}
	return dom
}
