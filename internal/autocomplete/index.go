// Package autocomplete maintains an orderable candidate set for
// interactive prefix completion. The index holds copies of keys only;
// it is a cache that can be rebuilt wholesale from its source of truth.
package autocomplete

import (
	"sort"
	"strings"
	"sync"
)

// Index is a sorted set of keys with a cycling completion cursor.
type Index struct {
	mu   sync.Mutex
	keys []string // kept sorted

	// cycling state for repeated Complete calls with the same prefix
	active bool
	prefix string
	pos    int
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Add inserts a key, keeping the set sorted. Duplicates are ignored.
func (i *Index) Add(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	at := sort.SearchStrings(i.keys, key)
	if at < len(i.keys) && i.keys[at] == key {
		return
	}
	i.keys = append(i.keys, "")
	copy(i.keys[at+1:], i.keys[at:])
	i.keys[at] = key
}

// Remove deletes a key. Removing an unknown key is a no-op.
func (i *Index) Remove(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	at := sort.SearchStrings(i.keys, key)
	if at >= len(i.keys) || i.keys[at] != key {
		return
	}
	i.keys = append(i.keys[:at], i.keys[at+1:]...)
}

// Reset forgets the cycling position without touching membership.
func (i *Index) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.active = false
}

// Clear drops all keys and the cycling position. Used when the backing
// store is cleared and repopulated on reconnect.
func (i *Index) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.keys = nil
	i.active = false
}

// Len returns the number of keys in the index.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.keys)
}

// Complete returns the next key matching prefix, cycling through the
// matches in sorted order on repeated calls with the same prefix and
// wrapping around at either end. previous reverses direction. A new
// prefix restarts the cycle. Returns ("", false) when nothing matches.
func (i *Index) Complete(prefix string, previous bool) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	matches := i.matches(prefix)
	if len(matches) == 0 {
		i.active = false
		return "", false
	}

	if !i.active || i.prefix != prefix {
		i.active = true
		i.prefix = prefix
		if previous {
			i.pos = len(matches) - 1
		} else {
			i.pos = 0
		}
		return matches[i.pos], true
	}

	if i.pos >= len(matches) {
		// membership shrank mid-cycle; restart from the top
		i.pos = 0
		return matches[i.pos], true
	}

	if previous {
		i.pos = (i.pos - 1 + len(matches)) % len(matches)
	} else {
		i.pos = (i.pos + 1) % len(matches)
	}
	return matches[i.pos], true
}

// matches returns the sorted keys sharing prefix. Caller holds i.mu.
func (i *Index) matches(prefix string) []string {
	from := sort.SearchStrings(i.keys, prefix)
	to := from
	for to < len(i.keys) && strings.HasPrefix(i.keys[to], prefix) {
		to++
	}
	return i.keys[from:to]
}
