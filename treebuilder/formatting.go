package treebuilder

import (
	"sort"
	"strings"

	"github.com/crestfall/htmlcore/dom"
)

// formattingEntry is one slot in the active formatting elements list,
// SPEC_FULL.md §4.5. A marker entry (node == dom.NoNode, name == "")
// bounds reconstruction at scope boundaries (the insertion of a table,
// template, or similar).
type formattingEntry struct {
	marker bool
	name   string
	attrs  *dom.Attributes
	node   dom.NodeID
}

// FormattingList is the active formatting elements list used by the
// adoption agency algorithm and by reconstructActiveFormattingElements.
type FormattingList struct {
	arena   *dom.Arena
	entries []formattingEntry
}

func newFormattingList(arena *dom.Arena) *FormattingList {
	return &FormattingList{arena: arena}
}

func (l *FormattingList) pushMarker() {
	l.entries = append(l.entries, formattingEntry{marker: true})
}

// clearUpToMarker removes entries back to (and including) the most
// recent marker, per "clear the list of active formatting elements up to
// the last marker".
func (l *FormattingList) clearUpToMarker() {
	for len(l.entries) > 0 {
		e := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		if e.marker {
			return
		}
	}
}

// attrsSignature computes a stable signature for Noah's-Ark duplicate
// detection: same tag name plus the same (name,value) set regardless of
// order.
func attrsSignature(attrs *dom.Attributes) string {
	if attrs == nil {
		return ""
	}
	items := attrs.All()
	parts := make([]string, len(items))
	for i, a := range items {
		parts[i] = a.Name + "=" + a.Value
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x00")
}

// append appends a new entry, applying the Noah's Ark clause: if three
// elements with the same tag name, namespace and attribute set already
// exist since the last marker, the earliest of them is removed first.
func (l *FormattingList) append(name string, attrs *dom.Attributes, node dom.NodeID) {
	sig := attrsSignature(attrs)
	count := 0
	earliest := -1
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.marker {
			break
		}
		if e.name == name && attrsSignature(e.attrs) == sig {
			count++
			earliest = i
			if count == 3 {
				break
			}
		}
	}
	if count >= 3 && earliest >= 0 {
		l.entries = append(l.entries[:earliest], l.entries[earliest+1:]...)
	}
	l.entries = append(l.entries, formattingEntry{name: name, attrs: attrs, node: node})
}

// findDuplicate reports the most recent entry (since the last marker)
// with the same name and attribute signature as (name, attrs), used by
// InBody's generic formatting-element start-tag rule to drop a stale
// duplicate before inserting the fresh one.
func (l *FormattingList) findDuplicate(name string, attrs *dom.Attributes) (int, bool) {
	sig := attrsSignature(attrs)
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if e.marker {
			return 0, false
		}
		if e.name == name && attrsSignature(e.attrs) == sig {
			return i, true
		}
	}
	return 0, false
}

// insertAt inserts a new entry at position i, shifting later entries up;
// used by the adoption agency algorithm to reinsert the reconstructed
// formatting element at its bookmarked position.
func (l *FormattingList) insertAt(i int, name string, attrs *dom.Attributes, node dom.NodeID) {
	entry := formattingEntry{name: name, attrs: attrs, node: node}
	l.entries = append(l.entries, formattingEntry{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry
}

func (l *FormattingList) removeAt(i int) {
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
}

func (l *FormattingList) removeNode(node dom.NodeID) {
	for i, e := range l.entries {
		if !e.marker && e.node == node {
			l.removeAt(i)
			return
		}
	}
}

// removeLastByName removes the most recent non-marker entry named name.
func (l *FormattingList) removeLastByName(name string) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if !l.entries[i].marker && l.entries[i].name == name {
			l.removeAt(i)
			return
		}
	}
}

// hasEntry reports whether an active (non-marker) entry named name
// exists anywhere in the list.
func (l *FormattingList) hasEntry(name string) bool {
	for _, e := range l.entries {
		if !e.marker && e.name == name {
			return true
		}
	}
	return false
}

// indexOfNode returns the list index of the entry wrapping node, or -1.
func (l *FormattingList) indexOfNode(node dom.NodeID) int {
	for i, e := range l.entries {
		if !e.marker && e.node == node {
			return i
		}
	}
	return -1
}

// lastMarkerOrStart returns the index just after the most recent marker
// (0 if there is none), the point reconstruction walks forward from.
func (l *FormattingList) lastMarkerOrStart() int {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].marker {
			return i + 1
		}
	}
	return 0
}

func (l *FormattingList) entryAt(i int) formattingEntry {
	return l.entries[i]
}

func (l *FormattingList) len() int {
	return len(l.entries)
}

func (l *FormattingList) setNodeAt(i int, node dom.NodeID) {
	l.entries[i].node = node
}
