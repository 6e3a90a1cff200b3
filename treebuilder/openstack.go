package treebuilder

import (
	"github.com/crestfall/htmlcore/dom"
	"github.com/crestfall/htmlcore/internal/htmlspec"
)

// OpenElementStack is the "stack of open elements", SPEC_FULL.md §4.4:
// the chain of element ids the tree constructor is currently inside,
// bottom (the root) first. It is factored out of Builder into its own
// type so its scope-query and structural operations have a contract
// independent of insertion-mode dispatch.
type OpenElementStack struct {
	arena *dom.Arena
	items []dom.NodeID
}

func newOpenElementStack(arena *dom.Arena) *OpenElementStack {
	return &OpenElementStack{arena: arena}
}

func (s *OpenElementStack) push(id dom.NodeID) {
	s.items = append(s.items, id)
}

func (s *OpenElementStack) pop() dom.NodeID {
	if len(s.items) == 0 {
		return dom.NoNode
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top
}

func (s *OpenElementStack) current() dom.NodeID {
	if len(s.items) == 0 {
		return dom.NoNode
	}
	return s.items[len(s.items)-1]
}

func (s *OpenElementStack) isEmpty() bool {
	return len(s.items) == 0
}

func (s *OpenElementStack) size() int {
	return len(s.items)
}

func (s *OpenElementStack) at(i int) dom.NodeID {
	return s.items[i]
}

// contains reports whether name (HTML namespace) is anywhere on the stack.
func (s *OpenElementStack) contains(name string) bool {
	return s.indexOfTag(name) >= 0
}

func (s *OpenElementStack) indexOfTag(name string) int {
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.arena.Get(s.items[i])
		if n.Namespace == "" && n.TagName == name {
			return i
		}
	}
	return -1
}

// indexOf returns the stack index of id, or -1.
func (s *OpenElementStack) indexOf(id dom.NodeID) int {
	for i, it := range s.items {
		if it == id {
			return i
		}
	}
	return -1
}

// popUntilTagName pops elements (including the matched one) until an
// HTML-namespace element named name has been popped, or the stack is
// exhausted.
func (s *OpenElementStack) popUntilTagName(name string) {
	for len(s.items) > 0 {
		n := s.arena.Get(s.items[len(s.items)-1])
		match := n.Namespace == "" && n.TagName == name
		s.pop()
		if match {
			return
		}
	}
}

// popUntilOneOf pops elements (including the matched one) until an
// element whose tag name is in names has been popped.
func (s *OpenElementStack) popUntilOneOf(names map[string]bool) {
	for len(s.items) > 0 {
		n := s.arena.Get(s.items[len(s.items)-1])
		match := n.Namespace == "" && names[n.TagName]
		s.pop()
		if match {
			return
		}
	}
}

// removeLastByName removes the topmost HTML-namespace element named name
// from the stack, used after the adoption agency algorithm runs for "a"
// or "nobr" to drop the pre-adoption element explicitly.
func (s *OpenElementStack) removeLastByName(name string) {
	if i := s.indexOfTag(name); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// remove removes id from the stack wherever it is, preserving order.
func (s *OpenElementStack) remove(id dom.NodeID) {
	for i, it := range s.items {
		if it == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// replace swaps old for replacement at old's position.
func (s *OpenElementStack) replace(old, replacement dom.NodeID) {
	if i := s.indexOf(old); i >= 0 {
		s.items[i] = replacement
	}
}

// insertAt inserts id at position i, shifting later entries up.
func (s *OpenElementStack) insertAt(i int, id dom.NodeID) {
	s.items = append(s.items, dom.NoNode)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = id
}

// elementImmediatelyAbove returns the stack entry directly below id (the
// element that was current just before id was pushed), or NoNode.
func (s *OpenElementStack) elementImmediatelyAbove(id dom.NodeID) dom.NodeID {
	i := s.indexOf(id)
	if i <= 0 {
		return dom.NoNode
	}
	return s.items[i-1]
}

// hasElementInSpecificScope reports whether an HTML-namespace element
// named target is reachable on the stack before any element in stopAt is
// encountered (scanning from the top).
func (s *OpenElementStack) hasElementInSpecificScope(target string, stopAt map[htmlspec.IntegrationPoint]bool) bool {
	return s.hasAnyInSpecificScope(func(tag, ns string) bool { return ns == "" && tag == target }, stopAt)
}

// hasAnyInSpecificScope is hasElementInSpecificScope generalized to an
// arbitrary predicate, used by the heading, table-section and cell
// handling that tests against a set of names rather than one.
func (s *OpenElementStack) hasAnyInSpecificScope(match func(tag, ns string) bool, stopAt map[htmlspec.IntegrationPoint]bool) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.arena.Get(s.items[i])
		if match(n.TagName, n.Namespace) {
			return true
		}
		key := htmlspec.IntegrationPoint{Namespace: namespaceKey(n.Namespace), LocalName: n.TagName}
		if stopAt[key] {
			return false
		}
	}
	return false
}

// hasElementInSelectScope implements the inverse-sense "select scope"
// rule: every element except optgroup/option stops the walk.
func (s *OpenElementStack) hasElementInSelectScope(target string) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		n := s.arena.Get(s.items[i])
		if n.Namespace == "" && n.TagName == target {
			return true
		}
		if n.Namespace != "" || (n.TagName != "optgroup" && n.TagName != "option") {
			return false
		}
	}
	return false
}

func namespaceKey(ns string) string {
	switch ns {
	case htmlspec.NSSVG:
		return htmlspec.NSSVG
	case htmlspec.NSMathML:
		return htmlspec.NSMathML
	default:
		return htmlspec.NSHTML
	}
}
