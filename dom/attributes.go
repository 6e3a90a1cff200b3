package dom

import "strings"

// Attribute is a single (possibly namespaced) name/value pair on an
// element. Namespace is empty for ordinary HTML attributes and set for
// the xlink:/xml:/xmlns: family adjusted during foreign-content parsing.
type Attribute struct {
	Namespace string
	Name      string
	Value     string
}

// Attributes holds an element's attribute list in insertion order. HTML
// attribute names are ASCII case-insensitive; lookups fold case, but the
// stored Name preserves whatever the tokenizer produced (already
// lowercased for HTML, case-preserved for adjusted foreign attributes).
type Attributes struct {
	items []Attribute
}

// NewAttributes returns an empty attribute list.
func NewAttributes() *Attributes {
	return &Attributes{}
}

func (a *Attributes) indexOf(namespace, name string) int {
	for i, it := range a.items {
		if it.Namespace == namespace && strings.EqualFold(it.Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value of the unnamespaced attribute name, and whether
// it is present.
func (a *Attributes) Get(name string) (string, bool) {
	return a.GetNS("", name)
}

// GetNS returns the value of the namespaced attribute (namespace, name),
// and whether it is present.
func (a *Attributes) GetNS(namespace, name string) (string, bool) {
	if i := a.indexOf(namespace, name); i >= 0 {
		return a.items[i].Value, true
	}
	return "", false
}

// Has reports whether the unnamespaced attribute name is present.
func (a *Attributes) Has(name string) bool {
	return a.indexOf("", name) >= 0
}

// HasNS reports whether the namespaced attribute (namespace, name) is present.
func (a *Attributes) HasNS(namespace, name string) bool {
	return a.indexOf(namespace, name) >= 0
}

// Set adds name=value if name is not already present (per "When a start
// tag token is emitted... if it has no attribute with that name, add a
// new attribute"); repeated attributes on one start tag lose to the
// first occurrence, never the last. A Set on an already-processed
// element (outside of token-driven insertion) behaves the same way.
func (a *Attributes) Set(name, value string) {
	a.SetNS("", name, value)
}

// SetNS is the namespaced form of Set.
func (a *Attributes) SetNS(namespace, name, value string) {
	if a.indexOf(namespace, name) >= 0 {
		return
	}
	a.items = append(a.items, Attribute{Namespace: namespace, Name: name, Value: value})
}

// Overwrite sets name=value unconditionally, replacing any existing value,
// unlike the "first wins" rule Set implements. The tree builder does not
// use it: completing <html>/<body> attributes from a later start tag only
// adds missing names, which it does with Set.
func (a *Attributes) Overwrite(name, value string) {
	if i := a.indexOf("", name); i >= 0 {
		a.items[i].Value = value
		return
	}
	a.items = append(a.items, Attribute{Name: name, Value: value})
}

// Remove deletes the unnamespaced attribute name, if present.
func (a *Attributes) Remove(name string) {
	a.RemoveNS("", name)
}

// RemoveNS deletes the namespaced attribute (namespace, name), if present.
func (a *Attributes) RemoveNS(namespace, name string) {
	if i := a.indexOf(namespace, name); i >= 0 {
		a.items = append(a.items[:i], a.items[i+1:]...)
	}
}

// All returns the attribute list in insertion order. The returned slice
// aliases internal storage and must not be mutated.
func (a *Attributes) All() []Attribute {
	return a.items
}

// Len reports the number of attributes.
func (a *Attributes) Len() int {
	return len(a.items)
}

// Clone returns a deep copy, used when the adoption agency algorithm
// clones a formatting element.
func (a *Attributes) Clone() *Attributes {
	out := &Attributes{items: make([]Attribute, len(a.items))}
	copy(out.items, a.items)
	return out
}
