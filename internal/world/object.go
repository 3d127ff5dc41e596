// Package world holds the mutable state routines act on: the object
// graph, the global table, and word-addressed memory tables.
package world

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// Object is a game object: named properties, boolean flags, and a
// containment slot. Children are a derived back-reference kept
// consistent by Move and Remove; nothing else mutates them.
type Object struct {
	Name string

	props    map[string]value.Value
	flags    map[string]bool
	parent   *Object
	children []*Object
}

// NewObject creates a detached object with no properties or flags.
func NewObject(name string) *Object {
	return &Object{
		Name:  value.Canon(name),
		props: make(map[string]value.Value),
		flags: make(map[string]bool),
	}
}

// Prop returns the named property, or False when unset.
func (o *Object) Prop(name string) value.Value {
	if v, ok := o.props[value.Canon(name)]; ok {
		return v
	}
	return value.False{}
}

// SetProp sets the named property.
func (o *Object) SetProp(name string, v value.Value) {
	o.props[value.Canon(name)] = v
}

// Flag reports whether the named flag is set.
func (o *Object) Flag(name string) bool {
	return o.flags[value.Canon(name)]
}

// SetFlag sets the named flag.
func (o *Object) SetFlag(name string) {
	o.flags[value.Canon(name)] = true
}

// ClearFlag clears the named flag.
func (o *Object) ClearFlag(name string) {
	delete(o.flags, value.Canon(name))
}

// Parent returns the containing object, or nil when the object is in
// the void.
func (o *Object) Parent() *Object { return o.parent }

// Children returns the contained objects in insertion order. The slice
// is the live backing store; callers must not mutate it.
func (o *Object) Children() []*Object { return o.children }

// First returns the first child, or nil.
func (o *Object) First() *Object {
	if len(o.children) == 0 {
		return nil
	}
	return o.children[0]
}

// NextSibling returns the child after o in its parent, or nil when o
// is last or detached.
func (o *Object) NextSibling() *Object {
	if o.parent == nil {
		return nil
	}
	for i, c := range o.parent.children {
		if c == o && i+1 < len(o.parent.children) {
			return o.parent.children[i+1]
		}
	}
	return nil
}

// isAncestorOf reports whether o contains p, directly or transitively.
func (o *Object) isAncestorOf(p *Object) bool {
	for cur := p; cur != nil; cur = cur.parent {
		if cur == o {
			return true
		}
	}
	return false
}

// detach removes o from its parent's children.
func (o *Object) detach() {
	if o.parent == nil {
		return
	}
	kids := o.parent.children
	for i, c := range kids {
		if c == o {
			o.parent.children = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	o.parent = nil
}
