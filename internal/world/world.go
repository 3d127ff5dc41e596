package world

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// The three parser-state globals an external command parser sets
// before invoking a routine: current action, direct object, indirect
// object.
const (
	ActionGlobal   = "PRSA"
	DirectGlobal   = "PRSO"
	IndirectGlobal = "PRSI"
)

// World owns the object registry, the global variable table, and the
// named memory tables. It is mutated in place by the single evaluation
// thread; correctness depends on ordering, not locking.
type World struct {
	objects map[string]*Object
	globals map[string]value.Value
	tables  map[string]*Table
}

// New creates an empty world with the parser-state globals seeded to
// false.
func New() *World {
	w := &World{
		objects: make(map[string]*Object),
		globals: make(map[string]value.Value),
		tables:  make(map[string]*Table),
	}
	w.SetGlobal(ActionGlobal, value.False{})
	w.SetGlobal(DirectGlobal, value.False{})
	w.SetGlobal(IndirectGlobal, value.False{})
	return w
}

// RegisterObject adds an object to the registry. Redefinition replaces
// the prior object.
func (w *World) RegisterObject(o *Object) {
	w.objects[o.Name] = o
}

// Object looks up an object by name.
func (w *World) Object(name string) (*Object, error) {
	if o, ok := w.objects[value.Canon(name)]; ok {
		return o, nil
	}
	return nil, newError(ErrUnknownObject, "unknown object: %s", name)
}

// HasObject reports whether the named object exists.
func (w *World) HasObject(name string) bool {
	_, ok := w.objects[value.Canon(name)]
	return ok
}

// Move places o inside dest, maintaining bidirectional consistency. A
// move that would make an object its own ancestor is rejected.
func (w *World) Move(objName, destName string) error {
	o, err := w.Object(objName)
	if err != nil {
		return err
	}
	dest, err := w.Object(destName)
	if err != nil {
		return err
	}
	if o == dest || o.isAncestorOf(dest) {
		return newError(ErrCyclicMove, "moving %s into %s would create a containment cycle", o.Name, dest.Name)
	}
	o.detach()
	o.parent = dest
	dest.children = append(dest.children, o)
	return nil
}

// Remove detaches o from its parent, leaving it in the void.
func (w *World) Remove(objName string) error {
	o, err := w.Object(objName)
	if err != nil {
		return err
	}
	o.detach()
	return nil
}

// Global reads a global variable, yielding False when absent. Globals
// have no unbound error.
func (w *World) Global(name string) value.Value {
	if v, ok := w.globals[value.Canon(name)]; ok {
		return v
	}
	return value.False{}
}

// HasGlobal reports whether the named global has ever been written.
func (w *World) HasGlobal(name string) bool {
	_, ok := w.globals[value.Canon(name)]
	return ok
}

// SetGlobal writes a global variable.
func (w *World) SetGlobal(name string, v value.Value) {
	w.globals[value.Canon(name)] = v
}

// RegisterTable adds a table. Redefinition replaces the prior table.
func (w *World) RegisterTable(t *Table) {
	w.tables[value.Canon(t.Name)] = t
}

// Table looks up a table by name.
func (w *World) Table(name string) (*Table, error) {
	if t, ok := w.tables[value.Canon(name)]; ok {
		return t, nil
	}
	return nil, newError(ErrUnknownTable, "unknown table: %s", name)
}
