package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// Scope is the local variable frame of one routine invocation. Scopes
// are flat: nested routine calls never see each other's locals, and
// there are no closures. Names are case-insensitive.
type Scope struct {
	vars map[string]value.Value
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]value.Value)}
}

// Get reads a local variable.
func (s *Scope) Get(name string) (value.Value, bool) {
	v, ok := s.vars[value.Canon(name)]
	return v, ok
}

// Set writes a local variable in this scope, creating it if needed.
func (s *Scope) Set(name string, v value.Value) {
	s.vars[value.Canon(name)] = v
}

// Has reports whether the local exists.
func (s *Scope) Has(name string) bool {
	_, ok := s.vars[value.Canon(name)]
	return ok
}
