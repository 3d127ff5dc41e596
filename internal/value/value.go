// Package value defines the tagged value and form types the engine
// expands and evaluates. Forms are immutable trees: macro expansion
// builds new trees and never rewrites one in place.
package value

import (
	"strconv"
	"strings"
)

// Value is the interface all value types implement.
type Value interface {
	// String returns the source-like representation of the value.
	String() string
	// Truthy reports whether the value counts as true. Only False is
	// falsy; the number zero is a true value (the language tests for
	// zero explicitly with ZERO?).
	Truthy() bool
}

// False is the canonical false/empty value, written <> in source.
type False struct{}

func (False) String() string { return "<>" }
func (False) Truthy() bool   { return false }

// Number is a signed integer literal. Word-width wrapping is applied by
// the arithmetic and bitwise operations, not by the representation.
type Number struct {
	Value int
}

func (n Number) String() string { return strconv.Itoa(n.Value) }
func (n Number) Truthy() bool   { return true }

// Text is a literal string.
type Text struct {
	Value string
}

func (t Text) String() string { return strconv.Quote(t.Value) }
func (t Text) Truthy() bool   { return true }

// Atom is a bare identifier. Depending on position it may name an
// operator, a routine, a macro, an object, or a flag.
type Atom struct {
	Name string
}

func (a Atom) String() string { return a.Name }
func (a Atom) Truthy() bool   { return true }

// QuotedAtom is a literal identifier ('NAME), never looked up.
type QuotedAtom struct {
	Name string
}

func (q QuotedAtom) String() string { return "'" + q.Name }
func (q QuotedAtom) Truthy() bool   { return true }

// LocalRef reads a routine-local variable (.NAME).
type LocalRef struct {
	Name string
}

func (l LocalRef) String() string { return "." + l.Name }
func (l LocalRef) Truthy() bool   { return true }

// GlobalRef reads a global variable (,NAME).
type GlobalRef struct {
	Name string
}

func (g GlobalRef) String() string { return "," + g.Name }
func (g GlobalRef) Truthy() bool   { return true }

// List is an ordered literal sequence, written (a b c).
type List struct {
	Items []Value
}

func (l List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}
func (l List) Truthy() bool { return true }

// Form is an operator applied to ordered arguments, written <OP a b>.
type Form struct {
	Op   string
	Args []Value
}

func (f Form) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(f.Op)
	for _, a := range f.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}
func (f Form) Truthy() bool { return true }

// True returns the canonical true value.
func True() Value { return Number{Value: 1} }

// Canon returns the canonical (uppercase) spelling of an identifier.
// The language is case-insensitive for every kind of name.
func Canon(name string) string { return strings.ToUpper(name) }

// SymbolName returns the identifier a value denotes, for values that
// denote one (atoms, quoted atoms, refs). The second result is false
// for any other value.
func SymbolName(v Value) (string, bool) {
	switch s := v.(type) {
	case Atom:
		return Canon(s.Name), true
	case QuotedAtom:
		return Canon(s.Name), true
	case LocalRef:
		return Canon(s.Name), true
	case GlobalRef:
		return Canon(s.Name), true
	}
	return "", false
}

// Equal reports whether two values are equal under the language's
// equality test. Numbers compare by value, text by contents, atoms and
// quoted atoms by canonical name (quoting does not distinguish them),
// False only to False. Forms and lists compare structurally.
func Equal(a, b Value) bool {
	if an, ok := SymbolName(a); ok {
		bn, bok := SymbolName(b)
		return bok && an == bn
	}
	switch av := a.(type) {
	case False:
		_, ok := b.(False)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Text:
		bv, ok := b.(Text)
		return ok && av.Value == bv.Value
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Form:
		bv, ok := b.(Form)
		if !ok || Canon(av.Op) != Canon(bv.Op) || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}
