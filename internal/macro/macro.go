// Package macro implements the syntactic macro registry and expander.
// Expansion happens before evaluation: forms naming a macro are
// rewritten into primitive forms, recursively and exhaustively, with a
// depth guard against self-referential definitions.
package macro

import (
	"fmt"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

// ParamMode is the binding mode of a macro parameter.
type ParamMode int

const (
	// Required parameters bind positionally and must be supplied.
	Required ParamMode = iota
	// Quoted parameters receive the unevaluated, unexpanded argument.
	Quoted
	// Optional parameters bind positionally and default to false.
	Optional
	// Rest captures all remaining arguments as one list.
	Rest
	// Aux parameters are never bound from the call site; they are
	// fresh locals inside the template, initialized to false.
	Aux
)

// Param is one macro parameter.
type Param struct {
	Name string
	Mode ParamMode
}

// Definition is a user-defined macro: a name, ordered parameters, and
// a body template.
type Definition struct {
	Name   string
	Params []Param
	Body   value.Value
}

// ErrorKind classifies macro failures.
type ErrorKind string

const (
	ErrArity     ErrorKind = "MACRO_ARITY"
	ErrDepth     ErrorKind = "MACRO_EXPANSION_DEPTH"
	ErrBadParams ErrorKind = "MACRO_BAD_PARAMS"
)

// Error is a macro failure with its kind attached.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Registry holds macro definitions. Macro names live in their own
// namespace, separate from routines, and are case-insensitive;
// redefinition replaces the prior definition.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Define registers a macro after validating its parameter list:
// binding modes are monotonic, so no required or quoted parameter may
// follow an optional or rest parameter, and at most one rest parameter
// is allowed. A malformed definition is rejected without touching the
// registry.
func (r *Registry) Define(def *Definition) error {
	stage := Required
	rests := 0
	for _, p := range def.Params {
		mode := p.Mode
		if mode == Quoted {
			mode = Required
		}
		if mode < stage {
			return newError(ErrBadParams, "macro %s: %s parameter %q after %s parameters", def.Name, modeName(p.Mode), p.Name, modeName(stage))
		}
		stage = mode
		if p.Mode == Rest {
			rests++
			if rests > 1 {
				return newError(ErrBadParams, "macro %s: more than one rest parameter", def.Name)
			}
		}
	}
	r.defs[value.Canon(def.Name)] = def
	return nil
}

// Lookup returns the named definition, or nil.
func (r *Registry) Lookup(name string) *Definition {
	return r.defs[value.Canon(name)]
}

func modeName(m ParamMode) string {
	switch m {
	case Required:
		return "required"
	case Quoted:
		return "quoted"
	case Optional:
		return "optional"
	case Rest:
		return "rest"
	case Aux:
		return "aux"
	}
	return "unknown"
}

// ParseParams translates a source parameter list into parameter
// specs. Bare atoms are required, quoted atoms receive their argument
// unexpanded, and the marker strings "OPT" (or "OPTIONAL"), "AUX", and
// "TUPLE" switch the mode for the parameters that follow.
func ParseParams(list value.List) ([]Param, error) {
	mode := Required
	var params []Param
	for _, item := range list.Items {
		switch it := item.(type) {
		case value.Text:
			switch value.Canon(it.Value) {
			case "OPT", "OPTIONAL":
				mode = Optional
			case "AUX", "EXTRA":
				mode = Aux
			case "TUPLE", "ARGS":
				mode = Rest
			default:
				return nil, newError(ErrBadParams, "unknown parameter marker %q", it.Value)
			}
		case value.Atom:
			params = append(params, Param{Name: value.Canon(it.Name), Mode: mode})
		case value.QuotedAtom:
			if mode != Required {
				return nil, newError(ErrBadParams, "quoted parameter %q in %s section", it.Name, modeName(mode))
			}
			params = append(params, Param{Name: value.Canon(it.Name), Mode: Quoted})
		default:
			return nil, newError(ErrBadParams, "bad parameter entry %s", item.String())
		}
	}
	return params, nil
}
