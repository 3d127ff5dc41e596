package macro

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// MaxExpandDepth bounds chained macro replacement. The depth counts
// macro substitutions, not tree depth, so deeply nested ordinary forms
// are unaffected; only self-referential macros hit the guard.
const MaxExpandDepth = 64

// Expand rewrites every macro invocation in v, recursively and
// exhaustively: replacements are themselves expanded, and expansion
// walks every child position, not just the outermost form. A form
// whose operator names no macro is left for ordinary evaluation.
func (r *Registry) Expand(v value.Value) (value.Value, error) {
	return r.expand(v, 0)
}

func (r *Registry) expand(v value.Value, depth int) (value.Value, error) {
	if depth > MaxExpandDepth {
		return nil, newError(ErrDepth, "macro expansion exceeded depth %d", MaxExpandDepth)
	}
	switch t := v.(type) {
	case value.Form:
		op := value.Canon(t.Op)
		if fn, ok := structural[op]; ok {
			out, err := fn(t.Args)
			if err != nil {
				return nil, err
			}
			return r.expand(out, depth+1)
		}
		if def := r.Lookup(op); def != nil {
			bindings, err := bindCall(def, t.Args)
			if err != nil {
				return nil, err
			}
			return r.expand(substitute(def.Body, bindings), depth+1)
		}
		args := make([]value.Value, len(t.Args))
		for i, a := range t.Args {
			ea, err := r.expand(a, depth)
			if err != nil {
				return nil, err
			}
			args[i] = ea
		}
		return value.Form{Op: t.Op, Args: args}, nil
	case value.List:
		items := make([]value.Value, len(t.Items))
		for i, it := range t.Items {
			ei, err := r.expand(it, depth)
			if err != nil {
				return nil, err
			}
			items[i] = ei
		}
		return value.List{Items: items}, nil
	default:
		return v, nil
	}
}

// bindCall binds a macro call's actual arguments to the definition's
// parameters: positional for required and quoted (quoted receive the
// argument as-is), optional defaulting to false, rest collecting the
// remainder into a list, aux always bound fresh to false.
func bindCall(def *Definition, args []value.Value) (map[string]value.Value, error) {
	bindings := make(map[string]value.Value, len(def.Params))
	pos := 0
	for _, p := range def.Params {
		switch p.Mode {
		case Required, Quoted:
			if pos >= len(args) {
				return nil, newError(ErrArity, "macro %s: missing argument for %s", def.Name, p.Name)
			}
			bindings[p.Name] = args[pos]
			pos++
		case Optional:
			if pos < len(args) {
				bindings[p.Name] = args[pos]
				pos++
			} else {
				bindings[p.Name] = value.False{}
			}
		case Rest:
			rest := make([]value.Value, len(args)-pos)
			copy(rest, args[pos:])
			pos = len(args)
			bindings[p.Name] = value.List{Items: rest}
		case Aux:
			bindings[p.Name] = value.False{}
		}
	}
	return bindings, nil
}

// substitute replaces parameter references in the template with their
// bound arguments. Both bare atoms and local refs name parameters
// inside a template.
func substitute(template value.Value, bindings map[string]value.Value) value.Value {
	switch t := template.(type) {
	case value.Atom:
		if b, ok := bindings[value.Canon(t.Name)]; ok {
			return b
		}
		return t
	case value.LocalRef:
		if b, ok := bindings[value.Canon(t.Name)]; ok {
			return b
		}
		return t
	case value.Form:
		args := make([]value.Value, len(t.Args))
		for i, a := range t.Args {
			args[i] = substitute(a, bindings)
		}
		return value.Form{Op: t.Op, Args: args}
	case value.List:
		items := make([]value.Value, len(t.Items))
		for i, it := range t.Items {
			items[i] = substitute(it, bindings)
		}
		return value.List{Items: items}
	default:
		return template
	}
}
