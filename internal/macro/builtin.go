package macro

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// structural holds the built-in macros. They rewrite forms before any
// registry lookup, so a user definition cannot shadow them.
var structural = map[string]func(args []value.Value) (value.Value, error){
	"TELL":      expandTell,
	"FSET-ALL":  expandFSetAll,
	"FSET-ANY?": expandFSetAny,
	"VERB?":     expandVerb,
}

// TELL indicator atoms. Each consumes the next item in the argument
// list as its value.
const (
	indDesc      = "D"
	indNumber    = "N"
	indCharacter = "C"
	indArticle   = "A"
)

func newlineIndicator(name string) bool {
	c := value.Canon(name)
	return c == "CR" || c == "CRLF"
}

// expandTell scans its mixed argument list left to right: strings
// print literally, CR prints a newline, the D/N/C/A indicators consume
// the next item and print it as an object description, number,
// character, or article-prefixed description, any other atom is a
// property name printed off the next item, and any other form prints
// its evaluated result. The primitives are concatenated inside a
// block-scope wrapper with an empty binding list.
func expandTell(args []value.Value) (value.Value, error) {
	body := []value.Value{value.List{}}
	i := 0
	take := func(ind string) (value.Value, error) {
		i++
		if i >= len(args) {
			return nil, newError(ErrArity, "TELL: indicator %s needs a value argument", ind)
		}
		v := args[i]
		i++
		return v, nil
	}
	for i < len(args) {
		switch a := args[i].(type) {
		case value.Text:
			body = append(body, value.Form{Op: "PRINTI", Args: []value.Value{a}})
			i++
		case value.Atom:
			if newlineIndicator(a.Name) {
				body = append(body, value.Form{Op: "CRLF"})
				i++
				break
			}
			switch value.Canon(a.Name) {
			case indDesc:
				v, err := take(a.Name)
				if err != nil {
					return nil, err
				}
				body = append(body, value.Form{Op: "PRINTD", Args: []value.Value{v}})
			case indNumber:
				v, err := take(a.Name)
				if err != nil {
					return nil, err
				}
				body = append(body, value.Form{Op: "PRINTN", Args: []value.Value{v}})
			case indCharacter:
				v, err := take(a.Name)
				if err != nil {
					return nil, err
				}
				body = append(body, value.Form{Op: "PRINTC", Args: []value.Value{v}})
			case indArticle:
				v, err := take(a.Name)
				if err != nil {
					return nil, err
				}
				body = append(body, value.Form{Op: "PRINTA", Args: []value.Value{v}})
			default:
				// Any other atom names a property of the next item.
				v, err := take(a.Name)
				if err != nil {
					return nil, err
				}
				getp := value.Form{Op: "GETP", Args: []value.Value{v, value.Atom{Name: value.Canon(a.Name)}}}
				body = append(body, value.Form{Op: "PRINT", Args: []value.Value{getp}})
			}
		default:
			body = append(body, value.Form{Op: "PRINT", Args: []value.Value{a}})
			i++
		}
	}
	return value.Form{Op: "PROG", Args: body}, nil
}

// expandFSetAll rewrites <FSET-ALL obj f> to a single flag set, and a
// multi-flag call to a sequence of sets inside a block.
func expandFSetAll(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, newError(ErrArity, "FSET-ALL needs an object and at least one flag")
	}
	obj := args[0]
	if len(args) == 2 {
		return value.Form{Op: "FSET", Args: []value.Value{obj, args[1]}}, nil
	}
	body := []value.Value{value.List{}}
	for _, f := range args[1:] {
		body = append(body, value.Form{Op: "FSET", Args: []value.Value{obj, f}})
	}
	return value.Form{Op: "PROG", Args: body}, nil
}

// expandFSetAny rewrites <FSET-ANY? obj f...> to a logical OR of flag
// tests.
func expandFSetAny(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, newError(ErrArity, "FSET-ANY? needs an object and at least one flag")
	}
	obj := args[0]
	if len(args) == 2 {
		return value.Form{Op: "FSET?", Args: []value.Value{obj, args[1]}}, nil
	}
	tests := make([]value.Value, 0, len(args)-1)
	for _, f := range args[1:] {
		tests = append(tests, value.Form{Op: "FSET?", Args: []value.Value{obj, f}})
	}
	return value.Form{Op: "OR", Args: tests}, nil
}

// expandVerb rewrites <VERB? v> to an equality test against the
// parser-state action global, and several verbs to an OR of such
// tests.
func expandVerb(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, newError(ErrArity, "VERB? needs at least one verb")
	}
	test := func(v value.Value) value.Value {
		lit := v
		if a, ok := v.(value.Atom); ok {
			lit = value.QuotedAtom{Name: value.Canon(a.Name)}
		}
		return value.Form{Op: "EQUAL?", Args: []value.Value{
			value.GlobalRef{Name: "PRSA"},
			lit,
		}}
	}
	if len(args) == 1 {
		return test(args[0]), nil
	}
	tests := make([]value.Value, len(args))
	for i, v := range args {
		tests[i] = test(v)
	}
	return value.Form{Op: "OR", Args: tests}, nil
}
