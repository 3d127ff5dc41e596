package eval

import (
	"errors"
	"fmt"

	"github.com/keithmackay/zork1-sub000/internal/macro"
	"github.com/keithmackay/zork1-sub000/internal/value"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

// LoadForms processes a program's top-level forms in order. ROUTINE,
// DEFMAC, GLOBAL, OBJECT, and TABLE forms define things; anything
// else is expanded and evaluated for effect. A bad definition is
// logged and skipped so the rest of the file still loads; the
// collected errors come back joined.
func (e *Engine) LoadForms(forms []value.Value) error {
	var errs []error
	var moves [][2]string
	for _, v := range forms {
		f, ok := v.(value.Form)
		if !ok {
			if _, err := e.Run(v); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		var err error
		switch value.Canon(f.Op) {
		case "ROUTINE":
			err = e.loadRoutine(f)
		case "DEFMAC":
			err = e.loadMacro(f)
		case "GLOBAL":
			err = e.loadGlobal(f)
		case "OBJECT":
			var in string
			in, err = e.loadObject(f)
			if err == nil && in != "" {
				moves = append(moves, [2]string{formName(f), in})
			}
		case "TABLE":
			err = e.loadTable(f)
		default:
			_, err = e.Run(v)
		}
		if err != nil {
			e.log.Warn("skipping definition", "form", f.Op, "err", err)
			errs = append(errs, err)
		}
	}
	// IN clauses may name objects defined later in the file, so the
	// moves wait until every object exists.
	for _, mv := range moves {
		if err := e.world.Move(mv[0], mv[1]); err != nil {
			e.log.Warn("initial placement failed", "object", mv[0], "in", mv[1], "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func formName(f value.Form) string {
	if len(f.Args) == 0 {
		return ""
	}
	name, _ := value.SymbolName(f.Args[0])
	return name
}

func (e *Engine) loadRoutine(f value.Form) error {
	if len(f.Args) < 2 {
		return newError(ErrBadOperands, "ROUTINE needs a name and a parameter list")
	}
	name, ok := value.SymbolName(f.Args[0])
	if !ok {
		return newError(ErrBadOperands, "ROUTINE: bad name %s", f.Args[0].String())
	}
	plist, ok := f.Args[1].(value.List)
	if !ok {
		return newError(ErrBadOperands, "ROUTINE %s: parameter list must be a list", name)
	}
	params := make([]string, 0, len(plist.Items))
	for _, p := range plist.Items {
		pname, ok := value.SymbolName(p)
		if !ok {
			return newError(ErrBadOperands, "ROUTINE %s: bad parameter %s", name, p.String())
		}
		params = append(params, value.Canon(pname))
	}
	// Routine bodies are expanded once at load so every later call
	// runs pure primitives.
	body := make([]value.Value, 0, len(f.Args)-2)
	for _, b := range f.Args[2:] {
		expanded, err := e.macros.Expand(b)
		if err != nil {
			return fmt.Errorf("ROUTINE %s: %w", name, err)
		}
		body = append(body, expanded)
	}
	e.RegisterRoutine(&Routine{Name: value.Canon(name), Params: params, Body: body})
	return nil
}

func (e *Engine) loadMacro(f value.Form) error {
	if len(f.Args) < 3 {
		return newError(ErrBadOperands, "DEFMAC needs a name, a parameter list, and a body")
	}
	name, ok := value.SymbolName(f.Args[0])
	if !ok {
		return newError(ErrBadOperands, "DEFMAC: bad name %s", f.Args[0].String())
	}
	plist, ok := f.Args[1].(value.List)
	if !ok {
		return newError(ErrBadOperands, "DEFMAC %s: parameter list must be a list", name)
	}
	params, err := macro.ParseParams(plist)
	if err != nil {
		return fmt.Errorf("DEFMAC %s: %w", name, err)
	}
	body := f.Args[2]
	if len(f.Args) > 3 {
		progArgs := append([]value.Value{value.List{}}, f.Args[2:]...)
		body = value.Form{Op: "PROG", Args: progArgs}
	}
	return e.macros.Define(&macro.Definition{Name: value.Canon(name), Params: params, Body: body})
}

func (e *Engine) loadGlobal(f value.Form) error {
	if len(f.Args) != 2 {
		return newError(ErrBadOperands, "GLOBAL needs a name and an initial value")
	}
	name, ok := value.SymbolName(f.Args[0])
	if !ok {
		return newError(ErrBadOperands, "GLOBAL: bad name %s", f.Args[0].String())
	}
	init, err := e.Run(f.Args[1])
	if err != nil {
		return fmt.Errorf("GLOBAL %s: %w", name, err)
	}
	e.world.SetGlobal(name, init)
	return nil
}

// loadObject registers an object from its clause list and returns the
// name of its IN container, if any, for deferred placement.
func (e *Engine) loadObject(f value.Form) (string, error) {
	if len(f.Args) < 1 {
		return "", newError(ErrBadOperands, "OBJECT needs a name")
	}
	name, ok := value.SymbolName(f.Args[0])
	if !ok {
		return "", newError(ErrBadOperands, "OBJECT: bad name %s", f.Args[0].String())
	}
	obj := world.NewObject(name)
	in := ""
	for _, clause := range f.Args[1:] {
		cl, ok := clause.(value.List)
		if !ok || len(cl.Items) == 0 {
			return "", newError(ErrBadOperands, "OBJECT %s: bad clause %s", name, clause.String())
		}
		head, ok := value.SymbolName(cl.Items[0])
		if !ok {
			return "", newError(ErrBadOperands, "OBJECT %s: bad clause head %s", name, cl.Items[0].String())
		}
		switch value.Canon(head) {
		case "IN":
			if len(cl.Items) != 2 {
				return "", newError(ErrBadOperands, "OBJECT %s: IN takes one container", name)
			}
			in, ok = value.SymbolName(cl.Items[1])
			if !ok {
				return "", newError(ErrBadOperands, "OBJECT %s: bad container %s", name, cl.Items[1].String())
			}
		case "FLAGS":
			for _, fl := range cl.Items[1:] {
				fname, ok := value.SymbolName(fl)
				if !ok {
					return "", newError(ErrBadOperands, "OBJECT %s: bad flag %s", name, fl.String())
				}
				obj.SetFlag(fname)
			}
		default:
			if len(cl.Items) != 2 {
				return "", newError(ErrBadOperands, "OBJECT %s: property %s takes one value", name, head)
			}
			obj.SetProp(head, cl.Items[1])
		}
	}
	e.world.RegisterObject(obj)
	// Object names double as global constants so ,NAME references
	// resolve in form position.
	e.world.SetGlobal(obj.Name, value.Atom{Name: obj.Name})
	return in, nil
}

func (e *Engine) loadTable(f value.Form) error {
	if len(f.Args) < 1 {
		return newError(ErrBadOperands, "TABLE needs a name")
	}
	name, ok := value.SymbolName(f.Args[0])
	if !ok {
		return newError(ErrBadOperands, "TABLE: bad name %s", f.Args[0].String())
	}
	words := make([]uint16, 0, len(f.Args)-1)
	for _, v := range f.Args[1:] {
		n, ok := v.(value.Number)
		if !ok {
			return newError(ErrBadOperands, "TABLE %s: entries must be numbers, got %s", name, v.String())
		}
		words = append(words, uint16(n.Value&wordMask))
	}
	tbl := world.NewTable(name, words)
	e.world.RegisterTable(tbl)
	e.world.SetGlobal(tbl.Name, value.Atom{Name: tbl.Name})
	return nil
}
