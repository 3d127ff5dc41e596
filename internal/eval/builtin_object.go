package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

func (e *Engine) evalObjectArg(op string, v value.Value, sc *Scope) (*world.Object, *Result, error) {
	res, err := e.Eval(v, sc)
	if err != nil {
		return nil, nil, err
	}
	if res.Return {
		return nil, &res, nil
	}
	name, ok := value.SymbolName(res.Value)
	if !ok {
		return nil, nil, newError(ErrBadOperands, "%s: expected an object name, got %s", op, res.Value.String())
	}
	obj, err := e.world.Object(name)
	if err != nil {
		return nil, nil, err
	}
	return obj, nil, nil
}

// opMove reparents an object. Moving an object into itself or into
// one of its descendants is rejected.
func opMove(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "MOVE takes an object and a destination, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("MOVE", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	dest, ret, err := e.evalObjectArg("MOVE", args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if err := e.world.Move(obj.Name, dest.Name); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opRemove detaches an object so it has no location.
func opRemove(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "REMOVE takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("REMOVE", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if err := e.world.Remove(obj.Name); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opLoc yields the containing object's name, or false at the root.
func opLoc(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "LOC takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("LOC", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	parent := obj.Parent()
	if parent == nil {
		return Normal(value.False{}), nil
	}
	return Normal(value.Atom{Name: parent.Name}), nil
}

// opIn tests direct containment, not transitive.
func opIn(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "IN? takes an object and a container, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("IN?", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	container, ret, err := e.evalObjectArg("IN?", args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(boolValue(obj.Parent() == container)), nil
}

func opFirst(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "FIRST? takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("FIRST?", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	first := obj.First()
	if first == nil {
		return Normal(value.False{}), nil
	}
	return Normal(value.Atom{Name: first.Name}), nil
}

func opNext(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "NEXT? takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("NEXT?", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	next := obj.NextSibling()
	if next == nil {
		return Normal(value.False{}), nil
	}
	return Normal(value.Atom{Name: next.Name}), nil
}

// opGetP reads a property; a property the object never had is false,
// never an error.
func opGetP(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "GETP takes an object and a property, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("GETP", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	prop, ret, err := e.evalSymbolArg("GETP", args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(obj.Prop(prop)), nil
}

func opPutP(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 3 {
		return Result{}, newError(ErrBadOperands, "PUTP takes an object, a property and a value, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("PUTP", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	prop, ret, err := e.evalSymbolArg("PUTP", args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	res, err := e.Eval(args[2], sc)
	if err != nil {
		return Result{}, err
	}
	if res.Return {
		return res, nil
	}
	obj.SetProp(prop, res.Value)
	return Normal(res.Value), nil
}

func opFSet(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	obj, flag, ret, err := e.evalFlagArgs("FSET", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	obj.SetFlag(flag)
	return Normal(value.True()), nil
}

func opFClear(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	obj, flag, ret, err := e.evalFlagArgs("FCLEAR", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	obj.ClearFlag(flag)
	return Normal(value.True()), nil
}

func opFSetP(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	obj, flag, ret, err := e.evalFlagArgs("FSET?", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(boolValue(obj.Flag(flag))), nil
}

func (e *Engine) evalFlagArgs(op string, args []value.Value, sc *Scope) (*world.Object, string, *Result, error) {
	if len(args) != 2 {
		return nil, "", nil, newError(ErrBadOperands, "%s takes an object and a flag, got %d operands", op, len(args))
	}
	obj, ret, err := e.evalObjectArg(op, args[0], sc)
	if err != nil || ret != nil {
		return nil, "", ret, err
	}
	flag, ret, err := e.evalSymbolArg(op, args[1], sc)
	if err != nil || ret != nil {
		return nil, "", ret, err
	}
	return obj, flag, nil, nil
}

func (e *Engine) evalSymbolArg(op string, v value.Value, sc *Scope) (string, *Result, error) {
	res, err := e.Eval(v, sc)
	if err != nil {
		return "", nil, err
	}
	if res.Return {
		return "", &res, nil
	}
	name, err := asSymbol(op, res.Value)
	if err != nil {
		return "", nil, err
	}
	return name, nil, nil
}
