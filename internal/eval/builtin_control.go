package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// opCond evaluates clause conditions in order and runs only the
// matching clause's consequents. Each clause is a list whose first
// item is the condition; a clause with no consequents yields its
// condition's value. No matching clause yields false.
func opCond(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	for _, clause := range args {
		cl, ok := clause.(value.List)
		if !ok || len(cl.Items) == 0 {
			return Result{}, newError(ErrBadOperands, "COND: clause must be a non-empty list, got %s", clause.String())
		}
		cond, err := e.Eval(cl.Items[0], sc)
		if err != nil {
			return Result{}, err
		}
		if cond.Return {
			return cond, nil
		}
		if !cond.Value.Truthy() {
			continue
		}
		last := cond
		for _, body := range cl.Items[1:] {
			last, err = e.Eval(body, sc)
			if err != nil {
				return Result{}, err
			}
			if last.Return {
				return last, nil
			}
		}
		return last, nil
	}
	return Normal(value.False{}), nil
}

// opAnd evaluates operands one at a time and stops at the first falsy
// result, never evaluating the rest. Empty AND is true.
func opAnd(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	var last value.Value = value.True()
	for _, a := range args {
		res, err := e.Eval(a, sc)
		if err != nil {
			return Result{}, err
		}
		if res.Return {
			return res, nil
		}
		if !res.Value.Truthy() {
			return Normal(res.Value), nil
		}
		last = res.Value
	}
	return Normal(last), nil
}

// opOr stops at the first truthy result. Empty OR is false.
func opOr(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	for _, a := range args {
		res, err := e.Eval(a, sc)
		if err != nil {
			return Result{}, err
		}
		if res.Return {
			return res, nil
		}
		if res.Value.Truthy() {
			return Normal(res.Value), nil
		}
	}
	return Normal(value.False{}), nil
}

func opNot(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) != 1 {
		return Result{}, newError(ErrBadOperands, "NOT takes one operand, got %d", len(vals))
	}
	return Normal(boolValue(!vals[0].Truthy())), nil
}

// opProg runs a body sequentially inside the current scope. The first
// argument is the binding list: bare atoms bind fresh locals to false,
// (name init) pairs bind to the evaluated init. The block's value is
// its last form's value.
func opProg(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) == 0 {
		return Normal(value.False{}), nil
	}
	bindings, ok := args[0].(value.List)
	if !ok {
		return Result{}, newError(ErrBadOperands, "PROG: first argument must be a binding list, got %s", args[0].String())
	}
	for _, b := range bindings.Items {
		switch bv := b.(type) {
		case value.Atom:
			sc.Set(bv.Name, value.False{})
		case value.List:
			if len(bv.Items) != 2 {
				return Result{}, newError(ErrBadOperands, "PROG: binding pair must be (name init), got %s", bv.String())
			}
			name, err := asSymbol("PROG", bv.Items[0])
			if err != nil {
				return Result{}, err
			}
			init, err := e.Eval(bv.Items[1], sc)
			if err != nil {
				return Result{}, err
			}
			if init.Return {
				return init, nil
			}
			sc.Set(name, init.Value)
		default:
			return Result{}, newError(ErrBadOperands, "PROG: bad binding %s", b.String())
		}
	}
	last := Normal(value.False{})
	for _, form := range args[1:] {
		res, err := e.Eval(form, sc)
		if err != nil {
			return Result{}, err
		}
		if res.Return {
			return res, nil
		}
		last = res
	}
	return last, nil
}

// opReturn signals a non-local exit carrying its operand, or true
// when bare. The signal unwinds through every enclosing form until
// the nearest routine-call frame.
func opReturn(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) == 0 {
		return Returning(value.True()), nil
	}
	res, err := e.Eval(args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if res.Return {
		return res, nil
	}
	return Returning(res.Value), nil
}

func opRTrue(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	return Returning(value.True()), nil
}

func opRFalse(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	return Returning(value.False{}), nil
}

// opSet assigns a routine-local variable in the current scope.
func opSet(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "SET takes a name and a value, got %d operands", len(args))
	}
	name, err := asSymbol("SET", args[0])
	if err != nil {
		return Result{}, err
	}
	res, err := e.Eval(args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if res.Return {
		return res, nil
	}
	sc.Set(name, res.Value)
	return Normal(res.Value), nil
}

// opSetG assigns a global, regardless of local scope nesting.
func opSetG(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "SETG takes a name and a value, got %d operands", len(args))
	}
	name, err := asSymbol("SETG", args[0])
	if err != nil {
		return Result{}, err
	}
	res, err := e.Eval(args[1], sc)
	if err != nil {
		return Result{}, err
	}
	if res.Return {
		return res, nil
	}
	e.world.SetGlobal(name, res.Value)
	return Normal(res.Value), nil
}

// opEqual is true when the first operand equals any of the rest.
func opEqual(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) < 2 {
		return Result{}, newError(ErrBadOperands, "EQUAL? takes at least two operands, got %d", len(vals))
	}
	for _, v := range vals[1:] {
		if value.Equal(vals[0], v) {
			return Normal(value.True()), nil
		}
	}
	return Normal(value.False{}), nil
}

// opZero is true for the number zero and for false.
func opZero(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) != 1 {
		return Result{}, newError(ErrBadOperands, "ZERO? takes one operand, got %d", len(vals))
	}
	if n, ok := vals[0].(value.Number); ok {
		return Normal(boolValue(n.Value == 0)), nil
	}
	return Normal(boolValue(!vals[0].Truthy())), nil
}
