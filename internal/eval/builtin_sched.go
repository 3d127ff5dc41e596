package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// opQueue registers an interrupt. With two operands the interrupt is
// named after its routine; with three the first operand names the
// interrupt and the second the routine. The last operand is the turn
// count.
func opQueue(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 && len(args) != 3 {
		return Result{}, newError(ErrBadOperands, "QUEUE takes a routine and a turn count, got %d operands", len(args))
	}
	name, ret, err := e.evalSymbolArg("QUEUE", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	routine := name
	countArg := args[1]
	if len(args) == 3 {
		routine, ret, err = e.evalSymbolArg("QUEUE", args[1], sc)
		if err != nil {
			return Result{}, err
		}
		if ret != nil {
			return *ret, nil
		}
		countArg = args[2]
	}
	if e.Routine(routine) == nil {
		return Result{}, newError(ErrUnknownRoutine, "QUEUE: no routine named %s", value.Canon(routine))
	}
	nums, ret, err := e.evalNumbers("QUEUE", []value.Value{countArg}, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if nums[0] < 1 {
		return Result{}, newError(ErrBadOperands, "QUEUE: turn count must be positive, got %d", nums[0])
	}
	e.sched.Queue(name, routine, nums[0])
	return Normal(value.True()), nil
}

func opEnable(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	name, ret, err := e.evalInterruptArg("ENABLE", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(boolValue(e.sched.Enable(name))), nil
}

func opDisable(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	name, ret, err := e.evalInterruptArg("DISABLE", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(boolValue(e.sched.Disable(name))), nil
}

func opDequeue(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	name, ret, err := e.evalInterruptArg("DEQUEUE", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	return Normal(boolValue(e.sched.Dequeue(name))), nil
}

func (e *Engine) evalInterruptArg(op string, args []value.Value, sc *Scope) (string, *Result, error) {
	if len(args) != 1 {
		return "", nil, newError(ErrBadOperands, "%s takes one interrupt name, got %d operands", op, len(args))
	}
	return e.evalSymbolArg(op, args[0], sc)
}
