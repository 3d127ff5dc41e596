package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// Arithmetic works in 16-bit words the way the original machine did:
// every result is masked to the low sixteen bits.
const wordMask = 0xFFFF

func wrap(n int) value.Number {
	return value.Number{Value: n & wordMask}
}

func (e *Engine) evalNumbers(op string, args []value.Value, sc *Scope) ([]int, *Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return nil, nil, err
	}
	if ret != nil {
		return nil, ret, nil
	}
	nums := make([]int, len(vals))
	for i, v := range vals {
		n, err := asNumber(op, v)
		if err != nil {
			return nil, nil, err
		}
		nums[i] = n
	}
	return nums, nil, nil
}

func opAdd(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("+", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	sum := 0
	for _, n := range nums {
		sum += n
	}
	return Normal(wrap(sum)), nil
}

func opSub(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("-", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	switch len(nums) {
	case 0:
		return Normal(value.Number{Value: 0}), nil
	case 1:
		return Normal(wrap(-nums[0])), nil
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc -= n
	}
	return Normal(wrap(acc)), nil
}

func opMul(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("*", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	product := 1
	for _, n := range nums {
		product *= n
	}
	return Normal(wrap(product)), nil
}

func opDiv(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("/", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) < 2 {
		return Result{}, newError(ErrBadOperands, "/ takes at least two operands, got %d", len(nums))
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return Result{}, newError(ErrDivisionByZero, "division by zero")
		}
		acc /= n
	}
	return Normal(wrap(acc)), nil
}

func opMod(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("MOD", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 2 {
		return Result{}, newError(ErrBadOperands, "MOD takes two operands, got %d", len(nums))
	}
	if nums[1] == 0 {
		return Result{}, newError(ErrDivisionByZero, "division by zero")
	}
	return Normal(wrap(nums[0] % nums[1])), nil
}

// opRandom yields a number between 1 and n inclusive, drawn from the
// engine's seeded source so runs replay deterministically.
func opRandom(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("RANDOM", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 1 {
		return Result{}, newError(ErrBadOperands, "RANDOM takes one operand, got %d", len(nums))
	}
	if nums[0] < 1 {
		return Result{}, newError(ErrBadOperands, "RANDOM: bound must be positive, got %d", nums[0])
	}
	return Normal(value.Number{Value: 1 + e.rng.Intn(nums[0])}), nil
}

func opLess(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("LESS?", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 2 {
		return Result{}, newError(ErrBadOperands, "LESS? takes two operands, got %d", len(nums))
	}
	return Normal(boolValue(nums[0] < nums[1])), nil
}

func opGrtr(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("GRTR?", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 2 {
		return Result{}, newError(ErrBadOperands, "GRTR? takes two operands, got %d", len(nums))
	}
	return Normal(boolValue(nums[0] > nums[1])), nil
}

// stepGlobal applies delta to the named numeric global exactly once
// and returns the new value.
func (e *Engine) stepGlobal(op, name string, delta int) (int, error) {
	if !e.world.HasGlobal(name) {
		return 0, newError(ErrUnknownGlobalTarget, "%s: no global named %s", op, value.Canon(name))
	}
	cur, ok := e.world.Global(name).(value.Number)
	if !ok {
		return 0, newError(ErrBadOperands, "%s: global %s is not a number", op, value.Canon(name))
	}
	next := (cur.Value + delta) & wordMask
	e.world.SetGlobal(name, value.Number{Value: next})
	return next, nil
}

// opDLess decrements a global and tests the new value against the
// bound. <DLESS? CNT 5> with CNT=5 leaves 4 and is true; run again it
// leaves 3 and is false.
func opDLess(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "DLESS? takes a global name and a bound, got %d operands", len(args))
	}
	name, err := asSymbol("DLESS?", args[0])
	if err != nil {
		return Result{}, err
	}
	bound, ret, err := e.evalNumbers("DLESS?", args[1:], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	next, err := e.stepGlobal("DLESS?", name, -1)
	if err != nil {
		return Result{}, err
	}
	return Normal(boolValue(next < bound[0])), nil
}

// opIGrtr increments a global and tests the new value against the bound.
func opIGrtr(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 2 {
		return Result{}, newError(ErrBadOperands, "IGRTR? takes a global name and a bound, got %d operands", len(args))
	}
	name, err := asSymbol("IGRTR?", args[0])
	if err != nil {
		return Result{}, err
	}
	bound, ret, err := e.evalNumbers("IGRTR?", args[1:], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	next, err := e.stepGlobal("IGRTR?", name, 1)
	if err != nil {
		return Result{}, err
	}
	return Normal(boolValue(next > bound[0])), nil
}

func opBAnd(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("BAND", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	acc := wordMask
	for _, n := range nums {
		acc &= n
	}
	return Normal(wrap(acc)), nil
}

func opBOr(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("BOR", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	acc := 0
	for _, n := range nums {
		acc |= n
	}
	return Normal(wrap(acc)), nil
}

func opBCom(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("BCOM", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 1 {
		return Result{}, newError(ErrBadOperands, "BCOM takes one operand, got %d", len(nums))
	}
	return Normal(wrap(^nums[0])), nil
}

// opBTst is true when every bit of the mask is set in the value.
func opBTst(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	nums, ret, err := e.evalNumbers("BTST", args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(nums) != 2 {
		return Result{}, newError(ErrBadOperands, "BTST takes two operands, got %d", len(nums))
	}
	return Normal(boolValue(nums[0]&nums[1] == nums[1])), nil
}
