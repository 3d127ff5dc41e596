package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

func (e *Engine) evalTableArg(op string, v value.Value, sc *Scope) (*world.Table, *Result, error) {
	res, err := e.Eval(v, sc)
	if err != nil {
		return nil, nil, err
	}
	if res.Return {
		return nil, &res, nil
	}
	name, ok := value.SymbolName(res.Value)
	if !ok {
		return nil, nil, newError(ErrBadOperands, "%s: expected a table name, got %s", op, res.Value.String())
	}
	tbl, err := e.world.Table(name)
	if err != nil {
		return nil, nil, err
	}
	return tbl, nil, nil
}

func (e *Engine) evalTableIndex(op string, args []value.Value, sc *Scope, want int) (*world.Table, []int, *Result, error) {
	if len(args) != want {
		return nil, nil, nil, newError(ErrBadOperands, "%s takes %d operands, got %d", op, want, len(args))
	}
	tbl, ret, err := e.evalTableArg(op, args[0], sc)
	if err != nil || ret != nil {
		return nil, nil, ret, err
	}
	nums, ret, err := e.evalNumbers(op, args[1:], sc)
	if err != nil || ret != nil {
		return nil, nil, ret, err
	}
	return tbl, nums, nil, nil
}

// opGetWord reads a 16-bit word at a word index.
func opGetWord(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	tbl, nums, ret, err := e.evalTableIndex("GET", args, sc, 2)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	w, err := tbl.Word(nums[0])
	if err != nil {
		return Result{}, err
	}
	return Normal(value.Number{Value: int(w)}), nil
}

func opPutWord(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	tbl, nums, ret, err := e.evalTableIndex("PUT", args, sc, 3)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if err := tbl.SetWord(nums[0], uint16(nums[1]&wordMask)); err != nil {
		return Result{}, err
	}
	return Normal(value.Number{Value: nums[1] & wordMask}), nil
}

// opGetByte reads one byte at a byte index. Even indexes address the
// high byte of the containing word.
func opGetByte(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	tbl, nums, ret, err := e.evalTableIndex("GETB", args, sc, 2)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	b, err := tbl.Byte(nums[0])
	if err != nil {
		return Result{}, err
	}
	return Normal(value.Number{Value: int(b)}), nil
}

func opPutByte(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	tbl, nums, ret, err := e.evalTableIndex("PUTB", args, sc, 3)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if err := tbl.SetByte(nums[0], uint8(nums[1]&0xFF)); err != nil {
		return Result{}, err
	}
	return Normal(value.Number{Value: nums[1] & 0xFF}), nil
}
