package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

func (e *Engine) emit(s string) error {
	_, err := fmt.Fprint(e.out, s)
	return err
}

// render turns a value into its printed text. Strings print their
// contents without quotes, numbers their digits, symbols their
// canonical name, and false prints as nothing.
func render(v value.Value) string {
	switch tv := v.(type) {
	case value.Text:
		return tv.Value
	case value.Number:
		return strconv.Itoa(tv.Value)
	case value.False:
		return ""
	default:
		if name, ok := value.SymbolName(v); ok {
			return name
		}
		return v.String()
	}
}

func opPrint(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINT takes one operand, got %d", len(vals))
	}
	if err := e.emit(render(vals[0])); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opPrintI prints a literal string without evaluation.
func opPrintI(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINTI takes one operand, got %d", len(args))
	}
	text, ok := args[0].(value.Text)
	if !ok {
		return Result{}, newError(ErrBadOperands, "PRINTI: expected a string, got %s", args[0].String())
	}
	if err := e.emit(text.Value); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opPrintD prints an object's short description, falling back to the
// object's name when it has none.
func opPrintD(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINTD takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("PRINTD", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	desc := obj.Prop("DESC")
	if text, ok := desc.(value.Text); ok {
		err = e.emit(text.Value)
	} else {
		err = e.emit(obj.Name)
	}
	if err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opPrintA prints an object description with its article, "a" or "an"
// by leading vowel unless the object carries an ARTICLE property.
func opPrintA(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if len(args) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINTA takes one object, got %d operands", len(args))
	}
	obj, ret, err := e.evalObjectArg("PRINTA", args[0], sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	desc := obj.Name
	if text, ok := obj.Prop("DESC").(value.Text); ok {
		desc = text.Value
	}
	article := "a"
	if text, ok := obj.Prop("ARTICLE").(value.Text); ok {
		article = text.Value
	} else if desc != "" && strings.ContainsRune("AEIOUaeiou", rune(desc[0])) {
		article = "an"
	}
	if err := e.emit(article + " " + desc); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

func opPrintN(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINTN takes one operand, got %d", len(vals))
	}
	n, err := asNumber("PRINTN", vals[0])
	if err != nil {
		return Result{}, err
	}
	if err := e.emit(strconv.Itoa(n)); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

// opPrintC prints the character for a code point.
func opPrintC(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	vals, ret, err := e.evalArgs(args, sc)
	if err != nil {
		return Result{}, err
	}
	if ret != nil {
		return *ret, nil
	}
	if len(vals) != 1 {
		return Result{}, newError(ErrBadOperands, "PRINTC takes one operand, got %d", len(vals))
	}
	n, err := asNumber("PRINTC", vals[0])
	if err != nil {
		return Result{}, err
	}
	if err := e.emit(string(rune(n))); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}

func opCRLF(e *Engine, args []value.Value, sc *Scope) (Result, error) {
	if err := e.emit("\n"); err != nil {
		return Result{}, err
	}
	return Normal(value.True()), nil
}
