package eval

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// registerDefaultOps installs the primitive operation set. Everything
// here works on already-expanded forms; the macro layer has rewritten
// TELL and friends into these primitives before evaluation.
func (e *Engine) registerDefaultOps() {
	ops := map[string]OpFunc{
		// Control and scope
		"COND":   opCond,
		"AND":    opAnd,
		"OR":     opOr,
		"NOT":    opNot,
		"PROG":   opProg,
		"RETURN": opReturn,
		"RTRUE":  opRTrue,
		"RFALSE": opRFalse,
		"SET":    opSet,
		"SETG":   opSetG,
		"EQUAL?": opEqual,
		"==?":    opEqual,
		"ZERO?":  opZero,
		"0?":     opZero,

		// Arithmetic and comparison
		"+":      opAdd,
		"-":      opSub,
		"*":      opMul,
		"/":      opDiv,
		"MOD":    opMod,
		"RANDOM": opRandom,
		"LESS?":  opLess,
		"L?":     opLess,
		"GRTR?":  opGrtr,
		"G?":     opGrtr,
		"DLESS?": opDLess,
		"IGRTR?": opIGrtr,

		// Bitwise
		"BAND": opBAnd,
		"BOR":  opBOr,
		"BCOM": opBCom,
		"BTST": opBTst,

		// Objects
		"MOVE":   opMove,
		"REMOVE": opRemove,
		"LOC":    opLoc,
		"IN?":    opIn,
		"FIRST?": opFirst,
		"NEXT?":  opNext,
		"GETP":   opGetP,
		"PUTP":   opPutP,
		"FSET":   opFSet,
		"FCLEAR": opFClear,
		"FSET?":  opFSetP,

		// Tables
		"GET":  opGetWord,
		"PUT":  opPutWord,
		"GETB": opGetByte,
		"PUTB": opPutByte,

		// Printing
		"PRINT":  opPrint,
		"PRINTI": opPrintI,
		"PRINTD": opPrintD,
		"PRINTN": opPrintN,
		"PRINTC": opPrintC,
		"PRINTA": opPrintA,
		"CRLF":   opCRLF,

		// Interrupts
		"QUEUE":   opQueue,
		"ENABLE":  opEnable,
		"DISABLE": opDisable,
		"DEQUEUE": opDequeue,
	}
	for name, fn := range ops {
		e.RegisterOp(name, fn)
	}
}

// asNumber insists a value is a number.
func asNumber(op string, v value.Value) (int, error) {
	if n, ok := v.(value.Number); ok {
		return n.Value, nil
	}
	return 0, newError(ErrBadOperands, "%s: expected a number, got %s", op, v.String())
}

// asSymbol insists a value denotes an identifier.
func asSymbol(op string, v value.Value) (string, error) {
	if name, ok := value.SymbolName(v); ok {
		return name, nil
	}
	return "", newError(ErrBadOperands, "%s: expected a name, got %s", op, v.String())
}

// boolValue maps a Go bool onto the language's canonical values.
func boolValue(b bool) value.Value {
	if b {
		return value.True()
	}
	return value.False{}
}
