// Package eval implements the operation registry and evaluator: the
// runtime that dispatches primitive forms by name, owns scoping and
// non-local returns, and drives routine invocation against the world
// model.
package eval

import (
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/keithmackay/zork1-sub000/internal/macro"
	"github.com/keithmackay/zork1-sub000/internal/schedule"
	"github.com/keithmackay/zork1-sub000/internal/value"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

// Result is the outcome of evaluating one value: either a normal
// value, or a return signal travelling up to the nearest routine-call
// boundary. Threading the signal through the result type keeps the
// propagation boundary in the type system instead of a convention.
type Result struct {
	Value  value.Value
	Return bool
}

// Normal wraps an ordinary value.
func Normal(v value.Value) Result { return Result{Value: v} }

// Returning wraps a non-local return signal.
func Returning(v value.Value) Result { return Result{Value: v, Return: true} }

// OpFunc is the signature of a primitive operation. Each operation
// evaluates its own arguments; the dispatcher never pre-evaluates.
// That is what makes AND, OR, and COND able to short-circuit.
type OpFunc func(e *Engine, args []value.Value, sc *Scope) (Result, error)

// Routine is a named procedure: ordered parameters and a body of
// forms. Routine names are case-insensitive and live in a namespace
// separate from macros; redefinition replaces the prior definition.
type Routine struct {
	Name   string
	Params []string
	Body   []value.Value
}

// Engine owns the registries and the world model. There are no
// process-wide singletons; every component hangs off one Engine.
type Engine struct {
	world    *world.World
	macros   *macro.Registry
	sched    *schedule.Scheduler
	routines map[string]*Routine
	ops      map[string]OpFunc

	out io.Writer
	log *slog.Logger
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets the text sink the print operations write to.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRandomSeed seeds the random source used by RANDOM. Replaying a
// command transcript against the same seed reproduces the same
// draws.
func WithRandomSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New creates an Engine with an empty world and the default operation
// set registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		world:    world.New(),
		macros:   macro.NewRegistry(),
		sched:    schedule.New(),
		routines: make(map[string]*Routine),
		ops:      make(map[string]OpFunc),
		out:      os.Stdout,
		log:      slog.Default(),
		rng:      rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.registerDefaultOps()
	return e
}

// World returns the engine's world model.
func (e *Engine) World() *world.World { return e.world }

// Macros returns the macro registry.
func (e *Engine) Macros() *macro.Registry { return e.macros }

// Scheduler returns the interrupt scheduler.
func (e *Engine) Scheduler() *schedule.Scheduler { return e.sched }

// RegisterOp registers a primitive operation under a canonical name.
func (e *Engine) RegisterOp(name string, fn OpFunc) {
	e.ops[value.Canon(name)] = fn
}

// RegisterRoutine registers a routine, replacing any prior definition
// of the same name.
func (e *Engine) RegisterRoutine(rt *Routine) {
	e.routines[value.Canon(rt.Name)] = rt
}

// Routine looks up a routine by name, or nil.
func (e *Engine) Routine(name string) *Routine {
	return e.routines[value.Canon(name)]
}

// Eval evaluates one value in the given scope. Literals evaluate to
// themselves; local refs resolve in the scope, global refs in the
// world (absent globals read as false); forms dispatch through the
// registered operations, then routines, then fail.
func (e *Engine) Eval(v value.Value, sc *Scope) (Result, error) {
	switch t := v.(type) {
	case value.LocalRef:
		local, ok := sc.Get(t.Name)
		if !ok {
			return Result{}, newError(ErrUnboundLocal, "unbound local: %s", t.Name)
		}
		return Normal(local), nil
	case value.GlobalRef:
		return Normal(e.world.Global(t.Name)), nil
	case value.Form:
		return e.evalForm(t, sc)
	default:
		return Normal(v), nil
	}
}

func (e *Engine) evalForm(f value.Form, sc *Scope) (Result, error) {
	op := value.Canon(f.Op)
	if fn, ok := e.ops[op]; ok {
		e.log.Debug("dispatch primitive", "op", op)
		return fn(e, f.Args, sc)
	}
	if rt := e.routines[op]; rt != nil {
		e.log.Debug("dispatch routine", "routine", op)
		args, ret, err := e.evalArgs(f.Args, sc)
		if err != nil {
			return Result{}, err
		}
		if ret != nil {
			return *ret, nil
		}
		v, err := e.call(rt, args)
		if err != nil {
			return Result{}, err
		}
		return Normal(v), nil
	}
	return Result{}, newError(ErrUnknownOperator, "unknown operator: %s", f.Op)
}

// evalArgs evaluates arguments left to right. When a sub-evaluation
// signals a return, the partial results are abandoned and the signal
// is handed back for the caller to propagate.
func (e *Engine) evalArgs(args []value.Value, sc *Scope) ([]value.Value, *Result, error) {
	out := make([]value.Value, 0, len(args))
	for _, a := range args {
		res, err := e.Eval(a, sc)
		if err != nil {
			return nil, nil, err
		}
		if res.Return {
			return nil, &res, nil
		}
		out = append(out, res.Value)
	}
	return out, nil, nil
}

// Call invokes a routine by name with already-evaluated arguments.
// This is the runtime entry point the external command parser uses
// after setting the parser-state globals.
func (e *Engine) Call(name string, args []value.Value) (value.Value, error) {
	rt := e.Routine(name)
	if rt == nil {
		return nil, newError(ErrUnknownRoutine, "unknown routine: %s", name)
	}
	return e.call(rt, args)
}

// call binds arguments into a fresh scope and runs the body. The
// routine-call frame is the propagation boundary: a return signal from
// anywhere inside unwraps here into an ordinary value. A routine with
// no explicit return yields its last body form's value.
func (e *Engine) call(rt *Routine, args []value.Value) (value.Value, error) {
	sc := NewScope()
	for i, p := range rt.Params {
		if i < len(args) {
			sc.Set(p, args[i])
		} else {
			sc.Set(p, value.False{})
		}
	}
	var last value.Value = value.False{}
	for _, form := range rt.Body {
		res, err := e.Eval(form, sc)
		if err != nil {
			return nil, err
		}
		if res.Return {
			return res.Value, nil
		}
		last = res.Value
	}
	return last, nil
}

// Run expands and evaluates one top-level value outside any routine.
// A return signal observed here means a malformed program, not a host
// fault, and is reported as an uncaught-return error.
func (e *Engine) Run(v value.Value) (value.Value, error) {
	expanded, err := e.macros.Expand(v)
	if err != nil {
		return nil, err
	}
	res, err := e.Eval(expanded, NewScope())
	if err != nil {
		return nil, err
	}
	if res.Return {
		return nil, newError(ErrUncaughtReturn, "return signalled outside any routine invocation")
	}
	return res.Value, nil
}
