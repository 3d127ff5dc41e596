// Package zil provides the public API for the adventure-language
// runtime: loading a game program, running commands, and replaying
// recorded transcripts.
package zil

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/keithmackay/zork1-sub000/internal/eval"
	"github.com/keithmackay/zork1-sub000/internal/store"
	"github.com/keithmackay/zork1-sub000/internal/value"
	"github.com/keithmackay/zork1-sub000/internal/world"
)

// Runtime is the adventure-language runtime: an engine plus an
// optional command transcript.
type Runtime struct {
	engine     *eval.Engine
	transcript store.Store
	out        io.Writer
	log        *slog.Logger
	seed       int64
	seedSet    bool
}

// New creates a new runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		out: os.Stdout,
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	evalOpts := []eval.Option{
		eval.WithOutput(r.out),
		eval.WithLogger(r.log),
	}
	if r.seedSet {
		evalOpts = append(evalOpts, eval.WithRandomSeed(r.seed))
	}
	r.engine = eval.New(evalOpts...)

	return r
}

// Engine exposes the underlying evaluator for callers that need
// registries directly.
func (r *Runtime) Engine() *eval.Engine { return r.engine }

// World exposes the world model for loaders and presentation layers.
func (r *Runtime) World() *world.World { return r.engine.World() }

// LoadForms loads a program's top-level forms: definitions register,
// everything else is evaluated for effect.
func (r *Runtime) LoadForms(forms []value.Value) error {
	return r.engine.LoadForms(forms)
}

// LoadString parses and loads game source text.
func (r *Runtime) LoadString(source string) error {
	forms, err := value.Parse(source)
	if err != nil {
		return err
	}
	return r.LoadForms(forms)
}

// LoadReader loads game source from a reader.
func (r *Runtime) LoadReader(reader io.Reader) error {
	src, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	return r.LoadString(string(src))
}

// LoadFile loads a game source file.
func (r *Runtime) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.LoadReader(f)
}

// Eval expands and evaluates source text and returns the last form's
// value rendered as text.
func (r *Runtime) Eval(source string) (string, error) {
	forms, err := value.Parse(source)
	if err != nil {
		return "", err
	}
	var last value.Value = value.False{}
	for _, f := range forms {
		last, err = r.engine.Run(f)
		if err != nil {
			return "", err
		}
	}
	return last.String(), nil
}

// Perform sets the parser-state globals and invokes the named action
// routine. The direct and indirect object names may be empty, which
// reads as false in the globals.
func (r *Runtime) Perform(action, direct, indirect string) (value.Value, error) {
	w := r.engine.World()
	w.SetGlobal(world.ActionGlobal, value.QuotedAtom{Name: value.Canon(action)})
	w.SetGlobal(world.DirectGlobal, objectRef(direct))
	w.SetGlobal(world.IndirectGlobal, objectRef(indirect))
	return r.engine.Call(action, nil)
}

func objectRef(name string) value.Value {
	if name == "" {
		return value.False{}
	}
	return value.Atom{Name: value.Canon(name)}
}

// Command runs one turn: evaluate the command source, record it in
// the transcript, then tick the scheduler and run any interrupt
// routines that fired. The command's own output comes first, then the
// interrupts' output in queue order.
func (r *Runtime) Command(source string) (string, error) {
	out, err := r.turn(source)
	if err != nil {
		return out, err
	}
	if r.transcript != nil {
		if err := r.transcript.Append(source); err != nil {
			r.log.Warn("transcript append failed", "err", err)
		}
	}
	return out, nil
}

func (r *Runtime) turn(source string) (string, error) {
	out, err := r.Eval(source)
	if err != nil {
		return "", err
	}
	if err := r.TickTurn(); err != nil {
		return out, err
	}
	return out, nil
}

// TickTurn advances the interrupt clock one turn and runs every
// routine that fired.
func (r *Runtime) TickTurn() error {
	for _, routine := range r.engine.Scheduler().Tick() {
		if _, err := r.engine.Call(routine, nil); err != nil {
			return err
		}
	}
	return nil
}

// Replay re-runs a transcript in order without re-recording it. The
// caller is responsible for starting from a freshly loaded runtime
// with the same seed; given that, the replay reproduces the session.
func (r *Runtime) Replay(entries []store.Entry) (string, error) {
	var out strings.Builder
	for _, entry := range entries {
		text, err := r.turn(entry.Source)
		if err != nil {
			return out.String(), err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

// Transcript returns the recorded command transcript, or nil when
// recording is off.
func (r *Runtime) Transcript() store.Store { return r.transcript }

// Close releases resources.
func (r *Runtime) Close() error {
	if r.transcript != nil {
		return r.transcript.Close()
	}
	return nil
}
