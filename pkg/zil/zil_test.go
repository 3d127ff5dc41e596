package zil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

const gameSource = `
<GLOBAL SCORE 0>
<GLOBAL MATCHES 3>

<OBJECT LIVING-ROOM (DESC "living room")>
<OBJECT LAMP (IN LIVING-ROOM) (DESC "brass lantern") (FLAGS TAKEBIT)>

<ROUTINE V-LOOK ()
	<TELL "You are in the " D ,LIVING-ROOM "." CR>>

<ROUTINE V-TAKE ()
	<COND (<FSET? ,PRSO TAKEBIT>
		<MOVE ,PRSO ,WINNER>
		<TELL "Taken." CR>
		<RTRUE>)>
	<TELL "You can't take that." CR>
	<RFALSE>>

<OBJECT WINNER>

<ROUTINE I-LANTERN ()
	<TELL "The lamp flickers." CR>>
`

func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	rt := New(append([]Option{WithOutput(&out)}, opts...)...)
	t.Cleanup(func() { rt.Close() })
	if err := rt.LoadString(gameSource); err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	return rt, &out
}

func TestLoadAndEval(t *testing.T) {
	rt, out := newTestRuntime(t)

	if _, err := rt.Eval(`<V-LOOK>`); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if got := out.String(); got != "You are in the living room.\n" {
		t.Errorf("unexpected output %q", got)
	}

	result, err := rt.Eval(`<+ 2 3>`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result != "5" {
		t.Errorf("expected 5, got %q", result)
	}
}

func TestPerform(t *testing.T) {
	rt, out := newTestRuntime(t)

	v, err := rt.Perform("V-TAKE", "LAMP", "")
	if err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	if !v.Truthy() {
		t.Error("taking a takeable object should succeed")
	}
	if out.String() != "Taken.\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	w := rt.World()
	lamp, err := w.Object("LAMP")
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if lamp.Parent() == nil || lamp.Parent().Name != "WINNER" {
		t.Error("LAMP should be held by WINNER")
	}

	// The parser-state globals reflect the last Perform.
	if got := w.Global("PRSA"); !value.Equal(got, value.QuotedAtom{Name: "V-TAKE"}) {
		t.Errorf("PRSA = %s", got.String())
	}
	if got := w.Global("PRSI"); got.Truthy() {
		t.Errorf("PRSI should be false, got %s", got.String())
	}

	out.Reset()
	v, err = rt.Perform("V-TAKE", "LIVING-ROOM", "")
	if err != nil {
		t.Fatalf("Perform failed: %v", err)
	}
	if v.Truthy() {
		t.Error("taking a non-takeable object should fail")
	}
	if out.String() != "You can't take that.\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestCommandTicksScheduler(t *testing.T) {
	rt, out := newTestRuntime(t)

	if _, err := rt.Command(`<QUEUE I-LANTERN 2>`); err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if strings.Contains(out.String(), "flickers") {
		t.Fatal("the interrupt fired a turn early")
	}
	if _, err := rt.Command(`<+ 0 0>`); err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if !strings.Contains(out.String(), "The lamp flickers.\n") {
		t.Errorf("the interrupt should have fired, output %q", out.String())
	}

	// Fired interrupts are gone.
	out.Reset()
	if _, err := rt.Command(`<+ 0 0>`); err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if strings.Contains(out.String(), "flickers") {
		t.Error("the interrupt fired twice")
	}
}

func TestTranscriptRecordsCommands(t *testing.T) {
	rt, _ := newTestRuntime(t, WithMemoryTranscript())

	cmds := []string{`<SETG SCORE 10>`, `<V-LOOK>`}
	for _, cmd := range cmds {
		if _, err := rt.Command(cmd); err != nil {
			t.Fatalf("Command(%q) failed: %v", cmd, err)
		}
	}

	entries, err := rt.Transcript().All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, cmd := range cmds {
		if entries[i].Source != cmd {
			t.Errorf("entry %d: expected %q, got %q", i, cmd, entries[i].Source)
		}
	}

	// A failing command is not recorded.
	if _, err := rt.Command(`<NO-SUCH-OP>`); err == nil {
		t.Fatal("unknown operator should fail")
	}
	entries, _ = rt.Transcript().All()
	if len(entries) != 2 {
		t.Errorf("failed command must not be recorded, got %d entries", len(entries))
	}
}

func TestReplayReproducesSession(t *testing.T) {
	fixture := `
<GLOBAL ROLLS 0>
<ROUTINE ROLL () <SETG ROLLS <+ ,ROLLS 1>> <RANDOM 100>>
`
	session := func() (*Runtime, *bytes.Buffer) {
		var out bytes.Buffer
		rt := New(WithOutput(&out), WithMemoryTranscript(), WithRandomSeed(99))
		if err := rt.LoadString(fixture); err != nil {
			t.Fatalf("LoadString failed: %v", err)
		}
		return rt, &out
	}

	first, _ := session()
	defer first.Close()
	var live []string
	for i := 0; i < 5; i++ {
		result, err := first.Command(`<ROLL>`)
		if err != nil {
			t.Fatalf("Command failed: %v", err)
		}
		live = append(live, result)
	}

	entries, err := first.Transcript().All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	second, _ := session()
	defer second.Close()
	replayed, err := second.Replay(entries)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if want := strings.Join(live, ""); replayed != want {
		t.Errorf("replay diverged: %q vs %q", replayed, want)
	}
	if got := second.World().Global("ROLLS"); !value.Equal(got, value.Number{Value: 5}) {
		t.Errorf("replay should run every command, ROLLS = %s", got.String())
	}
}
