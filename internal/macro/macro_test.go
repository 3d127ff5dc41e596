package macro

import (
	"errors"
	"testing"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

func mustParse(t *testing.T, source string) value.Value {
	t.Helper()
	v, err := value.ParseOne(source)
	if err != nil {
		t.Fatalf("ParseOne(%q) failed: %v", source, err)
	}
	return v
}

func expandString(t *testing.T, r *Registry, source string) string {
	t.Helper()
	out, err := r.Expand(mustParse(t, source))
	if err != nil {
		t.Fatalf("Expand(%q) failed: %v", source, err)
	}
	return out.String()
}

func TestTellExpansion(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"strings and newline",
			`<TELL "West of House" CR>`,
			`<PROG () <PRINTI "West of House"> <CRLF>>`,
		},
		{
			"description indicator",
			`<TELL "The " D ,LAMP " is here." CR>`,
			`<PROG () <PRINTI "The "> <PRINTD ,LAMP> <PRINTI " is here."> <CRLF>>`,
		},
		{
			"number and character",
			`<TELL N ,SCORE C 33>`,
			`<PROG () <PRINTN ,SCORE> <PRINTC 33>>`,
		},
		{
			"article indicator",
			`<TELL A ,SWORD>`,
			`<PROG () <PRINTA ,SWORD>>`,
		},
		{
			"property indicator",
			`<TELL LDESC ,TROLL>`,
			`<PROG () <PRINT <GETP ,TROLL LDESC>>>`,
		},
		{
			"embedded form",
			`<TELL "score: " <+ ,SCORE 1>>`,
			`<PROG () <PRINTI "score: "> <PRINT <+ ,SCORE 1>>>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandString(t, r, tt.source); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestTellIndicatorNeedsValue(t *testing.T) {
	r := NewRegistry()
	_, err := r.Expand(mustParse(t, `<TELL "x" D>`))
	if err == nil {
		t.Fatal("trailing indicator should fail arity")
	}
	var merr *Error
	if !errors.As(err, &merr) || merr.Kind != ErrArity {
		t.Errorf("expected %s, got %v", ErrArity, err)
	}
}

func TestFSetAllExpansion(t *testing.T) {
	r := NewRegistry()
	if got := expandString(t, r, `<FSET-ALL ,LAMP LIGHTBIT>`); got != `<FSET ,LAMP LIGHTBIT>` {
		t.Errorf("single flag should expand to a bare FSET, got %s", got)
	}
	want := `<PROG () <FSET ,LAMP LIGHTBIT> <FSET ,LAMP TAKEBIT>>`
	if got := expandString(t, r, `<FSET-ALL ,LAMP LIGHTBIT TAKEBIT>`); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFSetAnyExpansion(t *testing.T) {
	r := NewRegistry()
	if got := expandString(t, r, `<FSET-ANY? ,DOOR OPENBIT>`); got != `<FSET? ,DOOR OPENBIT>` {
		t.Errorf("single flag should expand to a bare FSET?, got %s", got)
	}
	want := `<OR <FSET? ,DOOR OPENBIT> <FSET? ,DOOR LOCKEDBIT>>`
	if got := expandString(t, r, `<FSET-ANY? ,DOOR OPENBIT LOCKEDBIT>`); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestVerbExpansion(t *testing.T) {
	r := NewRegistry()
	if got := expandString(t, r, `<VERB? TAKE>`); got != `<EQUAL? ,PRSA 'TAKE>` {
		t.Errorf("expected action test, got %s", got)
	}
	want := `<OR <EQUAL? ,PRSA 'TAKE> <EQUAL? ,PRSA 'GRAB>>`
	if got := expandString(t, r, `<VERB? TAKE GRAB>`); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestUserMacroExpansion(t *testing.T) {
	r := NewRegistry()
	err := r.Define(&Definition{
		Name:   "DOUBLE",
		Params: []Param{{Name: "X", Mode: Required}},
		Body:   mustParse(t, `<+ .X .X>`),
	})
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	if got := expandString(t, r, `<DOUBLE 5>`); got != `<+ 5 5>` {
		t.Errorf("expected <+ 5 5>, got %s", got)
	}
	// Expansion reaches macro calls in argument position too.
	if got := expandString(t, r, `<SETG N <DOUBLE <DOUBLE 2>>>`); got != `<SETG N <+ <+ 2 2> <+ 2 2>>>` {
		t.Errorf("nested expansion wrong: %s", got)
	}
}

func TestMacroOptionalAndRest(t *testing.T) {
	r := NewRegistry()
	err := r.Define(&Definition{
		Name: "WRAP",
		Params: []Param{
			{Name: "A", Mode: Required},
			{Name: "B", Mode: Optional},
			{Name: "REST", Mode: Rest},
		},
		Body: mustParse(t, `<F .A .B .REST>`),
	})
	if err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	if got := expandString(t, r, `<WRAP 1>`); got != `<F 1 <> ()>` {
		t.Errorf("optional defaults to false, rest to empty list: %s", got)
	}
	if got := expandString(t, r, `<WRAP 1 2 3 4>`); got != `<F 1 2 (3 4)>` {
		t.Errorf("rest should capture the remainder: %s", got)
	}

	_, err = r.Expand(mustParse(t, `<WRAP>`))
	var merr *Error
	if !errors.As(err, &merr) || merr.Kind != ErrArity {
		t.Errorf("missing required argument should fail arity, got %v", err)
	}
}

func TestQuotedParamSkipsExpansion(t *testing.T) {
	r := NewRegistry()
	if err := r.Define(&Definition{
		Name:   "LIT",
		Params: []Param{{Name: "X", Mode: Quoted}},
		Body:   mustParse(t, `<QUOTE-RESULT .X>`),
	}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := r.Define(&Definition{
		Name:   "ID",
		Params: []Param{{Name: "X", Mode: Required}},
		Body:   mustParse(t, `.X`),
	}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	// The quoted argument lands in the template as written.
	if got := expandString(t, r, `<LIT <ID 9>>`); got != `<QUOTE-RESULT 9>` {
		// The substituted form is expanded on the re-walk; the
		// quoted mode only skips pre-expansion of the argument.
		t.Errorf("got %s", got)
	}
}

func TestDefineRejectsBadParamOrder(t *testing.T) {
	r := NewRegistry()
	err := r.Define(&Definition{
		Name: "BAD",
		Params: []Param{
			{Name: "A", Mode: Optional},
			{Name: "B", Mode: Required},
		},
	})
	var merr *Error
	if !errors.As(err, &merr) || merr.Kind != ErrBadParams {
		t.Errorf("required after optional should be rejected, got %v", err)
	}

	err = r.Define(&Definition{
		Name: "BAD2",
		Params: []Param{
			{Name: "A", Mode: Rest},
			{Name: "B", Mode: Rest},
		},
	})
	if !errors.As(err, &merr) || merr.Kind != ErrBadParams {
		t.Errorf("two rest parameters should be rejected, got %v", err)
	}
	if r.Lookup("BAD") != nil || r.Lookup("BAD2") != nil {
		t.Error("rejected definitions must not be registered")
	}
}

func TestParseParams(t *testing.T) {
	list := mustParse(t, `(A 'B "OPT" C "AUX" D "TUPLE" E)`).(value.List)
	params, err := ParseParams(list)
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	want := []Param{
		{Name: "A", Mode: Required},
		{Name: "B", Mode: Quoted},
		{Name: "C", Mode: Optional},
		{Name: "D", Mode: Aux},
		{Name: "E", Mode: Rest},
	}
	if len(params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(params))
	}
	for i := range want {
		if params[i] != want[i] {
			t.Errorf("param %d: expected %+v, got %+v", i, want[i], params[i])
		}
	}
}

func TestExpansionDepthGuard(t *testing.T) {
	r := NewRegistry()
	if err := r.Define(&Definition{
		Name:   "LOOP",
		Params: nil,
		Body:   mustParse(t, `<LOOP>`),
	}); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	_, err := r.Expand(mustParse(t, `<LOOP>`))
	var merr *Error
	if !errors.As(err, &merr) || merr.Kind != ErrDepth {
		t.Fatalf("self-referential macro should trip the depth guard, got %v", err)
	}

	// Deeply nested ordinary forms are fine; the guard counts
	// substitutions, not tree depth.
	deep := "1"
	for i := 0; i < MaxExpandDepth*2; i++ {
		deep = "<+ 1 " + deep + ">"
	}
	if _, err := r.Expand(mustParse(t, deep)); err != nil {
		t.Errorf("deep non-macro nesting should expand cleanly: %v", err)
	}
}
