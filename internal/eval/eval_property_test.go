package eval

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

// TestArithmeticWrapsProperty checks that every arithmetic result
// stays inside the 16-bit word regardless of operand sizes.
func TestArithmeticWrapsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	e := New(WithOutput(&bytes.Buffer{}))
	eval := func(src string) (int, error) {
		v, err := value.ParseOne(src)
		if err != nil {
			return 0, err
		}
		out, err := e.Run(v)
		if err != nil {
			return 0, err
		}
		n, ok := out.(value.Number)
		if !ok {
			return 0, fmt.Errorf("expected a number, got %s", out.String())
		}
		return n.Value, nil
	}

	properties.Property("results stay in the 16-bit word", prop.ForAll(
		func(a, b int) bool {
			for _, op := range []string{"+", "-", "*", "BAND", "BOR"} {
				got, err := eval(fmt.Sprintf("<%s %d %d>", op, a, b))
				if err != nil {
					return false
				}
				if got < 0 || got > 0xFFFF {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 0xFFFF),
		gen.IntRange(0, 0xFFFF),
	))

	properties.Property("sum matches masked integer addition", prop.ForAll(
		func(a, b int) bool {
			got, err := eval(fmt.Sprintf("<+ %d %d>", a, b))
			return err == nil && got == (a+b)&0xFFFF
		},
		gen.IntRange(0, 0xFFFF),
		gen.IntRange(0, 0xFFFF),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestDecrementCompareProperty checks that DLESS? always mutates its
// global exactly once per call and tests the decremented value.
func TestDecrementCompareProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("DLESS? decrements once and compares the new value", prop.ForAll(
		func(start, bound int) bool {
			e := New(WithOutput(&bytes.Buffer{}))
			e.World().SetGlobal("CNT", value.Number{Value: start})

			src, err := value.ParseOne(fmt.Sprintf("<DLESS? CNT %d>", bound))
			if err != nil {
				return false
			}
			out, err := e.Run(src)
			if err != nil {
				return false
			}

			after, ok := e.World().Global("CNT").(value.Number)
			if !ok || after.Value != (start-1)&0xFFFF {
				return false
			}
			return out.Truthy() == (after.Value < bound)
		},
		gen.IntRange(1, 1000),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
