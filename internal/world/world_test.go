package world

import (
	"errors"
	"testing"

	"github.com/keithmackay/zork1-sub000/internal/value"
)

func newTestWorld(t *testing.T, names ...string) *World {
	t.Helper()
	w := New()
	for _, n := range names {
		w.RegisterObject(NewObject(n))
	}
	return w
}

func mustMove(t *testing.T, w *World, obj, dest string) {
	t.Helper()
	if err := w.Move(obj, dest); err != nil {
		t.Fatalf("Move(%s, %s) failed: %v", obj, dest, err)
	}
}

func TestMoveKeepsContainmentConsistent(t *testing.T) {
	w := newTestWorld(t, "ROOM", "CHEST", "LAMP")
	mustMove(t, w, "CHEST", "ROOM")
	mustMove(t, w, "LAMP", "CHEST")

	lamp, _ := w.Object("LAMP")
	chest, _ := w.Object("CHEST")
	room, _ := w.Object("ROOM")

	if lamp.Parent() != chest {
		t.Errorf("expected LAMP in CHEST, got %v", lamp.Parent())
	}
	if chest.First() != lamp {
		t.Errorf("expected LAMP first in CHEST")
	}

	// Moving again relocates, it does not duplicate.
	mustMove(t, w, "LAMP", "ROOM")
	if len(chest.Children()) != 0 {
		t.Errorf("CHEST should be empty after the move, has %d children", len(chest.Children()))
	}
	if len(room.Children()) != 2 {
		t.Errorf("ROOM should hold CHEST and LAMP, has %d children", len(room.Children()))
	}
}

func TestMoveRejectsCycles(t *testing.T) {
	w := newTestWorld(t, "BAG", "BOX")
	mustMove(t, w, "BOX", "BAG")

	if err := w.Move("BAG", "BOX"); err == nil {
		t.Fatal("moving a container into its own contents should fail")
	} else {
		var werr *Error
		if !errors.As(err, &werr) || werr.Kind != ErrCyclicMove {
			t.Errorf("expected %s, got %v", ErrCyclicMove, err)
		}
	}
	if err := w.Move("BAG", "BAG"); err == nil {
		t.Fatal("moving an object into itself should fail")
	}

	// The failed moves must not have changed anything.
	bag, _ := w.Object("BAG")
	box, _ := w.Object("BOX")
	if box.Parent() != bag || bag.Parent() != nil {
		t.Error("failed move mutated the containment tree")
	}
}

func TestRemove(t *testing.T) {
	w := newTestWorld(t, "ROOM", "LAMP")
	mustMove(t, w, "LAMP", "ROOM")

	if err := w.Remove("LAMP"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	lamp, _ := w.Object("LAMP")
	room, _ := w.Object("ROOM")
	if lamp.Parent() != nil {
		t.Error("removed object still has a parent")
	}
	if len(room.Children()) != 0 {
		t.Error("removed object still listed in old parent")
	}
	// Removing a detached object is a no-op, not an error.
	if err := w.Remove("LAMP"); err != nil {
		t.Errorf("Remove of detached object failed: %v", err)
	}
}

func TestSiblingOrder(t *testing.T) {
	w := newTestWorld(t, "ROOM", "A", "B", "C")
	mustMove(t, w, "A", "ROOM")
	mustMove(t, w, "B", "ROOM")
	mustMove(t, w, "C", "ROOM")

	room, _ := w.Object("ROOM")
	got := ""
	for c := room.First(); c != nil; c = c.NextSibling() {
		got += c.Name
	}
	if got != "ABC" {
		t.Errorf("expected sibling order ABC, got %s", got)
	}
}

func TestGlobals(t *testing.T) {
	w := New()

	// An unwritten global reads as false, never an error.
	if _, ok := w.Global("WINNER").(value.False); !ok {
		t.Errorf("unset global should read as false, got %s", w.Global("WINNER").String())
	}
	if w.HasGlobal("WINNER") {
		t.Error("HasGlobal should be false for an unwritten global")
	}

	w.SetGlobal("score", value.Number{Value: 10})
	if got := w.Global("SCORE"); !value.Equal(got, value.Number{Value: 10}) {
		t.Errorf("expected 10, got %s", got.String())
	}

	// The parser-state globals exist from the start.
	for _, name := range []string{ActionGlobal, DirectGlobal, IndirectGlobal} {
		if !w.HasGlobal(name) {
			t.Errorf("global %s should be seeded", name)
		}
	}
}

func TestObjectProps(t *testing.T) {
	o := NewObject("lamp")
	if o.Name != "LAMP" {
		t.Errorf("object names are canonical, got %s", o.Name)
	}
	if _, ok := o.Prop("DESC").(value.False); !ok {
		t.Error("missing property should read as false")
	}
	o.SetProp("desc", value.Text{Value: "brass lantern"})
	if got := o.Prop("DESC"); !value.Equal(got, value.Text{Value: "brass lantern"}) {
		t.Errorf("expected property round-trip, got %s", got.String())
	}

	o.SetFlag("takebit")
	if !o.Flag("TAKEBIT") {
		t.Error("flag should be set")
	}
	o.ClearFlag("TAKEBIT")
	if o.Flag("TAKEBIT") {
		t.Error("flag should be clear")
	}
}

func TestTableWords(t *testing.T) {
	tbl := NewTable("T", []uint16{10, 20, 30})

	if got, _ := tbl.Word(1); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
	if err := tbl.SetWord(2, 99); err != nil {
		t.Fatalf("SetWord failed: %v", err)
	}
	if got, _ := tbl.Word(2); got != 99 {
		t.Errorf("expected 99, got %d", got)
	}

	for _, i := range []int{-1, 3} {
		if _, err := tbl.Word(i); err == nil {
			t.Errorf("Word(%d) should be out of range", i)
		}
		var werr *Error
		if _, err := tbl.Word(i); !errors.As(err, &werr) || werr.Kind != ErrIndexOutOfRange {
			t.Errorf("Word(%d) should report %s", i, ErrIndexOutOfRange)
		}
	}
}

func TestTableBytes(t *testing.T) {
	tbl := NewTable("T", []uint16{0xABCD})

	// Even byte index is the high byte.
	if got, _ := tbl.Byte(0); got != 0xAB {
		t.Errorf("expected high byte AB, got %X", got)
	}
	if got, _ := tbl.Byte(1); got != 0xCD {
		t.Errorf("expected low byte CD, got %X", got)
	}

	// Writing a byte preserves its sibling.
	if err := tbl.SetByte(0, 0x12); err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	if got, _ := tbl.Word(0); got != 0x12CD {
		t.Errorf("expected 12CD, got %X", got)
	}
	if err := tbl.SetByte(1, 0x34); err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	if got, _ := tbl.Word(0); got != 0x1234 {
		t.Errorf("expected 1234, got %X", got)
	}

	if _, err := tbl.Byte(2); err == nil {
		t.Error("byte index past the table should be out of range")
	}
}
