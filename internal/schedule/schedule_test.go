package schedule

import (
	"reflect"
	"testing"
)

func TestTickFiresAtZero(t *testing.T) {
	s := New()
	s.Queue("I-LANTERN", "I-LANTERN", 2)

	if fired := s.Tick(); len(fired) != 0 {
		t.Fatalf("expected nothing on first tick, got %v", fired)
	}
	fired := s.Tick()
	if !reflect.DeepEqual(fired, []string{"I-LANTERN"}) {
		t.Fatalf("expected I-LANTERN on second tick, got %v", fired)
	}
	// Firing removes the interrupt.
	if s.Len() != 0 {
		t.Errorf("fired interrupt should be removed, %d pending", s.Len())
	}
	if fired := s.Tick(); len(fired) != 0 {
		t.Errorf("nothing left to fire, got %v", fired)
	}
}

func TestTickQueueOrder(t *testing.T) {
	s := New()
	s.Queue("A", "R-A", 1)
	s.Queue("B", "R-B", 2)
	s.Queue("C", "R-C", 1)

	if fired := s.Tick(); !reflect.DeepEqual(fired, []string{"R-A", "R-C"}) {
		t.Errorf("expected queue order [R-A R-C], got %v", fired)
	}
	if fired := s.Tick(); !reflect.DeepEqual(fired, []string{"R-B"}) {
		t.Errorf("expected [R-B], got %v", fired)
	}
}

func TestDisabledNeitherCountsNorFires(t *testing.T) {
	s := New()
	s.Queue("I-THIEF", "I-THIEF", 1)
	if !s.Disable("i-thief") {
		t.Fatal("Disable should find the interrupt")
	}

	for i := 0; i < 3; i++ {
		if fired := s.Tick(); len(fired) != 0 {
			t.Fatalf("disabled interrupt fired: %v", fired)
		}
	}

	// Still findable, countdown untouched.
	in := s.Find("I-THIEF")
	if in == nil {
		t.Fatal("disabled interrupt should remain findable")
	}
	if in.Turns != 1 {
		t.Errorf("disabled countdown should be untouched, got %d", in.Turns)
	}

	if !s.Enable("I-THIEF") {
		t.Fatal("Enable should find the interrupt")
	}
	if fired := s.Tick(); !reflect.DeepEqual(fired, []string{"I-THIEF"}) {
		t.Errorf("expected I-THIEF after re-enable, got %v", fired)
	}
}

func TestQueueReplacesSameName(t *testing.T) {
	s := New()
	s.Queue("I-CANDLE", "I-CANDLE", 5)
	s.Queue("I-CANDLE", "I-CANDLE", 1)

	if s.Len() != 1 {
		t.Fatalf("requeue should replace, %d pending", s.Len())
	}
	if fired := s.Tick(); !reflect.DeepEqual(fired, []string{"I-CANDLE"}) {
		t.Errorf("replacement countdown should apply, got %v", fired)
	}
}

func TestDequeue(t *testing.T) {
	s := New()
	s.Queue("I-FUSE", "I-FUSE", 1)

	if !s.Dequeue("i-fuse") {
		t.Fatal("Dequeue should report removal")
	}
	if s.Dequeue("I-FUSE") {
		t.Error("second Dequeue should report nothing to remove")
	}
	if fired := s.Tick(); len(fired) != 0 {
		t.Errorf("dequeued interrupt fired: %v", fired)
	}
}
