// Package schedule implements the turn-counted interrupt scheduler.
// Interrupts fire once: when an enabled interrupt's countdown reaches
// zero on a tick it is removed and its routine name is handed back to
// the command loop, which runs it through the evaluator.
package schedule

import (
	"github.com/keithmackay/zork1-sub000/internal/value"
)

// Interrupt is a named, turn-counted deferred routine invocation.
type Interrupt struct {
	Name    string
	Routine string
	Turns   int
	Enabled bool
}

// Scheduler holds pending interrupts in queue order.
type Scheduler struct {
	pending []*Interrupt
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Queue inserts an interrupt, or replaces the one with the same name.
// New interrupts start enabled.
func (s *Scheduler) Queue(name, routine string, turns int) {
	name = value.Canon(name)
	in := &Interrupt{Name: name, Routine: value.Canon(routine), Turns: turns, Enabled: true}
	for i, p := range s.pending {
		if p.Name == name {
			s.pending[i] = in
			return
		}
	}
	s.pending = append(s.pending, in)
}

// Find returns the named interrupt, or nil. Disabled interrupts are
// still findable.
func (s *Scheduler) Find(name string) *Interrupt {
	name = value.Canon(name)
	for _, p := range s.pending {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Enable marks the named interrupt eligible to fire. The countdown is
// unaffected. Reports whether the interrupt exists.
func (s *Scheduler) Enable(name string) bool {
	in := s.Find(name)
	if in == nil {
		return false
	}
	in.Enabled = true
	return true
}

// Disable makes the named interrupt ineligible: it neither counts down
// nor fires until enabled again.
func (s *Scheduler) Disable(name string) bool {
	in := s.Find(name)
	if in == nil {
		return false
	}
	in.Enabled = false
	return true
}

// Dequeue removes the named interrupt unconditionally. Reports whether
// it existed.
func (s *Scheduler) Dequeue(name string) bool {
	name = value.Canon(name)
	for i, p := range s.pending {
		if p.Name == name {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of pending interrupts, disabled included.
func (s *Scheduler) Len() int { return len(s.pending) }

// Tick advances one turn: every enabled interrupt's countdown drops by
// one, and those reaching zero are removed and their routine names
// returned in queue order.
func (s *Scheduler) Tick() []string {
	var ready []string
	remaining := s.pending[:0]
	for _, p := range s.pending {
		if !p.Enabled {
			remaining = append(remaining, p)
			continue
		}
		p.Turns--
		if p.Turns <= 0 {
			ready = append(ready, p.Routine)
			continue
		}
		remaining = append(remaining, p)
	}
	s.pending = remaining
	return ready
}
