package store

import "sync"

// Memory is an in-memory transcript for testing and one-shot runs.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemory creates a new in-memory transcript.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a command.
func (m *Memory) Append(source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Seq: len(m.entries) + 1, Source: source})
	return nil
}

// All returns the transcript in recorded order.
func (m *Memory) All() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Reset discards the transcript.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Close is a no-op for the memory transcript.
func (m *Memory) Close() error {
	return nil
}
