// Package store provides persistence for command transcripts. A
// transcript is the ordered list of player commands a session has
// run; replaying one against a freshly loaded world with the same
// random seed reproduces the session.
package store

// Entry is one recorded command.
type Entry struct {
	Seq    int
	Source string
}

// Store is the interface for transcript persistence.
type Store interface {
	// Append records a command at the end of the transcript.
	Append(source string) error
	// All returns the transcript in recorded order.
	All() ([]Entry, error)
	// Reset discards the transcript.
	Reset() error
	// Close releases resources.
	Close() error
}
