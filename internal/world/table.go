package world

import "github.com/keithmackay/zork1-sub000/internal/value"

// Table is a contiguous block of 16-bit words with a derived byte
// view: byte i lives in word i/2, even i addressing the high byte.
type Table struct {
	Name  string
	words []uint16
}

// NewTable creates a table holding the given words.
func NewTable(name string, words []uint16) *Table {
	w := make([]uint16, len(words))
	copy(w, words)
	return &Table{Name: value.Canon(name), words: w}
}

// Len returns the word count.
func (t *Table) Len() int { return len(t.words) }

// Word reads the word at index i.
func (t *Table) Word(i int) (uint16, error) {
	if i < 0 || i >= len(t.words) {
		return 0, newError(ErrIndexOutOfRange, "table %s: word index %d out of range (len %d)", t.Name, i, len(t.words))
	}
	return t.words[i], nil
}

// SetWord writes the word at index i.
func (t *Table) SetWord(i int, v uint16) error {
	if i < 0 || i >= len(t.words) {
		return newError(ErrIndexOutOfRange, "table %s: word index %d out of range (len %d)", t.Name, i, len(t.words))
	}
	t.words[i] = v
	return nil
}

// Byte reads the byte at byte index i.
func (t *Table) Byte(i int) (uint8, error) {
	if i < 0 || i >= 2*len(t.words) {
		return 0, newError(ErrIndexOutOfRange, "table %s: byte index %d out of range (len %d)", t.Name, i, 2*len(t.words))
	}
	w := t.words[i/2]
	if i%2 == 0 {
		return uint8(w >> 8), nil
	}
	return uint8(w & 0xFF), nil
}

// SetByte writes the byte at byte index i, preserving the sibling byte
// of the same word.
func (t *Table) SetByte(i int, v uint8) error {
	if i < 0 || i >= 2*len(t.words) {
		return newError(ErrIndexOutOfRange, "table %s: byte index %d out of range (len %d)", t.Name, i, 2*len(t.words))
	}
	w := t.words[i/2]
	if i%2 == 0 {
		w = (w & 0x00FF) | uint16(v)<<8
	} else {
		w = (w & 0xFF00) | uint16(v)
	}
	t.words[i/2] = w
	return nil
}
