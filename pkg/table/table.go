// Package table holds the transliteration table that maps single ROM bytes
// to their display glyphs.
//
// A Table is built once and never mutated afterwards, so a single instance
// can be shared by any number of goroutines without locking.
package table

import "fmt"

// Size is the number of distinct byte values a table can map.
const Size = 256

// Entry is a single byte to glyph mapping.
type Entry struct {
	Value byte
	Glyph string
}

// Table maps byte values to glyphs. The zero value is an empty table.
type Table struct {
	glyphs  [Size]string
	defined [Size]bool
	count   int
	source  string
}

// New builds a table from the given mapping. The map is copied.
func New(m map[byte]string) *Table {
	t := &Table{}
	for b, g := range m {
		t.set(b, g)
	}
	return t
}

// FromEntries builds a table from a list of entries. A byte value may only
// appear once.
func FromEntries(entries []Entry) (*Table, error) {
	t := &Table{}
	for _, e := range entries {
		if t.defined[e.Value] {
			return nil, fmt.Errorf("duplicate entry for byte 0x%02X", e.Value)
		}
		t.set(e.Value, e.Glyph)
	}
	return t, nil
}

func (t *Table) set(b byte, glyph string) {
	if !t.defined[b] {
		t.count++
	}
	t.glyphs[b] = glyph
	t.defined[b] = true
}

// Lookup returns the glyph for b and whether the table defines one.
func (t *Table) Lookup(b byte) (string, bool) {
	if t == nil || !t.defined[b] {
		return "", false
	}
	return t.glyphs[b], true
}

// Len returns the number of defined entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Entries returns all defined entries ordered by byte value.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	entries := make([]Entry, 0, t.count)
	for i := 0; i < Size; i++ {
		if t.defined[i] {
			entries = append(entries, Entry{Value: byte(i), Glyph: t.glyphs[i]})
		}
	}
	return entries
}

// Source is the path or name the table was loaded from, if any.
func (t *Table) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

func (t *Table) withSource(source string) *Table {
	t.source = source
	return t
}

// Missing returns the byte values that have no entry, in ascending order.
func (t *Table) Missing() []byte {
	var missing []byte
	for i := 0; i < Size; i++ {
		if t == nil || !t.defined[i] {
			missing = append(missing, byte(i))
		}
	}
	return missing
}
