package codec

import (
	"fmt"
	"strings"

	"github.com/romhack/romtext/pkg/table"
)

var (
	_ Decoder = (*TableByte)(nil)
	_ Decoder = (*TableText)(nil)
)

// TableByte transliterates exactly one byte through a table. It is
// decode-only.
type TableByte struct {
	table *table.Table
}

// NewTableByte returns a single byte codec backed by t. A nil table behaves
// like an empty one.
func NewTableByte(t *table.Table) *TableByte {
	return &TableByte{table: t}
}

func (c *TableByte) Name() string { return NameTableByte }

func (c *TableByte) Decode(in []byte) (string, error) {
	if len(in) != 1 {
		return "", fmt.Errorf("%s: %w: got %d", NameTableByte, ErrByteLength, len(in))
	}
	g, ok := c.table.Lookup(in[0])
	if !ok {
		return "", &ByteError{Codec: NameTableByte, Offset: 0, Value: in[0], Err: ErrUndefinedByteMapping}
	}
	return g, nil
}

// TableText transliterates a whole buffer through a table, byte by byte.
// It is decode-only.
type TableText struct {
	table *table.Table
}

// NewTableText returns a buffer codec backed by t.
func NewTableText(t *table.Table) *TableText {
	return &TableText{table: t}
}

func (c *TableText) Name() string { return NameTableText }

func (c *TableText) Decode(in []byte) (string, error) {
	var sb strings.Builder
	for i, b := range in {
		g, ok := c.table.Lookup(b)
		if !ok {
			return "", &ByteError{Codec: NameTableText, Offset: i, Value: b, Err: ErrUndefinedByteMapping}
		}
		sb.WriteString(g)
	}
	return sb.String(), nil
}
