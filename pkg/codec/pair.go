package codec

import (
	"errors"

	"github.com/romhack/romtext/pkg/table"
)

var _ Decoder = (*GarbageTextPair)(nil)

// GarbageTextPair decodes buffers that interleave two channels: a glyph
// byte at every even index and a layout ("garbage") byte at every odd
// index. Each channel is decoded on its own and the results are
// concatenated garbage first; they are not interleaved back together.
//
// A buffer of odd length is accepted, the text channel is then one byte
// longer than the garbage channel.
type GarbageTextPair struct {
	garbage Decoder
	text    Decoder
}

// NewGarbageTextPair returns a pair codec whose text channel is
// transliterated through t and whose garbage channel uses MonospaceASCII.
func NewGarbageTextPair(t *table.Table) *GarbageTextPair {
	return &GarbageTextPair{
		garbage: MonospaceASCII{},
		text:    NewTableText(t),
	}
}

func (c *GarbageTextPair) Name() string { return NameGarbageTextPair }

func (c *GarbageTextPair) Decode(in []byte) (string, error) {
	even, odd := SplitChannels(in)

	garbage, err := c.garbage.Decode(odd)
	if err != nil {
		return "", c.remap(err, 1)
	}
	text, err := c.text.Decode(even)
	if err != nil {
		return "", c.remap(err, 0)
	}
	return garbage + text, nil
}

// remap rewrites a channel offset into an offset of the original buffer.
func (c *GarbageTextPair) remap(err error, parity int) error {
	var be *ByteError
	if !errors.As(err, &be) {
		return err
	}
	return &ByteError{
		Codec:  NameGarbageTextPair,
		Offset: be.Offset*2 + parity,
		Value:  be.Value,
		Err:    be.Err,
	}
}

// SplitChannels partitions in by index parity, keeping the relative order
// within each partition.
func SplitChannels(in []byte) (even, odd []byte) {
	even = make([]byte, 0, (len(in)+1)/2)
	odd = make([]byte, 0, len(in)/2)
	for i, b := range in {
		if i%2 == 0 {
			even = append(even, b)
		} else {
			odd = append(odd, b)
		}
	}
	return even, odd
}
