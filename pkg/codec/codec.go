// Package codec converts raw ROM bytes to editable text and back.
//
// Every codec has a name and implements Decoder, Encoder or both. The
// capability is part of the type: a decode-only codec simply does not have
// an Encode method, so callers holding a Codec must go through AsDecoder or
// AsEncoder before they can transform anything.
package codec

import "fmt"

// Codec is a named byte/text transform.
type Codec interface {
	Name() string
}

// Decoder converts from the ROM's binary representation to text.
type Decoder interface {
	Codec
	// Decode binary to text form
	Decode(in []byte) (string, error)
}

// Encoder converts from text back to the ROM's binary representation.
type Encoder interface {
	Codec
	// Encode text to binary form
	Encode(text string) ([]byte, error)
}

// Operation names one direction of a codec.
type Operation string

const (
	OpDecode Operation = "decode"
	OpEncode Operation = "encode"
)

// Descriptor reports the capabilities of a codec.
type Descriptor struct {
	Name      string `json:"name"`
	CanDecode bool   `json:"decode"`
	CanEncode bool   `json:"encode"`
}

// Supports reports whether the described codec implements op.
func (d Descriptor) Supports(op Operation) bool {
	switch op {
	case OpDecode:
		return d.CanDecode
	case OpEncode:
		return d.CanEncode
	default:
		return false
	}
}

// Describe returns the descriptor of c.
func Describe(c Codec) Descriptor {
	_, dec := c.(Decoder)
	_, enc := c.(Encoder)
	return Descriptor{Name: c.Name(), CanDecode: dec, CanEncode: enc}
}

// AsDecoder returns c as a Decoder, or ErrUnsupportedOperation if it cannot
// decode.
func AsDecoder(c Codec) (Decoder, error) {
	d, ok := c.(Decoder)
	if !ok {
		return nil, unsupported(c, OpDecode)
	}
	return d, nil
}

// AsEncoder returns c as an Encoder, or ErrUnsupportedOperation if it cannot
// encode.
func AsEncoder(c Codec) (Encoder, error) {
	e, ok := c.(Encoder)
	if !ok {
		return nil, unsupported(c, OpEncode)
	}
	return e, nil
}

// MustDecoder is like AsDecoder but panics. It is meant for wiring code
// where the codec is known statically.
func MustDecoder(c Codec) Decoder {
	d, err := AsDecoder(c)
	if err != nil {
		panic(err)
	}
	return d
}

// MustEncoder is like AsEncoder but panics.
func MustEncoder(c Codec) Encoder {
	e, err := AsEncoder(c)
	if err != nil {
		panic(err)
	}
	return e
}

func unsupported(c Codec, op Operation) error {
	return fmt.Errorf("%w: %s does not implement %s", ErrUnsupportedOperation, c.Name(), op)
}
