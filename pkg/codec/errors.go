package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedByteMapping is returned when a table-backed codec meets a
	// byte the table has no glyph for.
	ErrUndefinedByteMapping = errors.New("undefined byte mapping")
	// ErrInvalidHexToken is returned by HexifySpaces when a whitespace
	// separated token is not a hex byte.
	ErrInvalidHexToken = errors.New("invalid hex token")
	// ErrInvalidHexDigit is returned by Hexify for non-hex input or input of
	// odd length.
	ErrInvalidHexDigit = errors.New("invalid hex digit")
	// ErrUnknownCodec is returned by Registry.Lookup for unregistered names.
	ErrUnknownCodec = errors.New("unknown codec")
	// ErrUnsupportedOperation is returned when a codec is asked for a
	// direction it does not implement.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrByteLength is returned by single byte codecs given anything other
	// than exactly one byte.
	ErrByteLength = errors.New("single byte codec requires exactly one byte")
)

// ByteError describes a decode failure at a position in the input buffer.
type ByteError struct {
	Codec  string
	Offset int
	Value  byte
	Err    error
}

func (e *ByteError) Error() string {
	return fmt.Sprintf("%s: byte 0x%02X at offset %d: %v", e.Codec, e.Value, e.Offset, e.Err)
}

func (e *ByteError) Unwrap() error {
	return e.Err
}

// TextError describes an encode failure at a position in the input text.
// Pos counts bytes for Hexify and tokens for HexifySpaces.
type TextError struct {
	Codec string
	Pos   int
	Input string
	Err   error
}

func (e *TextError) Error() string {
	return fmt.Sprintf("%s: %q at position %d: %v", e.Codec, e.Input, e.Pos, e.Err)
}

func (e *TextError) Unwrap() error {
	return e.Err
}
