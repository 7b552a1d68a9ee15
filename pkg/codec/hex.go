package codec

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const upperHex = "0123456789ABCDEF"

var (
	_ Decoder = Hexify{}
	_ Encoder = Hexify{}
	_ Decoder = HexifySpaces{}
	_ Encoder = HexifySpaces{}
)

// Hexify renders every byte as two uppercase hex digits with no separator.
type Hexify struct{}

func (Hexify) Name() string { return NameHexify }

func (Hexify) Decode(in []byte) (string, error) {
	return strings.ToUpper(hex.EncodeToString(in)), nil
}

// Encode parses the text two characters at a time. Both cases are accepted.
func (Hexify) Encode(text string) ([]byte, error) {
	if len(text)%2 != 0 {
		return nil, &TextError{
			Codec: NameHexify,
			Pos:   len(text) - 1,
			Input: text,
			Err:   fmt.Errorf("%w: odd length %d", ErrInvalidHexDigit, len(text)),
		}
	}

	out := make([]byte, len(text)/2)
	for i := 0; i < len(text); i += 2 {
		pair := text[i : i+2]
		if _, err := hex.Decode(out[i/2:i/2+1], []byte(pair)); err != nil {
			return nil, &TextError{Codec: NameHexify, Pos: i, Input: pair, Err: ErrInvalidHexDigit}
		}
	}
	return out, nil
}

// HexifySpaces renders every byte as two uppercase hex digits, separated by
// single spaces.
type HexifySpaces struct{}

func (HexifySpaces) Name() string { return NameHexifySpaces }

func (HexifySpaces) Decode(in []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(in) * 3)
	for i, b := range in {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(upperHex[b>>4])
		sb.WriteByte(upperHex[b&0x0F])
	}
	return sb.String(), nil
}

// Encode splits the text on any whitespace and parses each token as one
// hex byte.
func (HexifySpaces) Encode(text string) ([]byte, error) {
	tokens := strings.Fields(text)
	out := make([]byte, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, &TextError{Codec: NameHexifySpaces, Pos: i, Input: tok, Err: ErrInvalidHexToken}
		}
		out = append(out, byte(v))
	}
	return out, nil
}
