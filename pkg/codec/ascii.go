package codec

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// MonospaceBase is added to a non-printable byte value to pick its
// substitute glyph, so substitutes occupy U+0100..U+01FF and never collide
// with a printable byte.
const MonospaceBase rune = 0x100

var (
	_ Decoder = ASCII{}
	_ Decoder = MonospaceASCIIByte{}
	_ Decoder = MonospaceASCII{}
)

// ASCII maps every byte to the code point of the same value. Bytes above
// 0x7F come out as their Latin-1 characters; callers that need strict
// 7-bit input must check it themselves.
type ASCII struct{}

func (ASCII) Name() string { return NameASCII }

func (ASCII) Decode(in []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(in)
	if err != nil {
		return "", fmt.Errorf("%s: %w", NameASCII, err)
	}
	return string(out), nil
}

// MonospaceRune returns the single glyph shown for b: the byte's own code
// point when that is printable, its substitute otherwise.
func MonospaceRune(b byte) rune {
	r := rune(b)
	if unicode.IsPrint(r) {
		return r
	}
	return MonospaceBase + r
}

// MonospaceASCIIByte decodes exactly one byte with MonospaceRune.
type MonospaceASCIIByte struct{}

func (MonospaceASCIIByte) Name() string { return NameMonospaceASCIIByte }

func (MonospaceASCIIByte) Decode(in []byte) (string, error) {
	if len(in) != 1 {
		return "", fmt.Errorf("%s: %w: got %d", NameMonospaceASCIIByte, ErrByteLength, len(in))
	}
	return string(MonospaceRune(in[0])), nil
}

// MonospaceASCII applies MonospaceRune to every byte, so the output always
// has exactly one glyph per input byte.
type MonospaceASCII struct{}

func (MonospaceASCII) Name() string { return NameMonospaceASCII }

func (MonospaceASCII) Decode(in []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(in) * 2)
	for _, b := range in {
		sb.WriteRune(MonospaceRune(b))
	}
	return sb.String(), nil
}
