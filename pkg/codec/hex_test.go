package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexify_DecodeEveryByte(t *testing.T) {
	for b := 0; b < 256; b++ {
		got, err := Hexify{}.Decode([]byte{byte(b)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, fmt.Sprintf("%02X", b), got)
		assert.Equal(t, strings.ToUpper(got), got)

		back, err := Hexify{}.Encode(got)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(b)}, back)
	}
}

func TestHexify_Decode(t *testing.T) {
	got, err := Hexify{}.Decode([]byte{0x00, 0x0A, 0xBE, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, "000ABEEF", got)

	got, err = Hexify{}.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestHexify_Encode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{name: "empty", in: "", want: []byte{}},
		{name: "one byte", in: "41", want: []byte{0x41}},
		{name: "pairs", in: "4142FF00", want: []byte{0x41, 0x42, 0xFF, 0x00}},
		{name: "lower case", in: "beef", want: []byte{0xBE, 0xEF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hexify{}.Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// legacyHexifyEncode reproduces the historic behaviour of stepping one
// character at a time, which reads overlapping windows.
func legacyHexifyEncode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		end := min(i+2, len(s))
		v, _ := strconv.ParseUint(s[i:end], 16, 8)
		out = append(out, byte(v))
	}
	return out
}

func TestHexify_EncodeStepsByPairs(t *testing.T) {
	got, err := Hexify{}.Encode("4142")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x42}, got)

	legacy := legacyHexifyEncode("4142")
	assert.Equal(t, []byte{0x41, 0x14, 0x42, 0x02}, legacy)
	assert.NotEqual(t, legacy, got)
}

func TestHexify_EncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantPos int
	}{
		{name: "odd length", in: "414", wantPos: 2},
		{name: "bad digit", in: "41G2", wantPos: 2},
		{name: "space", in: "41 2", wantPos: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Hexify{}.Encode(tt.in)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, ErrInvalidHexDigit))

			var te *TextError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantPos, te.Pos)
		})
	}
}

func TestHexifySpaces_Decode(t *testing.T) {
	got, err := HexifySpaces{}.Decode([]byte{0x00, 0x41, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, "00 41 FF", got)

	got, err = HexifySpaces{}.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestHexifySpaces_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0x01, 0x7F, 0x80, 0xFF},
		[]byte("Majin Tensei II"),
	}

	for _, in := range inputs {
		text, err := HexifySpaces{}.Decode(in)
		require.NoError(t, err)

		if len(in) > 0 {
			tokens := strings.Split(text, " ")
			require.Len(t, tokens, len(in))
			for _, tok := range tokens {
				_, err := strconv.ParseUint(tok, 16, 8)
				require.NoError(t, err)
			}
		}

		back, err := HexifySpaces{}.Encode(text)
		require.NoError(t, err)
		assert.Equal(t, in, back)
	}
}

func TestHexifySpaces_EncodeLenientWhitespace(t *testing.T) {
	got, err := HexifySpaces{}.Encode("  1 a\tff\n0B ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x0A, 0xFF, 0x0B}, got)
}

func TestHexifySpaces_EncodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantPos int
	}{
		{name: "not hex", in: "41 ZZ", wantPos: 1},
		{name: "too large", in: "100", wantPos: 0},
		{name: "prefix", in: "00 0x41", wantPos: 1},
		{name: "negative", in: "-1", wantPos: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := HexifySpaces{}.Encode(tt.in)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, ErrInvalidHexToken)

			var te *TextError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantPos, te.Pos)
		})
	}
}
