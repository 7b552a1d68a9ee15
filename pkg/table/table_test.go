package table

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestLookup(t *testing.T) {
	tbl := New(map[byte]string{0x00: "0", 0x41: "ア", 0xFF: "END"})

	g, ok := tbl.Lookup(0x41)
	require.True(t, ok)
	assert.Equal(t, "ア", g)

	g, ok = tbl.Lookup(0xFF)
	require.True(t, ok)
	assert.Equal(t, "END", g)

	_, ok = tbl.Lookup(0x42)
	assert.False(t, ok)

	assert.Equal(t, 3, tbl.Len())
	assert.Len(t, tbl.Missing(), Size-3)
}

func TestNilTable(t *testing.T) {
	var tbl *Table
	_, ok := tbl.Lookup(0)
	assert.False(t, ok)
	assert.Equal(t, 0, tbl.Len())
	assert.Nil(t, tbl.Entries())
	assert.Len(t, tbl.Missing(), Size)
}

func TestEntriesOrdered(t *testing.T) {
	tbl := New(map[byte]string{0x90: "c", 0x01: "a", 0x10: "b"})
	assert.Equal(t, []Entry{
		{Value: 0x01, Glyph: "a"},
		{Value: 0x10, Glyph: "b"},
		{Value: 0x90, Glyph: "c"},
	}, tbl.Entries())
}

func TestFromEntries_Duplicate(t *testing.T) {
	_, err := FromEntries([]Entry{{Value: 1, Glyph: "a"}, {Value: 1, Glyph: "b"}})
	require.Error(t, err)
}

func TestParseByte(t *testing.T) {
	tests := []struct {
		in      string
		want    byte
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "65", want: 65},
		{in: "0x41", want: 0x41},
		{in: "0XfF", want: 0xFF},
		{in: " 12 ", want: 12},
		{in: "256", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "A", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseByte(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYAML(t *testing.T) {
	tbl, err := Parse([]byte(`
0: "あ"
0x01: い
2: "1"
0x7f: " "
`), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	g, _ := tbl.Lookup(0)
	assert.Equal(t, "あ", g)
	g, _ = tbl.Lookup(1)
	assert.Equal(t, "い", g)
	g, _ = tbl.Lookup(2)
	assert.Equal(t, "1", g)
	g, _ = tbl.Lookup(0x7F)
	assert.Equal(t, " ", g)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := map[string]string{
		"out of range": `300: "x"`,
		"not a byte":   `foo: "x"`,
		"null glyph":   `0x01: ~`,
		"not a map":    `- a`,
		"nested value": "0x01:\n  a: b",
		"duplicate":    "1: a\n0x01: b",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), FormatYAML)
			require.Error(t, err)
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	tbl, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
}

func TestParseJSON(t *testing.T) {
	tbl, err := Parse([]byte(`{"0x41": "ア", "66": "イ"}`), FormatJSON)
	require.NoError(t, err)

	g, ok := tbl.Lookup(0x41)
	require.True(t, ok)
	assert.Equal(t, "ア", g)
	g, ok = tbl.Lookup(66)
	require.True(t, ok)
	assert.Equal(t, "イ", g)
}

func TestParseMsgPack(t *testing.T) {
	data, err := msgpack.Marshal(map[any]string{
		uint8(1): "a",
		200:      "b",
		"0x10":   "c",
	})
	require.NoError(t, err)

	tbl, err := Parse(data, FormatMsgPack)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Value: 0x01, Glyph: "a"},
		{Value: 0x10, Glyph: "c"},
		{Value: 200, Glyph: "b"},
	}, tbl.Entries())
}

func TestParseMsgPack_OutOfRange(t *testing.T) {
	data, err := msgpack.Marshal(map[int]string{256: "x"})
	require.NoError(t, err)
	_, err = Parse(data, FormatMsgPack)
	require.Error(t, err)
}

func TestParseProperties(t *testing.T) {
	tbl, err := Parse([]byte("# comment\n0x41 = ア\n66=${not-expanded}\n"), FormatProperties)
	require.NoError(t, err)

	g, ok := tbl.Lookup(0x41)
	require.True(t, ok)
	assert.Equal(t, "ア", g)
	g, ok = tbl.Lookup(66)
	require.True(t, ok)
	assert.Equal(t, "${not-expanded}", g)
}

func TestParse_DuplicateKeys(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{name: "json same spelling", format: FormatJSON, doc: `{"0x41": "A", "0x41": "B"}`},
		{name: "json different spelling", format: FormatJSON, doc: `{"65": "A", "0x41": "B"}`},
		{name: "properties same spelling", format: FormatProperties, doc: "0x41=A\n0x41=B\n"},
		{name: "properties different spelling", format: FormatProperties, doc: "65=A\n0x41 : B\n"},
		{name: "properties after continuation", format: FormatProperties, doc: "0x41=A\\\n  still A\n0x41=B\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "duplicate entry for byte 0x41")
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	tests := map[string]string{
		"not an object": `["a"]`,
		"numeric glyph": `{"0x01": 1}`,
		"out of range":  `{"0x100": "x"}`,
		"trailing data": `{"0x01": "a"} {}`,
		"truncated":     `{"0x01": "a"`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), FormatJSON)
			require.Error(t, err)
		})
	}
}

func TestParseProperties_Continuation(t *testing.T) {
	doc := "! header\n0x01 = first \\\n    second\n\n# 0x01 = commented out\n0x02 = ends with \\\\\n0x03 = c\n"
	tbl, err := Parse([]byte(doc), FormatProperties)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Value: 0x01, Glyph: "first second"},
		{Value: 0x02, Glyph: "ends with \\"},
		{Value: 0x03, Glyph: "c"},
	}, tbl.Entries())
}

func TestMarshalRoundTrip(t *testing.T) {
	src := New(map[byte]string{0x00: "0", 0x22: "\"", 0x41: "ア", 0x80: "が", 0xFE: "…"})

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data, err := src.Marshal(format)
			require.NoError(t, err)

			got, err := Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, src.Entries(), got.Entries())
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexmap.yml")
	require.NoError(t, os.WriteFile(path, []byte("0x41: ア\n"), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Source())
	assert.Equal(t, 1, tbl.Len())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	noExt := filepath.Join(dir, "hexmap")
	require.NoError(t, os.WriteFile(noExt, []byte("0: a"), 0o644))
	_, err = Load(noExt)
	require.Error(t, err)

	unknown := filepath.Join(dir, "hexmap.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("0 = 'a'"), 0o644))
	_, err = Load(unknown)
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(".YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("mpk")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgPack, f)

	var flagValue Format
	require.NoError(t, flagValue.Set("properties"))
	assert.Equal(t, FormatProperties, flagValue)
	require.Error(t, flagValue.Set("xml"))
}

func TestDefault(t *testing.T) {
	tbl := Default()
	require.NotNil(t, tbl)
	assert.Equal(t, DefaultSource, tbl.Source())

	g, ok := tbl.Lookup(0x00)
	require.True(t, ok)
	assert.Equal(t, "0", g)

	g, ok = tbl.Lookup(0x0A)
	require.True(t, ok)
	assert.Equal(t, "A", g)

	g, ok = tbl.Lookup(0x24)
	require.True(t, ok)
	assert.Equal(t, "あ", g)

	_, ok = tbl.Lookup(0xFF)
	assert.False(t, ok)
}

func TestDefault_ConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl := Default()
			for b := 0; b < Size; b++ {
				tbl.Lookup(byte(b))
			}
		}()
	}
	wg.Wait()
	assert.Same(t, Default(), Default())
}
