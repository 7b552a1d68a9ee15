package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

// Format is an on-disk representation of a table.
type Format string

const (
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
	FormatMsgPack    Format = "msgpack"
	FormatProperties Format = "properties"
)

// Formats lists every supported format.
var Formats = []Format{FormatYAML, FormatJSON, FormatMsgPack, FormatProperties}

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(v string) error {
	parsed, err := ParseFormat(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Format) Type() string {
	return "Format"
}

// ParseFormat resolves a format name. "yml" and "mpk" are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mpk":
		return FormatMsgPack, nil
	case "properties":
		return FormatProperties, nil
	default:
		return "", fmt.Errorf("unknown table format %q: must be one of: yaml, json, msgpack, properties", name)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot determine table format of %q: no file extension", path)
	}
	return ParseFormat(ext)
}

// ParseByte parses a table key. Decimal and 0x/0o/0b prefixed values are
// accepted.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %q: must be in [0,255]", s)
	}
	return byte(v), nil
}

func formatKey(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}

// Load reads and parses the table file at path.
func Load(path string) (*Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	t, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", path, err)
	}

	Logger().Debug("loaded transliteration table",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("entries", t.Len()),
	)
	return t.withSource(path), nil
}

// Parse decodes a table from data in the given format.
func Parse(data []byte, format Format) (*Table, error) {
	var (
		entries []Entry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = parseYAML(data)
	case FormatJSON:
		entries, err = parseJSON(data)
	case FormatMsgPack:
		entries, err = parseMsgPack(data)
	case FormatProperties:
		entries, err = parseProperties(data)
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return FromEntries(entries)
}

func parseYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of byte values to glyphs", node.Line)
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		b, err := ParseByte(k.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", k.Line, err)
		}
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			return nil, fmt.Errorf("line %d: glyph for byte 0x%02X must be a string", v.Line, b)
		}
		entries = append(entries, Entry{Value: b, Glyph: v.Value})
	}
	return entries, nil
}

// parseJSON walks the object token by token so that a repeated key reaches
// FromEntries instead of being folded by a map.
func parseJSON(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("json table must be an object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		b, err := ParseByte(key)
		if err != nil {
			return nil, err
		}
		var glyph string
		if err := dec.Decode(&glyph); err != nil {
			return nil, fmt.Errorf("glyph for key %q: %w", key, err)
		}
		entries = append(entries, Entry{Value: b, Glyph: glyph})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after json table")
	}
	return entries, nil
}

func parseMsgPack(data []byte) ([]Entry, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, max(n, 0))
	for i := 0; i < n; i++ {
		key, err := dec.DecodeInterface()
		if err != nil {
			return nil, err
		}
		b, err := byteFromKey(key)
		if err != nil {
			return nil, err
		}
		glyph, err := dec.DecodeString()
		if err != nil {
			return nil, fmt.Errorf("glyph for byte 0x%02X: %w", b, err)
		}
		entries = append(entries, Entry{Value: b, Glyph: glyph})
	}
	return entries, nil
}

func byteFromKey(key any) (byte, error) {
	var v int64
	switch k := key.(type) {
	case string:
		return ParseByte(k)
	case int8:
		v = int64(k)
	case int16:
		v = int64(k)
	case int32:
		v = int64(k)
	case int64:
		v = k
	case uint8:
		return k, nil
	case uint16:
		v = int64(k)
	case uint32:
		v = int64(k)
	case uint64:
		if k > 255 {
			return 0, fmt.Errorf("invalid byte value %d: must be in [0,255]", k)
		}
		v = int64(k)
	default:
		return 0, fmt.Errorf("invalid key type %T", key)
	}
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("invalid byte value %d: must be in [0,255]", v)
	}
	return byte(v), nil
}

// parseProperties validates the whole document first, then loads every
// logical line on its own. The loader keeps only the last value of a
// repeated key, so per-line loading is what lets FromEntries see both.
func parseProperties(data []byte) ([]Entry, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	if _, err := l.LoadBytes(data); err != nil {
		return nil, err
	}

	var entries []Entry
	for _, line := range logicalLines(string(data)) {
		p, err := l.LoadBytes([]byte(line))
		if err != nil {
			return nil, err
		}
		for _, k := range p.Keys() {
			b, err := ParseByte(k)
			if err != nil {
				return nil, err
			}
			g, _ := p.Get(k)
			entries = append(entries, Entry{Value: b, Glyph: g})
		}
	}
	return entries, nil
}

// logicalLines joins continuation lines (an odd number of trailing
// backslashes) and drops blank and comment lines.
func logicalLines(doc string) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	for _, raw := range strings.Split(doc, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if cur.Len() == 0 {
			trimmed := strings.TrimLeft(raw, " \t\f")
			if trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!' {
				continue
			}
		}
		cur.WriteString(raw)
		if trailingBackslashes(raw)%2 == 1 {
			cur.WriteByte('\n')
			continue
		}
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

// Marshal serialises the table in the given format. Keys are written as
// two-digit hex literals.
func (t *Table) Marshal(format Format) ([]byte, error) {
	entries := t.Entries()

	switch format {
	case FormatYAML:
		root := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range entries {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: formatKey(e.Value)},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Glyph, Style: yaml.DoubleQuotedStyle},
			)
		}
		return yaml.Marshal(root)
	case FormatJSON:
		m := make(map[string]string, len(entries))
		for _, e := range entries {
			m[formatKey(e.Value)] = e.Glyph
		}
		return json.MarshalIndent(m, "", "  ")
	case FormatMsgPack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		if err := enc.EncodeMapLen(len(entries)); err != nil {
			return nil, err
		}
		for _, e := range entries {
			if err := enc.EncodeUint(uint64(e.Value)); err != nil {
				return nil, err
			}
			if err := enc.EncodeString(e.Glyph); err != nil {
				return nil, err
			}
		}
		return buf.Bytes(), nil
	case FormatProperties:
		p := properties.NewProperties()
		p.DisableExpansion = true
		for _, e := range entries {
			if _, _, err := p.Set(formatKey(e.Value), e.Glyph); err != nil {
				return nil, err
			}
		}
		var buf bytes.Buffer
		if _, err := p.Write(&buf, properties.UTF8); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported table format %q", format)
	}
}
