package codec

import (
	"fmt"
	"sort"

	"github.com/romhack/romtext/pkg/table"
)

// Registered codec names.
const (
	NameHexify             = "Hexify"
	NameHexifySpaces       = "HexifySpaces"
	NameASCII              = "ASCII"
	NameMonospaceASCIIByte = "MonospaceASCIIByte"
	NameMonospaceASCII     = "MonospaceASCII"
	NameTableByte          = "MajinTenseiIIByte"
	NameTableText          = "MajinTenseiII"
	NameGarbageTextPair    = "Mt2GarbageTextPair"
)

// Registry looks codecs up by name. It is filled once by NewRegistry and is
// safe for concurrent reads afterwards.
type Registry struct {
	codecs map[string]Codec
	order  []string
}

// NewRegistry returns a registry holding every built-in codec. Table-backed
// codecs use t.
func NewRegistry(t *table.Table) *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	r.register(Hexify{})
	r.register(HexifySpaces{})
	r.register(ASCII{})
	r.register(MonospaceASCIIByte{})
	r.register(MonospaceASCII{})
	r.register(NewTableByte(t))
	r.register(NewTableText(t))
	r.register(NewGarbageTextPair(t))
	return r
}

func (r *Registry) register(c Codec) {
	name := c.Name()
	if _, ok := r.codecs[name]; ok {
		panic(fmt.Sprintf("codec: duplicate registration of %s", name))
	}
	r.codecs[name] = c
	r.order = append(r.order, name)
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	c, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Decoder looks up name and checks that it can decode.
func (r *Registry) Decoder(name string) (Decoder, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return AsDecoder(c)
}

// Encoder looks up name and checks that it can encode.
func (r *Registry) Encoder(name string) (Encoder, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return AsEncoder(c)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// NamesFor returns the names of codecs that support op, sorted.
func (r *Registry) NamesFor(op Operation) []string {
	var names []string
	for _, d := range r.Descriptors() {
		if d.Supports(op) {
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Descriptors describes every registered codec in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Describe(r.codecs[name]))
	}
	return out
}
