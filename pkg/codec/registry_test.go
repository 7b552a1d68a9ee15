package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(testTable())

	for _, name := range []string{
		"Hexify",
		"HexifySpaces",
		"ASCII",
		"MonospaceASCIIByte",
		"MonospaceASCII",
		"MajinTenseiIIByte",
		"MajinTenseiII",
		"Mt2GarbageTextPair",
	} {
		c, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestRegistry_UnknownCodec(t *testing.T) {
	r := NewRegistry(testTable())

	c, err := r.Lookup("NoSuchCodec")
	require.ErrorIs(t, err, ErrUnknownCodec)
	assert.Nil(t, c)

	_, err = r.Decoder("NoSuchCodec")
	assert.ErrorIs(t, err, ErrUnknownCodec)
	_, err = r.Encoder("hexify")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestRegistry_Capabilities(t *testing.T) {
	r := NewRegistry(testTable())

	want := []Descriptor{
		{Name: NameHexify, CanDecode: true, CanEncode: true},
		{Name: NameHexifySpaces, CanDecode: true, CanEncode: true},
		{Name: NameASCII, CanDecode: true},
		{Name: NameMonospaceASCIIByte, CanDecode: true},
		{Name: NameMonospaceASCII, CanDecode: true},
		{Name: NameTableByte, CanDecode: true},
		{Name: NameTableText, CanDecode: true},
		{Name: NameGarbageTextPair, CanDecode: true},
	}
	assert.Equal(t, want, r.Descriptors())

	assert.Equal(t, []string{NameHexify, NameHexifySpaces}, r.NamesFor(OpEncode))
	assert.Len(t, r.NamesFor(OpDecode), len(want))
	assert.Len(t, r.Names(), len(want))
}

func TestRegistry_EncodeOnDecodeOnly(t *testing.T) {
	r := NewRegistry(testTable())

	for _, name := range []string{NameASCII, NameTableByte, NameGarbageTextPair} {
		enc, err := r.Encoder(name)
		require.ErrorIs(t, err, ErrUnsupportedOperation, name)
		assert.Nil(t, enc)
		assert.Contains(t, err.Error(), name)
	}

	enc, err := r.Encoder(NameHexifySpaces)
	require.NoError(t, err)
	out, err := enc.Encode("DE AD")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD}, out)
}

func TestMustEncoderPanics(t *testing.T) {
	assert.Panics(t, func() { MustEncoder(ASCII{}) })
	assert.NotPanics(t, func() { MustDecoder(ASCII{}) })
}

func TestDescriptorSupports(t *testing.T) {
	d := Describe(Hexify{})
	assert.True(t, d.Supports(OpDecode))
	assert.True(t, d.Supports(OpEncode))
	assert.False(t, d.Supports(Operation("transcode")))

	d = Describe(NewGarbageTextPair(nil))
	assert.True(t, d.Supports(OpDecode))
	assert.False(t, d.Supports(OpEncode))
}

func TestRegistry_ConcurrentDecode(t *testing.T) {
	r := NewRegistry(testTable())
	dec, err := r.Decoder(NameGarbageTextPair)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := dec.Decode([]byte{0x24, 0x01, 0x54, 0x02})
			if err == nil {
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "āĂあア", got)
	}
}
