package app

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/romhack/romtext/pkg/codec"
)

// ParseOffset parses a byte offset or length. Decimal and 0x prefixed
// values are accepted; an empty string is zero.
func ParseOffset(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid offset %q: must be a non-negative integer", s)
	}
	return v, nil
}

// Slice returns length bytes of data starting at offset. A length of zero
// means "to the end".
func Slice(data []byte, offset, length int64) ([]byte, error) {
	size := int64(len(data))
	if offset > size {
		return nil, fmt.Errorf("offset 0x%X is past the end of the input (0x%X bytes)", offset, size)
	}
	if length == 0 {
		return data[offset:], nil
	}
	if length > size-offset {
		return nil, fmt.Errorf("range 0x%X+0x%X is past the end of the input (0x%X bytes)", offset, length, size)
	}
	return data[offset : offset+length], nil
}

// ReadInput reads the file at path, or the app's input reader when path is
// empty. Hex input is converted to bytes before it is returned.
func (a *App) ReadInput(path string, format InputFormat) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = io.ReadAll(a.InReader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if format == InputFormatHex {
		data, err = codec.HexifySpaces{}.Encode(string(data))
		if err != nil {
			return nil, fmt.Errorf("parse hex input: %w", err)
		}
	}
	return data, nil
}

// PatchFile overwrites len(data) bytes of the file at path starting at
// offset. The file must already be large enough; ROM images never grow.
func PatchFile(path string, offset int64, data []byte) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if end := offset + int64(len(data)); end > info.Size() {
		return fmt.Errorf("patch 0x%X+0x%X does not fit in %s (0x%X bytes)", offset, len(data), path, info.Size())
	}

	if _, err := f.WriteAt(data, offset); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}
