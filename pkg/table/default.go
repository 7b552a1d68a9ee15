package table

import (
	_ "embed"
	"sync"
)

// DefaultSource names the embedded starter table.
const DefaultSource = "embedded:hexmap.yaml"

//go:embed resources/hexmap.yaml
var defaultHexmap []byte

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// Default returns the embedded starter table. It is parsed on first use and
// shared afterwards.
func Default() *Table {
	defaultTableOnce.Do(func() {
		t, err := Parse(defaultHexmap, FormatYAML)
		if err != nil {
			panic("table: embedded hexmap is invalid: " + err.Error())
		}
		defaultTable = t.withSource(DefaultSource)
	})
	return defaultTable
}
