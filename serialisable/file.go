package serialisable

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads path and decodes it as either textual or condensed
// binary, chosen by its extension (".cjson"/".bin" select binary,
// anything else selects text).
func LoadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, fmt.Errorf("serialisable: reading %s: %w", path, err)
	}
	if isCondensedExt(path) {
		return DecodeCondensed(data)
	}
	return DecodeText(data)
}

// SaveFile encodes v per path's extension and writes it, following the
// same binary/text selection rule as LoadFile.
func SaveFile(path string, v Value) error {
	return SaveFileWithPrecision(path, v, DefaultCondensedEncodeOptions())
}

// SaveFileWithPrecision is SaveFile with explicit control over the
// condensed encoder's floating-point precision preference; it has no
// effect when path's extension selects the textual form.
func SaveFileWithPrecision(path string, v Value, opts CondensedEncodeOptions) error {
	var data []byte
	if isCondensedExt(path) {
		data = EncodeCondensed(v, opts)
	} else {
		data = []byte(EncodeText(v, DefaultTextEncodeOptions()))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("serialisable: writing %s: %w", path, err)
	}
	return nil
}

func isCondensedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cjson", ".bin":
		return true
	default:
		return false
	}
}
