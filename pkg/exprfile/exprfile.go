// Package exprfile loads DWARF stack programs from files.
//
// A program can be stored as raw bytes, as hex text, or inside a section
// of an ELF file. The caller chooses the range of bytes containing the
// program, for example from a location list entry.
package exprfile

import (
	"debug/elf"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-delve/dwarfdis/pkg/logflags"
)

// Options selects what part of a file is loaded.
type Options struct {
	// Offset of the first byte of the program.
	Offset int64
	// Length of the program, zero or negative means up to the end.
	Length int64
	// Section is the name of the ELF section containing the program, the
	// file is read as a whole if empty.
	Section string
	// Hex means the file contains hex text instead of raw bytes.
	Hex bool
}

// ErrOutOfRange is returned when the requested range is outside of the data.
var ErrOutOfRange = errors.New("range out of bounds")

// Load reads the program selected by opts from the file at path.
func Load(path string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case opts.Section != "" && opts.Hex:
		return nil, errors.New("a section can not be read from a hex file")
	case opts.Section != "":
		data, err = loadSection(path, opts.Section)
	case opts.Hex:
		var text []byte
		text, err = os.ReadFile(path)
		if err == nil {
			data, err = ParseHex(string(text))
		}
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}

	if logflags.Loader() {
		logflags.LoaderLogger().WithField("path", path).Debugf("read %d bytes (section %q, hex %v)", len(data), opts.Section, opts.Hex)
	}

	data, err = Slice(data, opts.Offset, opts.Length)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", path, err)
	}
	return data, nil
}

// Slice returns the length bytes of data starting at offset. A length of
// zero or less selects everything after offset.
func Slice(data []byte, offset, length int64) ([]byte, error) {
	if offset < 0 || offset > int64(len(data)) {
		return nil, fmt.Errorf("offset %#x: %w (size %#x)", offset, ErrOutOfRange, len(data))
	}
	if length <= 0 {
		return data[offset:], nil
	}
	if length > int64(len(data))-offset {
		return nil, fmt.Errorf("offset %#x length %#x: %w (size %#x)", offset, length, ErrOutOfRange, len(data))
	}
	return data[offset : offset+length], nil
}

func loadSection(path, name string) ([]byte, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sec := f.Section(name)
	if sec == nil {
		return nil, fmt.Errorf("could not find section %s", name)
	}
	if sec.Type == elf.SHT_NOBITS {
		return nil, fmt.Errorf("section %s has no data", name)
	}
	return sec.Data()
}

// ParseHex decodes hex text. Whitespace, 0x prefixes, commas and comments
// starting with # are ignored.
func ParseHex(text string) ([]byte, error) {
	var sb strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if j := strings.IndexByte(line, '#'); j >= 0 {
			line = line[:j]
		}
		for _, field := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\r' }) {
			field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
			if len(field)%2 != 0 {
				return nil, fmt.Errorf("line %d: odd number of digits in %q", i+1, field)
			}
			sb.WriteString(field)
		}
	}
	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}
