// Package dwarfbuilder provides a way to build DWARF stack programs with
// arbitrary contents.
package dwarfbuilder

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-delve/dwarfdis/pkg/dwarf/leb128"
	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

// LocationBlock returns a DWARF expression corresponding to the list of
// arguments.
// Opcodes are written as a single byte, int as SLEB128, uint as ULEB128,
// sized integers as little endian fixed width values and byte slices
// verbatim.
func LocationBlock(args ...interface{}) []byte {
	var buf bytes.Buffer
	for _, arg := range args {
		switch x := arg.(type) {
		case op.Opcode:
			buf.WriteByte(byte(x))
		case int:
			leb128.EncodeSigned(&buf, int64(x))
		case uint:
			leb128.EncodeUnsigned(&buf, uint64(x))
		case uint8, int8, uint16, int16, uint32, int32, uint64, int64:
			binary.Write(&buf, binary.LittleEndian, x)
		case []byte:
			buf.Write(x)
		default:
			panic("unsupported value type")
		}
	}
	return buf.Bytes()
}

// Assemble encodes a textual stack program, for example
//
//	DW_OP_breg7 -8 DW_OP_deref DW_OP_plus_uconst 0x10
//
// The DW_OP_ prefix of mnemonics can be omitted. Every opcode must be
// followed by exactly the operands it takes; the operand of
// DW_OP_implicit_value is a hex string.
func Assemble(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	for i := 0; i < len(fields); i++ {
		name := fields[i]
		if !strings.HasPrefix(name, "DW_OP_") {
			name = "DW_OP_" + name
		}
		opcode, ok := op.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown opcode %q", fields[i])
		}
		buf.WriteByte(byte(opcode))
		args, _ := op.Args(opcode)
		for _, arg := range args {
			i++
			if i >= len(fields) {
				return nil, fmt.Errorf("missing operand for %s", opcode)
			}
			if err := assembleArg(&buf, arg, fields[i]); err != nil {
				return nil, fmt.Errorf("operand %q of %s: %v", fields[i], opcode, err)
			}
		}
	}
	return buf.Bytes(), nil
}

func assembleArg(buf *bytes.Buffer, arg rune, s string) error {
	switch arg {
	case '1', '2', '4', '8':
		sz := int(arg - '0')
		n, err := strconv.ParseUint(s, 0, sz*8)
		if err != nil {
			return err
		}
		writeFixed(buf, n, sz)
	case 'c', 'h', 'w', 'q':
		sz := map[rune]int{'c': 1, 'h': 2, 'w': 4, 'q': 8}[arg]
		n, err := strconv.ParseInt(s, 0, sz*8)
		if err != nil {
			return err
		}
		writeFixed(buf, uint64(n), sz)
	case 'u', 'r':
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		leb128.EncodeUnsigned(buf, n)
	case 's':
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return err
		}
		leb128.EncodeSigned(buf, n)
	case 'z':
		n, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return err
		}
		buf.WriteByte(byte(n))
	case 'B':
		data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		if err != nil {
			return err
		}
		leb128.EncodeUnsigned(buf, uint64(len(data)))
		buf.Write(data)
	default:
		return fmt.Errorf("unsupported argument kind %q", arg)
	}
	return nil
}

func writeFixed(buf *bytes.Buffer, n uint64, sz int) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	buf.Write(b[:sz])
}
