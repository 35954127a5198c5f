package op

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-delve/dwarfdis/pkg/dwarf/leb128"
	"github.com/go-delve/dwarfdis/pkg/dwarf/util"
)

// Opcode represent a DWARF stack program instruction.
// See ./opcodes.go for a full list.
type Opcode byte

//go:generate go run ../../../scripts/gen-opcodes.go opcodes.table opcodes.go

// Op is a single decoded DWARF stack program instruction.
//
// The operand fields that are meaningful depend only on Opcode, following
// the argument string of the opcode in opcodes.table, one character per
// operand:
//
//	1 2 4 8  unsigned fixed size integer, stored in Uint
//	c h w q  signed 1, 2, 4, 8 byte integer, stored in Int
//	u        ULEB128, stored in Uint
//	s        SLEB128, stored in Int
//	r        ULEB128 register number, stored in Reg
//	z        1 byte size, one of 1, 2, 4, 8, stored in Uint
//	B        ULEB128 length, stored in Uint, followed by that many bytes, stored in Block
//
// For DW_OP_lit0..DW_OP_lit31 Uint holds the literal, for DW_OP_reg0..DW_OP_reg31
// and DW_OP_breg0..DW_OP_breg31 Reg holds the register number.
type Op struct {
	Opcode Opcode
	Uint   uint64
	Int    int64
	Reg    uint64
	Block  []byte // aliases the decoded buffer
}

func (opcode Opcode) String() string {
	if name, ok := opcodeName[opcode]; ok {
		return name
	}
	return fmt.Sprintf("%#x", byte(opcode))
}

// Mnemonic returns the name of the instruction's opcode.
func (o Op) Mnemonic() string {
	return o.Opcode.String()
}

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Mnemonic())
	for _, arg := range opcodeArgs[o.Opcode] {
		sb.WriteByte(' ')
		switch arg {
		case 'r':
			fmt.Fprintf(&sb, "%#x", o.Reg)
		case 'c', 'h', 'w', 'q', 's':
			fmt.Fprintf(&sb, "%#x", o.Int)
		case 'B':
			fmt.Fprintf(&sb, "%d [%x]", o.Uint, o.Block)
		default:
			fmt.Fprintf(&sb, "%#x", o.Uint)
		}
	}
	return sb.String()
}

// Decode decodes the instruction at the start of buf. It returns the
// number of bytes the instruction occupies, including the opcode byte.
// Errors are of type *DecodeError with Offset 0.
func Decode(buf []byte) (int, Op, error) {
	if len(buf) == 0 {
		return 0, Op{}, &DecodeError{Kind: Truncated}
	}
	opcode := Opcode(buf[0])
	args, ok := opcodeArgs[opcode]
	if !ok {
		return 0, Op{}, &DecodeError{Kind: UnknownOpcode, Opcode: opcode}
	}

	o := Op{Opcode: opcode}
	switch {
	case opcode >= DW_OP_lit0 && opcode <= DW_OP_lit31:
		o.Uint = uint64(opcode - DW_OP_lit0)
	case opcode >= DW_OP_reg0 && opcode <= DW_OP_reg31:
		o.Reg = uint64(opcode - DW_OP_reg0)
	case opcode >= DW_OP_breg0 && opcode <= DW_OP_breg31:
		o.Reg = uint64(opcode - DW_OP_breg0)
	}

	sz := 1
	for _, arg := range args {
		n, err := o.decodeArg(arg, buf[sz:])
		if err != nil {
			err.Opcode = opcode
			return 0, Op{}, err
		}
		sz += n
	}
	return sz, o, nil
}

func (o *Op) decodeArg(arg rune, buf []byte) (int, *DecodeError) {
	switch arg {
	case '1', '2', '4', '8':
		sz := int(arg - '0')
		n, err := util.ReadUint(buf, sz)
		if err != nil {
			return 0, &DecodeError{Kind: Truncated}
		}
		o.Uint = n
		return sz, nil
	case 'c', 'h', 'w', 'q':
		sz := signedArgSize[arg]
		n, err := util.ReadInt(buf, sz)
		if err != nil {
			return 0, &DecodeError{Kind: Truncated}
		}
		o.Int = n
		return sz, nil
	case 'u', 'r', 'B':
		n, sz, err := leb128.DecodeUnsigned(buf)
		if err != nil {
			return 0, varintError(buf)
		}
		if arg == 'r' {
			o.Reg = n
			return sz, nil
		}
		o.Uint = n
		if arg == 'B' {
			if n > uint64(len(buf)-sz) {
				return 0, &DecodeError{Kind: Truncated}
			}
			o.Block = buf[sz : sz+int(n) : sz+int(n)]
			sz += int(n)
		}
		return sz, nil
	case 's':
		n, sz, err := leb128.DecodeSigned(buf)
		if err != nil {
			return 0, varintError(buf)
		}
		o.Int = n
		return sz, nil
	case 'z':
		if len(buf) < 1 {
			return 0, &DecodeError{Kind: Truncated}
		}
		switch buf[0] {
		case 1, 2, 4, 8:
			o.Uint = uint64(buf[0])
			return 1, nil
		}
		return 0, &DecodeError{Kind: InvalidOperandSize, Value: uint64(buf[0])}
	}
	panic(fmt.Sprintf("unknown argument kind %q for %s", arg, o.Opcode))
}

var signedArgSize = map[rune]int{'c': 1, 'h': 2, 'w': 4, 'q': 8}

// varintError reports a missing operand as truncated and a started but
// unterminated or oversized one as malformed.
func varintError(buf []byte) *DecodeError {
	if len(buf) == 0 {
		return &DecodeError{Kind: Truncated}
	}
	return &DecodeError{Kind: MalformedVarint}
}

// Lookup returns the opcode with the given mnemonic.
func Lookup(name string) (Opcode, bool) {
	opcode, ok := opcodeByName[name]
	return opcode, ok
}

// Mnemonics returns the names of all supported opcodes, sorted by opcode.
func Mnemonics() []string {
	r := make([]string, 0, len(opcodeName))
	for _, opcode := range sortedOpcodes {
		r = append(r, opcodeName[opcode])
	}
	return r
}

// Args returns the argument string of opcode, see Op.
func Args(opcode Opcode) (string, bool) {
	args, ok := opcodeArgs[opcode]
	return args, ok
}

var (
	opcodeByName  = map[string]Opcode{}
	sortedOpcodes []Opcode
)

func init() {
	for opcode, name := range opcodeName {
		opcodeByName[name] = opcode
		sortedOpcodes = append(sortedOpcodes, opcode)
	}
	sort.Slice(sortedOpcodes, func(i, j int) bool { return sortedOpcodes[i] < sortedOpcodes[j] })
}

// PrettyPrint prints the DWARF stack program instructions to `out`.
// Decoding stops at the first malformed instruction, whose error is
// returned.
func PrettyPrint(out io.Writer, instructions []byte) error {
	insts, err := Disassemble(instructions)
	for i, inst := range insts {
		if i > 0 {
			out.Write([]byte{' '})
		}
		io.WriteString(out, inst.Op.String())
	}
	return err
}
