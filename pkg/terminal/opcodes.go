package terminal

import (
	"sort"
	"strings"

	"github.com/derekparker/trie"

	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

const mnemonicPrefix = "DW_OP_"

var mnemonics = func() *trie.Trie {
	t := trie.New()
	for _, name := range op.Mnemonics() {
		opcode, _ := op.Lookup(name)
		t.Add(name, opcode)
	}
	return t
}()

// Opcodes returns the opcodes whose mnemonic starts with prefix, sorted by
// value. The DW_OP_ prefix of mnemonics can be omitted.
func Opcodes(prefix string) []op.Opcode {
	if !strings.HasPrefix(prefix, mnemonicPrefix) {
		prefix = mnemonicPrefix + prefix
	}
	var r []op.Opcode
	for _, name := range mnemonics.PrefixSearch(prefix) {
		node, ok := mnemonics.Find(name)
		if !ok {
			continue
		}
		r = append(r, node.Meta().(op.Opcode))
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

var argDescr = map[rune]string{
	'1': "u8", '2': "u16", '4': "u32", '8': "u64",
	'c': "i8", 'h': "i16", 'w': "i32", 'q': "i64",
	'u': "uleb128", 's': "sleb128", 'r': "register",
	'z': "size", 'B': "block",
}

// OpcodeSummary describes opcode and the operands it takes.
func OpcodeSummary(opcode op.Opcode) string {
	args, _ := op.Args(opcode)
	var sb strings.Builder
	sb.WriteString(opcode.String())
	for _, arg := range args {
		sb.WriteByte(' ')
		sb.WriteString(argDescr[arg])
	}
	return sb.String()
}
