package terminal

import (
	"testing"

	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

func TestOpcodes(t *testing.T) {
	got := Opcodes("breg")
	if len(got) != 33 {
		t.Fatalf("expected breg0..breg31 and bregx, got %v", got)
	}
	if got[0] != op.DW_OP_breg0 || got[32] != op.DW_OP_bregx {
		t.Fatalf("wrong order %v", got)
	}

	got = Opcodes("DW_OP_deref")
	if len(got) != 2 || got[0] != op.DW_OP_deref || got[1] != op.DW_OP_deref_size {
		t.Fatalf("unexpected %v", got)
	}

	if len(Opcodes("")) != len(op.Mnemonics()) {
		t.Fatal("empty prefix did not match every opcode")
	}
	if len(Opcodes("bogus")) != 0 {
		t.Fatal("unexpected match")
	}
}

func TestOpcodeSummary(t *testing.T) {
	tests := map[op.Opcode]string{
		op.DW_OP_nop:            "DW_OP_nop",
		op.DW_OP_bregx:          "DW_OP_bregx register sleb128",
		op.DW_OP_const2s:        "DW_OP_const2s i16",
		op.DW_OP_implicit_value: "DW_OP_implicit_value block",
		op.DW_OP_deref_size:     "DW_OP_deref_size size",
	}
	for opcode, exp := range tests {
		if got := OpcodeSummary(opcode); got != exp {
			t.Errorf("expected %q got %q", exp, got)
		}
	}
}
