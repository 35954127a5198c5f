package dwarfbuilder

import (
	"bytes"
	"testing"

	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

func TestLocationBlock(t *testing.T) {
	got := LocationBlock(op.DW_OP_breg7, -8, op.DW_OP_plus_uconst, uint(0x80), op.DW_OP_const2s, int16(-2), op.DW_OP_addr, uint64(0x1000))
	exp := []byte{0x77, 0x78, 0x23, 0x80, 0x01, 0x0b, 0xfe, 0xff, 0x03, 0x00, 0x10, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, exp) {
		t.Fatalf("expected %x got %x", exp, got)
	}
}

func TestAssemble(t *testing.T) {
	got, err := Assemble([]string{"DW_OP_breg7", "-8", "deref", "plus_uconst", "0x80", "const2s", "-2", "bregx", "33", "8", "deref_size", "4", "implicit_value", "aabb", "lit3"})
	if err != nil {
		t.Fatal(err)
	}
	exp := LocationBlock(op.DW_OP_breg7, -8, op.DW_OP_deref, op.DW_OP_plus_uconst, uint(0x80), op.DW_OP_const2s, int16(-2),
		op.DW_OP_bregx, uint(33), 8, op.DW_OP_deref_size, uint8(4), op.DW_OP_implicit_value, uint(2), []byte{0xaa, 0xbb}, op.DW_OP_lit3)
	if !bytes.Equal(got, exp) {
		t.Fatalf("expected %x got %x", exp, got)
	}

	// the assembled program must disassemble back to itself
	insts, err := op.Disassemble(got)
	if err != nil {
		t.Fatal(err)
	}
	if len(insts) != 8 {
		t.Fatalf("expected 8 instructions got %d", len(insts))
	}
	if insts[5].Op.Uint != 4 || insts[6].Op.Uint != 2 {
		t.Fatalf("wrong operands %v %v", insts[5].Op, insts[6].Op)
	}
}

func TestAssembleErrors(t *testing.T) {
	for _, fields := range [][]string{
		{"DW_OP_bogus"},
		{"const1u"},
		{"const1u", "256"},
		{"const1s", "x"},
		{"implicit_value", "abc"},
	} {
		if _, err := Assemble(fields); err == nil {
			t.Errorf("%v: expected error", fields)
		}
	}
}
