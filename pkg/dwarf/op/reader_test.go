package op

import (
	"errors"
	"io"
	"testing"
)

func TestDisassemble(t *testing.T) {
	// DW_OP_breg7 -8; DW_OP_deref; DW_OP_plus_uconst 0x10; DW_OP_const2s -2; DW_OP_bra 0; DW_OP_stack_value
	buf := []byte{0x77, 0x78, 0x06, 0x23, 0x10, 0x0b, 0xfe, 0xff, 0x28, 0x00, 0x00, 0x9f}
	insts, err := Disassemble(buf)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Opcode{DW_OP_breg7, DW_OP_deref, DW_OP_plus_uconst, DW_OP_const2s, DW_OP_bra, DW_OP_stack_value}
	if len(insts) != len(expected) {
		t.Fatalf("expected %d instructions got %d", len(expected), len(insts))
	}
	off := 0
	for i, inst := range insts {
		if inst.Op.Opcode != expected[i] {
			t.Errorf("instruction %d: expected %s got %s", i, expected[i], inst.Op.Opcode)
		}
		if inst.Offset != off {
			t.Errorf("instruction %d: expected offset %d got %d", i, off, inst.Offset)
		}
		off += inst.Size
	}
	if off != len(buf) {
		t.Fatalf("instructions cover %d bytes, buffer is %d", off, len(buf))
	}
	if insts[0].Op.Int != -8 || insts[3].Op.Int != -2 {
		t.Errorf("wrong operands %v %v", insts[0].Op, insts[3].Op)
	}
}

func TestDisassembleEmpty(t *testing.T) {
	insts, err := Disassemble(nil)
	if err != nil || len(insts) != 0 {
		t.Fatalf("expected nothing got %v %v", insts, err)
	}
}

func TestDisassemblePartial(t *testing.T) {
	// DW_OP_lit1; DW_OP_lit2; DW_OP_const1u <missing>
	insts, err := Disassemble([]byte{0x31, 0x32, 0x08})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError got %v", err)
	}
	if derr.Kind != Truncated || derr.Offset != 2 || derr.Opcode != DW_OP_const1u {
		t.Fatalf("unexpected error %#v", derr)
	}
	if len(insts) != 2 || insts[0].Op.Uint != 1 || insts[1].Op.Uint != 2 {
		t.Fatalf("partial results lost: %v", insts)
	}

	insts, err = Disassemble([]byte{0x96, 0x96, 0x96, 0xee, 0x96})
	if !errors.As(err, &derr) || derr.Kind != UnknownOpcode || derr.Offset != 3 || derr.Opcode != 0xee {
		t.Fatalf("unexpected error %v", err)
	}
	if len(insts) != 3 {
		t.Fatalf("expected 3 instructions got %d", len(insts))
	}
}

func TestReader(t *testing.T) {
	r := NewReader([]byte{0x30, 0x94, 0x03})
	inst, err := r.Next()
	if err != nil || inst.Op.Opcode != DW_OP_lit0 || inst.Size != 1 {
		t.Fatalf("unexpected first instruction %v %v", inst, err)
	}
	if r.Offset() != 1 {
		t.Fatalf("expected offset 1 got %d", r.Offset())
	}
	_, err = r.Next()
	if !errors.Is(err, ErrInvalidOperandSize) {
		t.Fatalf("expected ErrInvalidOperandSize got %v", err)
	}
	_, err2 := r.Next()
	if err2 != err {
		t.Fatalf("error not sticky: %v %v", err, err2)
	}
	if err.Error() != "invalid size 3 for DW_OP_deref_size at offset 0x1" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	r.Reset()
	if _, err := r.Next(); err != nil {
		t.Fatalf("reset did not clear error: %v", err)
	}

	r = NewReader([]byte{0x96})
	if _, err := r.Next(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Next(); err != io.EOF {
			t.Fatalf("expected io.EOF got %v", err)
		}
	}
}
