package terminal

import (
	"bytes"
	"testing"

	"github.com/go-delve/dwarfdis/pkg/config"
	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

func TestPrinter(t *testing.T) {
	program := []byte{0x77, 0x78, 0x03, 1, 0, 0, 0, 0, 0, 0, 0, 0x9f}
	insts, err := op.Disassemble(program)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	p := &Printer{Out: &out}
	if err := p.Print(program, insts); err != nil {
		t.Fatal(err)
	}
	exp := "0000: DW_OP_breg7 -0x8\n0002: DW_OP_addr 0x1\n000b: DW_OP_stack_value\n"
	if out.String() != exp {
		t.Fatalf("expected %q got %q", exp, out.String())
	}

	out.Reset()
	p.ShowBytes = true
	if err := p.Print(program, insts); err != nil {
		t.Fatal(err)
	}
	exp = "0000: 7778               DW_OP_breg7 -0x8\n0002: 030100000000000000 DW_OP_addr 0x1\n000b: 9f                 DW_OP_stack_value\n"
	if out.String() != exp {
		t.Fatalf("expected %q got %q", exp, out.String())
	}
}

func TestPrinterColor(t *testing.T) {
	var out bytes.Buffer
	p := &Printer{Out: &out, Color: true, MnemonicColor: 32}
	insts := []op.Instruction{{Offset: 0, Size: 2, Op: op.Op{Opcode: op.DW_OP_const1u, Uint: 42}}}
	if err := p.Print([]byte{0x08, 0x2a}, insts); err != nil {
		t.Fatal(err)
	}
	exp := "0000: \033[32mDW_OP_const1u\033[0m 0x2a\n"
	if out.String() != exp {
		t.Fatalf("expected %q got %q", exp, out.String())
	}

	p.MnemonicColor = 50
	if p.color() != ansiBlue {
		t.Fatalf("invalid color not replaced")
	}
}

func TestColorEnabled(t *testing.T) {
	if !ColorEnabled(config.ColorAlways, nil) {
		t.Fatal("always mode disabled color")
	}
	if ColorEnabled(config.ColorNever, nil) {
		t.Fatal("never mode enabled color")
	}
	t.Setenv("TERM", "dumb")
	if ColorEnabled(config.ColorAuto, nil) {
		t.Fatal("color enabled on dumb terminal")
	}
}
