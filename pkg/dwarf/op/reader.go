package op

import (
	"io"

	"github.com/go-delve/dwarfdis/pkg/logflags"
)

// Instruction is an instruction decoded at Offset bytes from the start of
// a stack program.
type Instruction struct {
	Offset int
	Size   int
	Op     Op
}

// Reader decodes the instructions of a stack program one at a time.
type Reader struct {
	buf []byte
	off int
	err error
	log logflags.Logger
}

// NewReader returns a Reader positioned at the start of instructions.
func NewReader(instructions []byte) *Reader {
	r := &Reader{buf: instructions}
	if logflags.DwarfOp() {
		r.log = logflags.DwarfOpLogger()
	}
	return r
}

// Offset returns the offset of the next instruction.
func (r *Reader) Offset() int {
	return r.off
}

// Reset moves the reader back to the start of the stack program.
func (r *Reader) Reset() {
	r.off = 0
	r.err = nil
}

// Next decodes the next instruction. It returns io.EOF once every byte of
// the program has been consumed. A decoding error is a *DecodeError with
// an absolute offset, and is returned again by every later call.
func (r *Reader) Next() (Instruction, error) {
	if r.err != nil {
		return Instruction{}, r.err
	}
	if r.off >= len(r.buf) {
		return Instruction{}, io.EOF
	}
	sz, op, err := Decode(r.buf[r.off:])
	if err != nil {
		derr := err.(*DecodeError)
		derr.Offset += r.off
		r.err = derr
		if r.log != nil {
			r.log.WithError(derr).Debugf("%04x: decoding failed", r.off)
		}
		return Instruction{}, derr
	}
	inst := Instruction{Offset: r.off, Size: sz, Op: op}
	if r.log != nil {
		r.log.Debugf("%04x: %v", r.off, op)
	}
	r.off += sz
	return inst, nil
}

// Disassemble decodes every instruction of a stack program.
// If an instruction can not be decoded the instructions preceding it are
// returned together with the error.
func Disassemble(instructions []byte) ([]Instruction, error) {
	r := NewReader(instructions)
	var insts []Instruction
	for {
		inst, err := r.Next()
		if err == io.EOF {
			return insts, nil
		}
		if err != nil {
			return insts, err
		}
		insts = append(insts, inst)
	}
}
