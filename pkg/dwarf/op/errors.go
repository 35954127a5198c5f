package op

import (
	"errors"
	"fmt"
)

// ErrorKind identifies why an instruction could not be decoded.
type ErrorKind uint8

const (
	// UnknownOpcode means the leading byte is not a supported opcode.
	UnknownOpcode ErrorKind = iota + 1
	// Truncated means a mandatory operand extends past the end of the buffer.
	Truncated
	// MalformedVarint means a LEB128 operand never terminates or does not
	// fit in 64 bits.
	MalformedVarint
	// InvalidOperandSize means a size operand is not one of 1, 2, 4 or 8.
	InvalidOperandSize
)

// Sentinel errors matched by DecodeError through errors.Is.
var (
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrTruncated          = errors.New("truncated instruction")
	ErrMalformedVarint    = errors.New("malformed LEB128 operand")
	ErrInvalidOperandSize = errors.New("invalid operand size")
)

var kindErrors = map[ErrorKind]error{
	UnknownOpcode:      ErrUnknownOpcode,
	Truncated:          ErrTruncated,
	MalformedVarint:    ErrMalformedVarint,
	InvalidOperandSize: ErrInvalidOperandSize,
}

func (k ErrorKind) String() string {
	if err, ok := kindErrors[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// DecodeError is returned when an instruction can not be decoded.
type DecodeError struct {
	Kind ErrorKind
	// Offset of the instruction's opcode byte.
	Offset int
	// Opcode is the leading byte of the instruction, zero if the buffer was empty.
	Opcode Opcode
	// Value is the rejected operand for InvalidOperandSize.
	Value uint64
}

func (err *DecodeError) Error() string {
	switch err.Kind {
	case UnknownOpcode:
		return fmt.Sprintf("unknown opcode %#x at offset %#x", byte(err.Opcode), err.Offset)
	case Truncated:
		if err.Opcode == 0 {
			return fmt.Sprintf("no instruction at offset %#x", err.Offset)
		}
		return fmt.Sprintf("truncated operand of %s at offset %#x", err.Opcode, err.Offset)
	case MalformedVarint:
		return fmt.Sprintf("malformed LEB128 operand of %s at offset %#x", err.Opcode, err.Offset)
	case InvalidOperandSize:
		return fmt.Sprintf("invalid size %d for %s at offset %#x", err.Value, err.Opcode, err.Offset)
	}
	return fmt.Sprintf("%v at offset %#x", err.Kind, err.Offset)
}

// Is reports whether target is the sentinel error for err.Kind.
func (err *DecodeError) Is(target error) bool {
	return kindErrors[err.Kind] == target
}
