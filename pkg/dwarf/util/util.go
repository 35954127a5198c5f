package util

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnderflow is returned when a buffer is shorter than the value being
// read from it.
var ErrUnderflow = errors.New("underflow")

// ReadUint reads an unsigned integer of size bytes (1, 2, 4 or 8) from
// the start of buf, in little endian byte order.
func ReadUint(buf []byte, size int) (uint64, error) {
	return ReadUintRaw(buf, binary.LittleEndian, size)
}

// ReadInt reads a signed integer of size bytes (1, 2, 4 or 8) from the
// start of buf, in little endian byte order.
func ReadInt(buf []byte, size int) (int64, error) {
	n, err := ReadUintRaw(buf, binary.LittleEndian, size)
	if err != nil {
		return 0, err
	}
	switch size {
	case 1:
		return int64(int8(n)), nil
	case 2:
		return int64(int16(n)), nil
	case 4:
		return int64(int32(n)), nil
	}
	return int64(n), nil
}

// ReadUintRaw reads an integer of size bytes, with the specified byte order, from buf.
func ReadUintRaw(buf []byte, order binary.ByteOrder, size int) (uint64, error) {
	switch size {
	case 1, 2, 4, 8:
	default:
		return 0, fmt.Errorf("not supported integer size %d", size)
	}
	if len(buf) < size {
		return 0, ErrUnderflow
	}
	switch size {
	case 1:
		return uint64(buf[0]), nil
	case 2:
		return uint64(order.Uint16(buf)), nil
	case 4:
		return uint64(order.Uint32(buf)), nil
	}
	return order.Uint64(buf), nil
}
