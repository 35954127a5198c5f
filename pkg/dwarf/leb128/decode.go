package leb128

import (
	"errors"
)

// maxLen is the longest encoding of a 64 bit value.
const maxLen = 10

var (
	// ErrTruncated is returned when the input ends before the terminating
	// byte of a number.
	ErrTruncated = errors.New("leb128: truncated number")
	// ErrOverflow is returned when the encoded number does not fit in 64
	// bits.
	ErrOverflow = errors.New("leb128: number overflows 64 bits")
)

// DecodeUnsigned decodes an unsigned Little Endian Base 128
// represented number at the start of buf. It returns the number and the
// count of bytes it occupies.
func DecodeUnsigned(buf []byte) (uint64, int, error) {
	var (
		result uint64
		shift  uint
	)

	for i, b := range buf {
		if i == maxLen-1 && b&0x7f > 1 {
			return 0, 0, ErrOverflow
		}

		result |= uint64(b&0x7f) << shift

		// If high order bit is 1.
		if b&0x80 == 0 {
			return result, i + 1, nil
		}

		shift += 7
		if i+1 == maxLen {
			return 0, 0, ErrOverflow
		}
	}

	return 0, 0, ErrTruncated
}

// DecodeSigned decodes a signed Little Endian Base 128
// represented number at the start of buf. It returns the number and the
// count of bytes it occupies.
func DecodeSigned(buf []byte) (int64, int, error) {
	var (
		result int64
		shift  uint
	)

	for i, b := range buf {
		if i == maxLen-1 && b&0x7f != 0 && b&0x7f != 0x7f {
			return 0, 0, ErrOverflow
		}

		result |= int64(b&0x7f) << shift
		shift += 7

		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				result |= -(1 << shift)
			}
			return result, i + 1, nil
		}

		if i+1 == maxLen {
			return 0, 0, ErrOverflow
		}
	}

	return 0, 0, ErrTruncated
}
