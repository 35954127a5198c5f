package leb128

import (
	"math"
	"testing"
)

func TestDecodeUnsigned(t *testing.T) {
	n, c, err := DecodeUnsigned([]byte{0xE5, 0x8E, 0x26})
	if err != nil {
		t.Fatal(err)
	}
	if n != 624485 {
		t.Fatal("Number was not decoded properly, got: ", n, c)
	}

	if c != 3 {
		t.Fatal("Count not returned correctly")
	}
}

func TestDecodeSigned(t *testing.T) {
	n, c, err := DecodeSigned([]byte{0x9b, 0xf1, 0x59})
	if err != nil {
		t.Fatal(err)
	}
	if n != -624485 {
		t.Fatal("Number was not decoded properly, got: ", n, c)
	}
	if c != 3 {
		t.Fatal("Count not returned correctly")
	}
}

func TestDecodeStopsAtTerminator(t *testing.T) {
	n, c, err := DecodeUnsigned([]byte{0x05, 0xff, 0xff})
	if err != nil || n != 5 || c != 1 {
		t.Fatalf("got %d %d %v", n, c, err)
	}
	s, c, err := DecodeSigned([]byte{0x7f, 0x01})
	if err != nil || s != -1 || c != 1 {
		t.Fatalf("got %d %d %v", s, c, err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	for _, buf := range [][]byte{nil, {}, {0x80}, {0xff, 0xff}} {
		if _, _, err := DecodeUnsigned(buf); err != ErrTruncated {
			t.Errorf("unsigned %x: expected ErrTruncated got %v", buf, err)
		}
		if _, _, err := DecodeSigned(buf); err != ErrTruncated {
			t.Errorf("signed %x: expected ErrTruncated got %v", buf, err)
		}
	}
}

func TestDecodeOverflow(t *testing.T) {
	tooLong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}
	if _, _, err := DecodeUnsigned(tooLong); err != ErrOverflow {
		t.Errorf("expected ErrOverflow got %v", err)
	}
	if _, _, err := DecodeSigned(tooLong); err != ErrOverflow {
		t.Errorf("expected ErrOverflow got %v", err)
	}

	// 2^64 does not fit
	wide := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02}
	if _, _, err := DecodeUnsigned(wide); err != ErrOverflow {
		t.Errorf("expected ErrOverflow got %v", err)
	}

	// 2^63 does not fit a signed 64 bit integer
	wide[9] = 0x01
	if _, _, err := DecodeSigned(wide); err != ErrOverflow {
		t.Errorf("expected ErrOverflow got %v", err)
	}
	n, c, err := DecodeUnsigned(wide)
	if err != nil || n != 1<<63 || c != 10 {
		t.Errorf("got %#x %d %v", n, c, err)
	}
}

func TestDecodeBoundaries(t *testing.T) {
	ucases := []struct {
		enc []byte
		val uint64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xff, 0x7f}, 16383},
		{[]byte{0x80, 0x80, 0x01}, 16384},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, math.MaxUint64},
	}
	for _, tc := range ucases {
		n, c, err := DecodeUnsigned(tc.enc)
		if err != nil {
			t.Fatalf("%x: %v", tc.enc, err)
		}
		if n != tc.val || c != len(tc.enc) {
			t.Errorf("%x: expected %d (%d bytes) got %d (%d bytes)", tc.enc, tc.val, len(tc.enc), n, c)
		}
	}

	scases := []struct {
		enc []byte
		val int64
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, -1},
		{[]byte{0x3f}, 63},
		{[]byte{0xc0, 0x00}, 64},
		{[]byte{0x40}, -64},
		{[]byte{0xbf, 0x7f}, -65},
		{[]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7f}, math.MinInt64},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00}, math.MaxInt64},
	}
	for _, tc := range scases {
		n, c, err := DecodeSigned(tc.enc)
		if err != nil {
			t.Fatalf("%x: %v", tc.enc, err)
		}
		if n != tc.val || c != len(tc.enc) {
			t.Errorf("%x: expected %d (%d bytes) got %d (%d bytes)", tc.enc, tc.val, len(tc.enc), n, c)
		}
	}
}
