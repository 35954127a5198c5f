package leb128

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeUnsigned(t *testing.T) {
	tests := []struct {
		v   uint64
		enc []byte
	}{
		{0, []byte{0x00}},
		{2, []byte{0x02}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{129, []byte{0x81, 0x01}},
		{12857, []byte{0xb9, 0x64}},
		{math.MaxUint64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		EncodeUnsigned(&buf, tc.v)
		if !bytes.Equal(buf.Bytes(), tc.enc) {
			t.Errorf("%#x: expected % x got % x", tc.v, tc.enc, buf.Bytes())
			continue
		}
		v, n, err := DecodeUnsigned(append(buf.Bytes(), 0x1, 0x2))
		if err != nil || n != len(tc.enc) || v != tc.v {
			t.Errorf("%#x: round trip gave %#x %d %v", tc.v, v, n, err)
		}
	}
}

func TestEncodeSigned(t *testing.T) {
	tests := []struct {
		v   int64
		enc []byte
	}{
		{2, []byte{0x02}},
		{-2, []byte{0x7e}},
		{127, []byte{0xff, 0x00}},
		{-127, []byte{0x81, 0x7f}},
		{128, []byte{0x80, 0x01}},
		{-128, []byte{0x80, 0x7f}},
		{129, []byte{0x81, 0x01}},
		{-129, []byte{0xff, 0x7e}},
		{-1, []byte{0x7f}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		EncodeSigned(&buf, tc.v)
		if !bytes.Equal(buf.Bytes(), tc.enc) {
			t.Errorf("%d: expected % x got % x", tc.v, tc.enc, buf.Bytes())
			continue
		}
		v, n, err := DecodeSigned(append(buf.Bytes(), 0x1, 0x2))
		if err != nil || n != len(tc.enc) || v != tc.v {
			t.Errorf("%d: round trip gave %d %d %v", tc.v, v, n, err)
		}
	}

	for _, v := range []int64{math.MinInt64, math.MaxInt64} {
		var buf bytes.Buffer
		EncodeSigned(&buf, v)
		if got, n, err := DecodeSigned(buf.Bytes()); err != nil || n != 10 || got != v {
			t.Errorf("%d: round trip gave %d %d %v", v, got, n, err)
		}
	}
}
