package shoco

import (
	"bytes"
	"errors"
	"testing"
)

// TestRoundTripNULFree checks that for any NUL-free input,
// Decode(Encode(D)) == D.
func TestRoundTripNULFree(t *testing.T) {
	m := testModel(t)
	inputs := []string{
		"",
		"a",
		"the",
		"the quick brown fox",
		"she sells seashells by the seashore",
		"this is a test of the trainer",
		"xyzzy plugh qwzx",
		string([]byte{0x80, 0x81, 0xff, 'a', 'b'}),
	}
	for _, in := range inputs {
		enc := Encode(m, []byte(in))
		dec, err := Decode(m, enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", in, err)
		}
		if string(dec) != in {
			t.Errorf("round trip %q: got %q", in, dec)
		}
	}
}

// TestLiteralFallbackSizeBound checks that every byte with its high bit
// clear encodes to itself, and every byte with its high bit set encodes
// to a two-byte NUL-escaped literal.
func TestLiteralFallbackSizeBound(t *testing.T) {
	m := testModel(t)
	for b := 0; b < 256; b++ {
		if b == 0x00 {
			continue
		}
		enc := Encode(m, []byte{byte(b)})
		if b < 0x80 {
			if !bytes.Equal(enc, []byte{byte(b)}) {
				t.Errorf("byte %#x: enc = % x, want % x", b, enc, []byte{byte(b)})
			}
		} else {
			if !bytes.Equal(enc, []byte{0x00, byte(b)}) {
				t.Errorf("byte %#x: enc = % x, want 00 %02x", b, enc, b)
			}
		}
	}
}

// TestHeaderDispatchPartition checks that decodeHeader always returns a
// value in [-1, 6], and any mark >= len(packs) is rejected as
// ErrInvalidHeader.
func TestHeaderDispatchPartition(t *testing.T) {
	for b := 0; b < 256; b++ {
		mark := decodeHeader(byte(b))
		if mark < -1 || mark > 6 {
			t.Fatalf("decodeHeader(%#x) = %d, out of [-1,6]", b, mark)
		}
	}

	m := testModel(t)
	_, err := Decode(m, []byte{0xFE, 0x00, 0x00})
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("FE 00 00: err = %v, want ErrInvalidHeader", err)
	}
}

// TestTruncatedInputs checks decoder robustness against inputs cut off
// mid code word or mid literal escape.
func TestTruncatedInputs(t *testing.T) {
	m := testModel(t)

	_, err := Decode(m, []byte{0x00})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("trailing NUL escape: err = %v, want ErrTruncated", err)
	}

	if len(m.packs) >= 2 {
		header := m.packs[1].Header
		_, err := Decode(m, []byte{header})
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("truncated pack-1 code word: err = %v, want ErrTruncated", err)
		}
	}
}

// TestEmptyInputRoundTrips checks that an empty input round-trips to an
// empty output.
func TestEmptyInputRoundTrips(t *testing.T) {
	m := testModel(t)
	enc := Encode(m, nil)
	if len(enc) != 0 {
		t.Errorf("Encode(\"\") = % x, want empty", enc)
	}
	dec, err := Decode(m, enc)
	if err != nil || len(dec) != 0 {
		t.Errorf("Decode(Encode(\"\")) = %q, %v", dec, err)
	}
}

// TestSingleASCIIByteRoundTrips checks that a lone ASCII byte encodes to
// itself.
func TestSingleASCIIByteRoundTrips(t *testing.T) {
	m := testModel(t)
	enc := Encode(m, []byte("a"))
	if !bytes.Equal(enc, []byte{'a'}) {
		t.Errorf("Encode(\"a\") = % x, want 61", enc)
	}
}

// TestHighBitByteEscaped checks that a lone high-bit byte gets a NUL
// escape prefix.
func TestHighBitByteEscaped(t *testing.T) {
	m := testModel(t)
	enc := Encode(m, []byte{0x80})
	if !bytes.Equal(enc, []byte{0x00, 0x80}) {
		t.Errorf("Encode(\\x80) = % x, want 00 80", enc)
	}
}

func TestEncodeStopsAtNUL(t *testing.T) {
	m := testModel(t)
	enc := Encode(m, []byte("ab\x00cd"))
	dec, err := Decode(m, enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec) != "ab" {
		t.Errorf("encode-stops-at-NUL: decoded %q, want %q", dec, "ab")
	}
}

// TestBestPackPrefersLargest checks that among schemes whose
// bytes_unpacked fits n and whose masks admit an all-zero index vector,
// the one with the largest bytes_unpacked wins.
func TestBestPackPrefersLargest(t *testing.T) {
	m := testModel(t)
	var idx [8]Index
	largest := m.packs[len(m.packs)-1]

	p, ok := bestPack(m.packs, &idx, largest.BytesUnpacked)
	if !ok {
		t.Fatal("bestPack: no scheme fit an all-zero index vector")
	}
	if p.BytesUnpacked != largest.BytesUnpacked {
		t.Errorf("bestPack chose bytes_unpacked=%d, want the largest scheme's %d", p.BytesUnpacked, largest.BytesUnpacked)
	}
}

func FuzzDecodeNeverPanics(f *testing.F) {
	m := testModel(f)
	f.Add([]byte{0xFE, 0x00, 0x00})
	f.Add([]byte{0xC0})
	f.Add([]byte{0x00})
	f.Add([]byte("hello"))
	f.Fuzz(func(t *testing.T, in []byte) {
		_, _ = Decode(m, in)
	})
}
