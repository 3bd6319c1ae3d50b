package shoco

import (
	"encoding/binary"
	"fmt"
)

// Decoder unpacks a byte sequence produced by [Encoder] against a fixed
// Model. Like Encoder, it holds no state outlasting a single Decode call
// and never consults ids_by_char or successor_ids — only chars_by_id and
// chars_by_successor_id.
type Decoder struct {
	model *Model
}

// NewDecoder returns a Decoder bound to m.
func NewDecoder(m *Model) *Decoder {
	return &Decoder{model: m}
}

// decodeHeader returns the pack index ("mark") a code word's leading byte
// selects: -1 for a literal, 0/1/2 for packs[0]/packs[1]/packs[2], or a
// value from 3 to 6 for a malformed header (guarding against the historical
// shoco out-of-bounds read, CVE-2017-11367). The count stops at 6, so 0xFE
// and 0xFF both return 6.
func decodeHeader(h byte) int {
	mark := -1
	for v := h; v&0x80 != 0 && mark < 6; v <<= 1 {
		mark++
	}
	return mark
}

// Decode appends the decoding of src to dst and returns the extended
// slice, or an error wrapping [ErrInvalidHeader] or [ErrTruncated] if src
// is malformed. No output is appended past the point of failure.
func (d *Decoder) Decode(dst, src []byte) ([]byte, error) {
	m := d.model
	p := 0
	for p < len(src) {
		h := src[p]
		mark := decodeHeader(h)

		if mark < 0 {
			if h == 0x00 {
				p++
				if p >= len(src) {
					return dst, fmt.Errorf("%w: literal escape at end of input", ErrTruncated)
				}
				dst = append(dst, src[p])
				p++
				continue
			}
			dst = append(dst, h)
			p++
			continue
		}

		if mark >= 3 || mark >= len(m.packs) {
			return dst, fmt.Errorf("%w: header byte 0x%02x selects pack %d, model has %d", ErrInvalidHeader, h, mark, len(m.packs))
		}

		pack := m.packs[mark]
		if p+pack.BytesPacked > len(src) {
			return dst, fmt.Errorf("%w: pack %d needs %d bytes, %d remain", ErrTruncated, mark, pack.BytesPacked, len(src)-p)
		}

		var buf [4]byte
		copy(buf[:], src[p:p+pack.BytesPacked])
		word := binary.BigEndian.Uint32(buf[:])

		idx0 := (word >> pack.Offsets[0]) & pack.Masks[0]
		if int(idx0) >= len(m.charsByID) {
			return dst, fmt.Errorf("%w: pack %d leading index %d out of range", ErrInvalidHeader, mark, idx0)
		}
		last := m.charsByID[idx0]
		dst = append(dst, last)

		for i := 1; i < pack.BytesUnpacked; i++ {
			idx := (word >> pack.Offsets[i]) & pack.Masks[i]
			row := int(last) - m.minChar
			if row < 0 || row >= (m.maxChar-m.minChar) || int(idx) >= m.successorCount {
				return dst, fmt.Errorf("%w: pack %d successor field %d out of range", ErrInvalidHeader, mark, i)
			}
			last = m.chrsBySucc[row*m.successorCount+int(idx)]
			dst = append(dst, last)
		}

		p += pack.BytesPacked
	}

	return dst, nil
}

// Decode is a package-level convenience that decodes src with m.
func Decode(m *Model, src []byte) ([]byte, error) {
	return NewDecoder(m).Decode(nil, src)
}

// Decompress decodes in using the process-wide default model (see
// [DefaultModel]).
func Decompress(in []byte) ([]byte, error) {
	return Decode(DefaultModel(), in)
}
