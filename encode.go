package shoco

import "encoding/binary"

// Encoder packs a byte sequence against a fixed Model. An Encoder holds no
// state that outlives a single Encode call; the same Encoder (or the same
// Model, via separate Encoders) may be used concurrently from multiple
// goroutines.
type Encoder struct {
	model *Model
}

// NewEncoder returns an Encoder bound to m.
func NewEncoder(m *Model) *Encoder {
	return &Encoder{model: m}
}

// Encode appends the shoco encoding of src to dst and returns the
// extended slice. It scans left to right, greedily emitting the largest
// pack scheme that fits at each position, falling back to a literal byte
// (escaped with a leading NUL when its high bit is set) when nothing
// packs.
//
// The byte 0x00 in src terminates encoding: everything from the first NUL
// onward is dropped, matching the reference shoco semantics. Encode never
// fails; callers that need every input byte preserved must strip or
// reject NULs themselves first.
func (e *Encoder) Encode(dst, src []byte) []byte {
	m := e.model
	var indices [8]Index

	p := 0
	for p < len(src) {
		if src[p] == 0x00 {
			break
		}

		id0 := m.idsByChar[src[p]]
		n := 0
		if id0 != InvalidIndex {
			indices[0] = id0
			n = 1
			lastID := id0
			for n <= m.maxSuccessorLen && p+n < len(src) {
				next := src[p+n]
				if next == 0x00 {
					break
				}
				idk := m.idsByChar[next]
				if idk == InvalidIndex {
					break
				}
				succ := m.successorIDs[int(lastID)*m.leaderCount+int(idk)]
				if succ == InvalidIndex {
					break
				}
				indices[n] = succ
				lastID = idk
				n++
			}
		}

		if n >= 2 {
			if scheme, ok := bestPack(m.packs, &indices, n); ok {
				dst = appendCodeWord(dst, &scheme, &indices)
				p += scheme.BytesUnpacked
				continue
			}
		}

		if src[p]&0x80 != 0 {
			dst = append(dst, 0x00)
		}
		dst = append(dst, src[p])
		p++
	}

	return dst
}

// bestPack picks the largest pack scheme that fits, iterating from the
// widest scheme to the narrowest: the first scheme (in descending
// bytes_unpacked order) whose field count is covered by n available
// indices and whose values fit its masks wins.
func bestPack(packs []PackScheme, indices *[8]Index, n int) (PackScheme, bool) {
	for i := len(packs) - 1; i >= 0; i-- {
		p := packs[i]
		if n >= p.BytesUnpacked && p.fits(indices) {
			return p, true
		}
	}
	return PackScheme{}, false
}

// appendCodeWord composes the 32-bit staging word for scheme and appends
// its leading BytesPacked bytes, big-endian, to dst.
func appendCodeWord(dst []byte, scheme *PackScheme, indices *[8]Index) []byte {
	word := uint32(scheme.Header) << 24
	for i := 0; i < scheme.BytesUnpacked; i++ {
		word |= uint32(indices[i]) << scheme.Offsets[i]
	}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], word)
	return append(dst, buf[:scheme.BytesPacked]...)
}

// Encode is a package-level convenience that encodes src with m.
func Encode(m *Model, src []byte) []byte {
	return NewEncoder(m).Encode(nil, src)
}

// Compress encodes in using the process-wide default model (see
// [DefaultModel]).
func Compress(in []byte) []byte {
	return Encode(DefaultModel(), in)
}
