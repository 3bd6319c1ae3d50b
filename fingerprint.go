package shoco

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// computeFingerprint hashes a Model's tables and pack shapes with xxhash,
// a fast non-cryptographic hash well suited to diffing the content of
// fixed-size tables on every model build. It is a plain content digest,
// not part of the wire format: changing it never changes Encode/Decode
// output.
func computeFingerprint(m *Model) uint64 {
	d := xxhash.New()

	var scratch [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		d.Write(scratch[:])
	}

	writeUint(uint64(m.minChar))
	writeUint(uint64(m.maxChar))
	writeUint(uint64(m.maxSuccessorLen))
	d.Write(m.charsByID)
	d.Write(m.idsByChar[:])
	writeUint(uint64(m.leaderCount))
	writeUint(uint64(m.successorCount))
	for _, idx := range m.successorIDs {
		scratch[0] = idx
		d.Write(scratch[:1])
	}
	d.Write(m.chrsBySucc)

	for _, p := range m.packs {
		writeUint(uint64(p.Header))
		writeUint(uint64(p.BytesPacked))
		writeUint(uint64(p.BytesUnpacked))
		for i := 0; i < p.BytesUnpacked; i++ {
			writeUint(uint64(p.Offsets[i]))
			writeUint(uint64(p.Masks[i]))
		}
	}

	return d.Sum64()
}
