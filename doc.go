// Package shoco implements a statistical substitution codec for short byte
// strings, together with the trainer that produces its compression models.
//
// # Overview
//
// Frequent leading bytes are replaced by small indices, and frequent
// bigrams/n-grams rooted at a common leading byte are packed together into
// 1, 2, or 4 byte code words. Bytes that cannot be indexed pass through as
// literals, escaped with a single NUL sentinel when their high bit is set.
// The codec is aimed at inputs of a few to a few hundred bytes, where
// block compressors (flate, zstd, ...) give negative compression.
//
// # When to use shoco
//
//   - short, natural-language-ish strings: URLs, log fields, user names,
//     free-text columns — anywhere a block compressor's fixed overhead
//     would dominate the output.
//
// # When not to use shoco
//
//   - binary payloads containing the NUL byte (0x00 is a reserved
//     sentinel, see [Encoder]);
//   - large inputs, or inputs without a shared per-domain vocabulary —
//     train a [Model] on representative data first.
//
// # Basic usage
//
//	out := shoco.Compress([]byte("hello, world"))
//	in, err := shoco.Decompress(out)
//
// A model trained on a representative corpus compresses better than the
// package-level [DefaultModel]:
//
//	m, err := shoco.Train(reader, shoco.DefaultTrainOptions())
//	out := shoco.Encode(m, []byte("hello, world"))
//	in, err := shoco.Decode(m, out)
//
// # Model lifecycle
//
// A [Model] is immutable after construction. [Encoder] and [Decoder] hold
// only per-call state and may be used concurrently from multiple
// goroutines against the same Model without synchronization. The
// process-wide default model is held in an atomic slot; see
// [DefaultModel], [SetDefaultModel], and [ModelRegistry] for managing more
// than one trained model at a time.
package shoco
