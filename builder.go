package shoco

import (
	"fmt"
	"io"
)

// TrainOptions configures [Train]'s corpus segmentation, table sizes, and
// pack-scheme selection.
type TrainOptions struct {
	// Input controls how the training corpus is segmented and trimmed.
	Input InputOptions

	// LeadingBits sets C = 1<<LeadingBits, the number of tracked leading
	// bytes (the chars_by_id table's length). Default 5 (C=32).
	LeadingBits int
	// SuccessorBits sets S = 1<<SuccessorBits, the number of tracked
	// successors per leader. Default 4 (S=16).
	SuccessorBits int

	// EncodingTypes selects how many canonical pack schemes the trained
	// Model carries, 1-3, ordered smallest to largest code word. Default 3.
	EncodingTypes int

	// OptimizeEncoding runs a second pass over the training corpus,
	// scoring every candidate pack-width vector against actual encoded
	// size and keeping the best EncodingTypes schemes instead of the
	// fixed canonical ones. This requires buffering the corpus in memory
	// for the second pass.
	OptimizeEncoding bool
}

// DefaultTrainOptions returns the trainer's default configuration: C=32
// leaders, S=16 successors per leader, all three canonical pack schemes,
// no optimization pass.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Input:         DefaultInputOptions,
		LeadingBits:   5,
		SuccessorBits: 4,
		EncodingTypes: 3,
	}
}

// canonicalWidths holds the three fixed pack-scheme bit-width vectors,
// ordered smallest to largest code word: 1-byte pack0 (header width 2),
// 2-byte pack1 (header width 3), and 4-byte pack2 (header width 4). The
// header width is fixed per slot so each pack's dispatch prefix stays
// distinguishable from the others and from a literal byte.
var canonicalWidths = [3][]int{
	{2, 4, 2},
	{3, 4, 3, 3, 3},
	{4, 5, 4, 4, 4, 3, 3, 3, 2},
}

// canonicalPackSchemes builds the first n canonical pack schemes (n=1-3).
func canonicalPackSchemes(n int) ([]PackScheme, error) {
	if n < 1 || n > 3 {
		return nil, fmt.Errorf("%w: EncodingTypes must be 1-3, got %d", ErrInvalidConfiguration, n)
	}
	packs := make([]PackScheme, 0, n)
	for i := 0; i < n; i++ {
		p, err := NewPackScheme(canonicalWidths[i])
		if err != nil {
			return nil, err
		}
		packs = append(packs, p)
	}
	return packs, nil
}

// ModelBuilder accumulates bigram statistics via its embedded BigramCounter
// and turns them into a Model's lookup tables. Use [Train] for the common
// case of reading a corpus straight into a Model; ModelBuilder is exposed
// for callers who want to combine statistics from several corpora before
// building.
type ModelBuilder struct {
	counter *BigramCounter
}

// NewModelBuilder returns an empty ModelBuilder.
func NewModelBuilder() *ModelBuilder {
	return &ModelBuilder{counter: NewBigramCounter()}
}

// Counter exposes the builder's underlying BigramCounter, so callers can
// feed it segments from multiple corpora before calling Build.
func (b *ModelBuilder) Counter() *BigramCounter { return b.counter }

// Add counts every adjacent byte pair in seg.
func (b *ModelBuilder) Add(seg []byte) { b.counter.Add(seg) }

// Build constructs a Model from the statistics accumulated so far, using
// the table sizes in opts and the canonical pack schemes selected by
// opts.EncodingTypes. It does not run the pack-scheme optimization pass;
// see [Train] for that.
func (b *ModelBuilder) Build(opts TrainOptions) (*Model, error) {
	return b.build(opts, nil)
}

// build is Build's implementation, optionally taking a pre-built pack set
// (used by Train's optimization pass to substitute optimized schemes
// without recomputing the leader/successor tables).
func (b *ModelBuilder) build(opts TrainOptions, packs []PackScheme) (*Model, error) {
	leadingBits, successorBits := opts.LeadingBits, opts.SuccessorBits
	if leadingBits <= 0 {
		leadingBits = 5
	}
	if successorBits <= 0 {
		successorBits = 4
	}
	c := 1 << uint(leadingBits)
	s := 1 << uint(successorBits)
	if s > 1<<maxSuccessorN {
		s = 1 << maxSuccessorN
	}

	leaders := b.counter.TopLeaders(c)
	if len(leaders) == 0 {
		return nil, fmt.Errorf("%w: no bigrams observed, nothing to train on", ErrUntrainedModel)
	}
	// Pad to a power-of-two length with unused low-frequency placeholder
	// slots is not attempted: NewModel requires len(charsByID) to be a
	// power of two, so a corpus too small to fill C leaders trains a
	// smaller, still-valid model instead of padding with fabricated
	// entries. Round down to the largest power of two <= len(leaders).
	c = largestPowerOfTwoAtMost(len(leaders), c)
	leaders = leaders[:c]

	rank := make(map[byte]int, c)
	for i, ch := range leaders {
		rank[ch] = i
	}

	minChar, maxChar := int(leaders[0]), int(leaders[0])
	for _, ch := range leaders {
		if int(ch) < minChar {
			minChar = int(ch)
		}
		if int(ch) > maxChar {
			maxChar = int(ch)
		}
	}
	maxChar++ // exclusive upper bound, see Model.maxChar doc

	successorIDs := make([][]Index, c)
	for i := range successorIDs {
		row := make([]Index, c)
		for j := range row {
			row[j] = InvalidIndex
		}
		successorIDs[i] = row
	}

	chrsBySucc := make([][]byte, maxChar-minChar)
	for i := range chrsBySucc {
		chrsBySucc[i] = make([]byte, s)
	}

	for r, leader := range leaders {
		top := b.counter.TopSuccessors(leader, s)
		row := int(leader) - minChar
		for s2, sb := range top {
			chrsBySucc[row][s2] = sb
			if r2, ok := rank[sb]; ok {
				successorIDs[r][r2] = Index(s2)
			}
		}
	}

	if packs == nil {
		n := opts.EncodingTypes
		if n == 0 {
			n = 3
		}
		var err error
		packs, err = canonicalPackSchemes(n)
		if err != nil {
			return nil, err
		}
	}

	return NewModel(minChar, maxChar, leaders, successorIDs, chrsBySucc, packs)
}

// largestPowerOfTwoAtMost returns the largest power of two that is <= n
// and <= cap, or 0 if n == 0.
func largestPowerOfTwoAtMost(n, cap int) int {
	if n <= 0 {
		return 0
	}
	if n > cap {
		n = cap
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}

// Train reads a training corpus from r, segmenting it per opts.Input, and
// builds a Model from the resulting bigram statistics.
//
// If opts.OptimizeEncoding is set, Train buffers every segment in memory
// to run a pack-scheme search: it builds the model once with the
// canonical schemes, then scores alternative bit-width vectors against
// the actual encoded size of the buffered corpus and keeps whichever
// produces the smallest total output among the candidates tried.
func Train(r io.Reader, opts TrainOptions) (*Model, error) {
	cr := NewCorpusReader(r, opts.Input)
	builder := NewModelBuilder()

	var buffered [][]byte
	for {
		seg, ok := cr.Next()
		if !ok {
			break
		}
		builder.Add(seg)
		if opts.OptimizeEncoding {
			buffered = append(buffered, append([]byte(nil), seg...))
		}
	}
	if err := cr.Err(); err != nil {
		return nil, fmt.Errorf("shoco: reading training corpus: %w", err)
	}

	model, err := builder.build(opts, nil)
	if err != nil {
		return nil, err
	}
	if !opts.OptimizeEncoding {
		return model, nil
	}

	optimized, err := optimizePackSchemes(builder, opts, buffered)
	if err != nil {
		return nil, err
	}
	return builder.build(opts, optimized)
}

// packHeaderWidths fixes the header width for each pack slot: pack0 gets
// prefix "10" (2 bits), pack1 gets "110" (3 bits), pack2 gets "1110"
// (4 bits). A candidate search must hold these fixed per slot — donating
// a header bit to the data fields (say, header width 1 for pack0) would
// produce Header == 0x00, a prefix with its leading bit clear, which is
// bit-for-bit indistinguishable from a literal byte and breaks decoding.
var packHeaderWidths = [3]int{2, 3, 4}

// packCandidates enumerates alternative bit-width vectors for the pack
// slot at the given size index (0, 1, or 2, i.e. 8/16/32-bit code words),
// holding that slot's header width fixed at packHeaderWidths[size]. It
// yields one vector per field count from 1 to 8 (fewer if the remaining
// bits run out), splitting the remaining bits as evenly as possible across
// the fields (leading index first, then successor ranks), with any spare
// bits going to the earliest fields.
func packCandidates(size int) [][]int {
	headerWidth := packHeaderWidths[size]
	totalBits := (1 << uint(size)) * 8
	remaining := totalBits - headerWidth

	var out [][]int
	for fields := 1; fields <= 8 && fields <= remaining; fields++ {
		base := remaining / fields
		extra := remaining % fields
		if base == 0 {
			continue
		}
		widths := make([]int, 0, fields+1)
		widths = append(widths, headerWidth)
		for i := 0; i < fields; i++ {
			w := base
			if i < extra {
				w++
			}
			widths = append(widths, w)
		}
		out = append(out, widths)
	}
	return out
}

// optimizePackSchemes tries every packCandidates() vector at each code
// word size, measures the total encoded length of corpus under a Model
// whose packs are the winners already chosen for the smaller sizes plus
// that candidate (no scheme of a larger size is present during the trial),
// and keeps the best-scoring candidate per size. The winners are
// returned ordered smallest to largest, trimmed to opts.EncodingTypes.
func optimizePackSchemes(builder *ModelBuilder, opts TrainOptions, corpus [][]byte) ([]PackScheme, error) {
	n := opts.EncodingTypes
	if n == 0 {
		n = 3
	}

	var winners []PackScheme
	for size := 0; size < n; size++ {
		best := PackScheme{}
		bestScore := -1
		for _, widths := range packCandidates(size) {
			p, err := NewPackScheme(widths)
			if err != nil {
				continue
			}
			trial := append(append([]PackScheme(nil), winners...), p)
			m, err := builder.build(opts, trial)
			if err != nil {
				continue
			}
			score := scoreEncodedSize(m, corpus)
			if bestScore == -1 || score < bestScore {
				bestScore = score
				best = p
			}
		}
		if bestScore == -1 {
			// No candidate at this size validated; fall back to the
			// canonical scheme so the search never leaves a gap.
			fallback, err := NewPackScheme(canonicalWidths[size])
			if err != nil {
				return nil, err
			}
			best = fallback
		}
		winners = append(winners, best)
	}
	return winners, nil
}

// scoreEncodedSize returns the total length, in bytes, of encoding every
// segment in corpus against m.
func scoreEncodedSize(m *Model, corpus [][]byte) int {
	enc := NewEncoder(m)
	total := 0
	var buf []byte
	for _, seg := range corpus {
		buf = enc.Encode(buf[:0], seg)
		total += len(buf)
	}
	return total
}
