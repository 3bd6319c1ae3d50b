package shoco

import (
	"container/heap"
	"sort"
)

// BigramCounter counts first-byte and successor-byte frequencies across a
// training corpus. For each adjacent pair (b_i, b_{i+1}) in a segment of
// length >= 2, it increments both the leading byte's frequency and the
// (leader, successor) pair's frequency.
type BigramCounter struct {
	firstCount [256]uint64
	pairCount  [256][256]uint64
}

// NewBigramCounter returns an empty BigramCounter.
func NewBigramCounter() *BigramCounter {
	return &BigramCounter{}
}

// Add counts every adjacent byte pair in seg. Segments shorter than two
// bytes contribute nothing.
func (c *BigramCounter) Add(seg []byte) {
	if len(seg) < 2 {
		return
	}
	for i := 0; i < len(seg)-1; i++ {
		c.firstCount[seg[i]]++
		c.pairCount[seg[i]][seg[i+1]]++
	}
}

// FirstCount returns the number of times b was seen as a leading byte.
func (c *BigramCounter) FirstCount(b byte) uint64 {
	return c.firstCount[b]
}

// PairCount returns the number of times successor followed leader.
func (c *BigramCounter) PairCount(leader, successor byte) uint64 {
	return c.pairCount[leader][successor]
}

// byteFreq is one (byte, count) candidate in a top-K extraction.
type byteFreq struct {
	b     byte
	count uint64
}

// freqHeap is a min-heap of byteFreq ordered so the lowest-priority entry
// (smallest count, then largest byte value) is always the root and the
// first one evicted once the heap exceeds K. The ascending-byte-value
// tiebreak makes top-K selection deterministic even when many bytes
// share a frequency.
type freqHeap []byteFreq

func (h freqHeap) Len() int { return len(h) }
func (h freqHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].b > h[j].b
}
func (h freqHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *freqHeap) Push(x any)        { *h = append(*h, x.(byteFreq)) }
func (h *freqHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// topK returns the K candidates with the highest count, ordered
// descending by count and, among ties, ascending by byte value.
func topK(candidates []byteFreq, k int) []byte {
	if k > len(candidates) {
		k = len(candidates)
	}
	h := make(freqHeap, 0, k)
	heap.Init(&h)
	for _, cand := range candidates {
		if cand.count == 0 {
			continue
		}
		if h.Len() < k {
			heap.Push(&h, cand)
			continue
		}
		if len(h) > 0 && (cand.count > h[0].count || (cand.count == h[0].count && cand.b < h[0].b)) {
			heap.Pop(&h)
			heap.Push(&h, cand)
		}
	}

	out := make([]byteFreq, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].b < out[j].b
	})

	result := make([]byte, len(out))
	for i, f := range out {
		result[i] = f.b
	}
	return result
}

// TopLeaders returns the k most frequent leading bytes, in descending
// frequency order (ties broken by ascending byte value).
func (c *BigramCounter) TopLeaders(k int) []byte {
	cands := make([]byteFreq, 0, 256)
	for b := 0; b < 256; b++ {
		if c.firstCount[b] > 0 {
			cands = append(cands, byteFreq{byte(b), c.firstCount[b]})
		}
	}
	return topK(cands, k)
}

// TopSuccessors returns the k most frequent successors of leader, in
// descending frequency order (ties broken by ascending byte value).
func (c *BigramCounter) TopSuccessors(leader byte, k int) []byte {
	cands := make([]byteFreq, 0, 256)
	row := &c.pairCount[leader]
	for b := 0; b < 256; b++ {
		if row[b] > 0 {
			cands = append(cands, byteFreq{byte(b), row[b]})
		}
	}
	return topK(cands, k)
}
