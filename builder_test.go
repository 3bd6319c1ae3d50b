package shoco

import (
	"strings"
	"testing"
)

func TestTrainProducesUsableModel(t *testing.T) {
	corpus := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 20)
	m, err := Train(strings.NewReader(corpus), DefaultTrainOptions())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	enc := Encode(m, []byte("the quick brown fox"))
	dec, err := Decode(m, enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec) != "the quick brown fox" {
		t.Errorf("round trip through trained model: got %q", dec)
	}
}

func TestTrainRejectsEmptyCorpus(t *testing.T) {
	_, err := Train(strings.NewReader(""), DefaultTrainOptions())
	if err == nil {
		t.Fatal("Train on empty corpus: want error, got nil")
	}
}

func TestTrainWithOptimizeEncodingStillRoundTrips(t *testing.T) {
	corpus := strings.Repeat("she sells seashells by the seashore\n", 30)
	opts := DefaultTrainOptions()
	opts.OptimizeEncoding = true
	m, err := Train(strings.NewReader(corpus), opts)
	if err != nil {
		t.Fatalf("Train with OptimizeEncoding: %v", err)
	}
	enc := Encode(m, []byte("she sells seashells"))
	dec, err := Decode(m, enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec) != "she sells seashells" {
		t.Errorf("round trip through optimized model: got %q", dec)
	}
}

func TestModelBuilderSmallCorpusDoesNotPadLeaders(t *testing.T) {
	b := NewModelBuilder()
	b.Add([]byte("abababab"))
	m, err := b.Build(DefaultTrainOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := len(m.CharsByID())
	if c&(c-1) != 0 {
		t.Errorf("chars_by_id length %d is not a power of two", c)
	}
	// "abababab" has exactly two leading bytes, 'a' and 'b'.
	if c != 2 {
		t.Errorf("chars_by_id length %d, want 2 (no padding up to C)", c)
	}
}

func TestCanonicalPackSchemesCount(t *testing.T) {
	for n := 1; n <= 3; n++ {
		packs, err := canonicalPackSchemes(n)
		if err != nil {
			t.Fatalf("canonicalPackSchemes(%d): %v", n, err)
		}
		if len(packs) != n {
			t.Errorf("canonicalPackSchemes(%d) returned %d schemes", n, len(packs))
		}
	}
	if _, err := canonicalPackSchemes(4); err == nil {
		t.Error("canonicalPackSchemes(4): want error, got nil")
	}
}
