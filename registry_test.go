package shoco

import "testing"

func TestModelRegistryPutGetRemove(t *testing.T) {
	r, err := NewModelRegistry(2)
	if err != nil {
		t.Fatalf("NewModelRegistry: %v", err)
	}
	m := testModel(t)
	r.Put("en", m)

	got, ok := r.Get("en")
	if !ok || got.Fingerprint() != m.Fingerprint() {
		t.Fatalf("Get(\"en\") = %v, %v", got, ok)
	}

	r.Remove("en")
	if _, ok := r.Get("en"); ok {
		t.Error("Get after Remove still found the entry")
	}
}

func TestModelRegistryUseAsDefault(t *testing.T) {
	r, err := NewModelRegistry(1)
	if err != nil {
		t.Fatalf("NewModelRegistry: %v", err)
	}
	prev := DefaultModel()
	defer SetDefaultModel(prev)

	m := testModel(t)
	r.Put("custom", m)
	if !r.UseAsDefault("custom") {
		t.Fatal("UseAsDefault(\"custom\") = false")
	}
	if DefaultModel().Fingerprint() != m.Fingerprint() {
		t.Error("DefaultModel() fingerprint does not match the model installed via UseAsDefault")
	}
}

func TestModelRegistryUseAsDefaultMissing(t *testing.T) {
	r, err := NewModelRegistry(1)
	if err != nil {
		t.Fatalf("NewModelRegistry: %v", err)
	}
	if r.UseAsDefault("missing") {
		t.Error("UseAsDefault(\"missing\") = true, want false")
	}
}

func TestDefaultModelTrainedAtInit(t *testing.T) {
	m := DefaultModel()
	if m == nil {
		t.Fatal("DefaultModel() = nil")
	}
	enc := Compress([]byte("the quick brown fox"))
	dec, err := Decompress(enc)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(dec) != "the quick brown fox" {
		t.Errorf("Compress/Decompress round trip: got %q", dec)
	}
}
