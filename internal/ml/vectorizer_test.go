package ml

import (
	"math"
	"testing"
)

var fitDocs = []string{
	"love this video love it",
	"this video is great",
	"hate this video",
	"great content love it",
	"terrible terrible content",
}

func TestVectorizerFitPrunesByDocumentFrequency(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit(fitDocs); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// "terrible" appears in one document only, below MinDF
	if _, ok := v.Vocabulary["terrible"]; ok {
		t.Error("terrible should have been pruned by min_df")
	}
	// "video" is in 3/5 docs, within both bounds
	if _, ok := v.Vocabulary["video"]; !ok {
		t.Error("video should be in the vocabulary")
	}
	// "this" is in 3/5 docs, within both bounds
	if _, ok := v.Vocabulary["this"]; !ok {
		t.Error("this should be in the vocabulary")
	}

	if len(v.IDF) != len(v.Vocabulary) {
		t.Errorf("idf length %d != vocabulary size %d", len(v.IDF), len(v.Vocabulary))
	}
}

func TestVectorizerFitEmptyCorpus(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit([]string{"one off words only", "zzz yyy xxx"}); err == nil {
		t.Error("expected error when no term meets min_df")
	}
}

func TestTransformIsL2Normalized(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit(fitDocs); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	vec := v.Transform("love this video")
	if len(vec) == 0 {
		t.Fatal("expected non-empty vector")
	}

	var sumSq float64
	for _, val := range vec {
		sumSq += val * val
	}
	if math.Abs(sumSq-1) > 1e-9 {
		t.Errorf("vector norm^2 = %f, want 1", sumSq)
	}
}

func TestTransformUnknownTokens(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit(fitDocs); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	vec := v.Transform("zebra quantum flux")
	if len(vec) != 0 {
		t.Errorf("expected empty vector for out-of-vocabulary text, got %v", vec)
	}
}

func TestTransformHandlesRawNoisyText(t *testing.T) {
	v := NewVectorizer()
	if err := v.Fit(fitDocs); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// serving passes raw text straight in; tokenization must cope
	clean := v.Transform("love this video")
	noisy := v.Transform("LOVE!!! this video!!! 123")
	if len(noisy) != len(clean) {
		t.Errorf("noisy text vector differs in support: %v vs %v", noisy, clean)
	}
}
