package sentiment

import "testing"

func TestRemoveLinks(t *testing.T) {
	input := "see [the docs](https://example.com/docs) or https://example.com directly"
	got := RemoveLinks(input)
	want := "see the docs or  directly"
	if got != want {
		t.Errorf("RemoveLinks() = %q, want %q", got, want)
	}
}

func TestAnalyzeWithVADERBuckets(t *testing.T) {
	_, label := AnalyzeWithVADER("I absolutely love this, it is wonderful and amazing!")
	if label != Positive {
		t.Errorf("expected positive, got %v", label)
	}

	_, label = AnalyzeWithVADER("This is horrible, I hate it so much.")
	if label != Negative {
		t.Errorf("expected negative, got %v", label)
	}

	_, label = AnalyzeWithVADER("The video is twelve minutes long.")
	if label != Neutral {
		t.Errorf("expected neutral, got %v", label)
	}
}

func TestCategoryCodeRoundTrip(t *testing.T) {
	for _, s := range []Sentiment{Negative, Neutral, Positive} {
		got, ok := Unify(CategoryCode(s))
		if !ok || got != s {
			t.Errorf("CategoryCode round trip failed for %v: got %v (ok=%v)", s, got, ok)
		}
	}
}
