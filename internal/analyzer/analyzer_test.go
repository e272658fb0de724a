package analyzer

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/bibek1414/youtube-comment-analyzer/internal/ml"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

func testArtifact(t *testing.T) *ml.Artifact {
	t.Helper()
	rows := []models.DatasetRow{
		{Comment: "love this great video love it", Label: "1"},
		{Comment: "great video love the content", Label: "1"},
		{Comment: "this video is okay nothing special", Label: "0"},
		{Comment: "okay nothing special here", Label: "0"},
		{Comment: "terrible video waste of time", Label: "-1"},
		{Comment: "terrible waste hate this video", Label: "-1"},
		{Comment: "hate it terrible content", Label: "-1"},
		{Comment: "okay video nothing more", Label: "0"},
		{Comment: "love the great video", Label: "1"},
		{Comment: "terrible waste of content", Label: "-1"},
	}
	artifact, _, err := ml.TrainPipeline(rows)
	if err != nil {
		t.Fatalf("training fixture artifact: %v", err)
	}
	return artifact
}

func loadedService(t *testing.T) *Service {
	t.Helper()
	artifact := testArtifact(t)
	path := filepath.Join(t.TempDir(), "model.json")
	if err := ml.SaveArtifact(artifact, path); err != nil {
		t.Fatalf("saving fixture artifact: %v", err)
	}

	s := NewService(path)
	if err := s.LoadModel(); err != nil {
		t.Fatalf("loading fixture artifact: %v", err)
	}
	return s
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	s := loadedService(t)

	resp, err := s.Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze(nil) failed: %v", err)
	}

	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
	if resp.Summary.TotalComments != 0 {
		t.Errorf("total_comments = %d, want 0", resp.Summary.TotalComments)
	}
	for _, name := range []string{"negative", "neutral", "positive"} {
		bucket, ok := resp.Summary.SentimentDistribution[name]
		if !ok {
			t.Fatalf("distribution missing %q", name)
		}
		if bucket.Count != 0 || bucket.Percentage != 0 {
			t.Errorf("%s bucket = %+v, want zeros", name, bucket)
		}
	}
}

func TestAnalyzePreservesOrder(t *testing.T) {
	s := loadedService(t)

	comments := []string{
		"terrible waste of time",
		"love this great video",
		"okay nothing special",
		"terrible waste of time",
	}
	resp, err := s.Analyze(comments)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(resp.Results) != len(comments) {
		t.Fatalf("got %d results for %d comments", len(resp.Results), len(comments))
	}
	for i, result := range resp.Results {
		if result.Comment != comments[i] {
			t.Errorf("result %d is for %q, want %q", i, result.Comment, comments[i])
		}
	}
}

func TestAnalyzeSummaryConsistency(t *testing.T) {
	s := loadedService(t)

	comments := []string{
		"love this great video",
		"terrible waste of time",
		"okay nothing special",
		"great video love it",
		"hate this terrible content",
	}
	resp, err := s.Analyze(comments)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	totalCount := 0
	totalPct := 0.0
	for _, bucket := range resp.Summary.SentimentDistribution {
		totalCount += bucket.Count
		totalPct += bucket.Percentage
	}
	if totalCount != resp.Summary.TotalComments {
		t.Errorf("counts sum to %d, want %d", totalCount, resp.Summary.TotalComments)
	}
	if math.Abs(totalPct-100) > 1e-9 {
		t.Errorf("percentages sum to %f, want 100", totalPct)
	}

	for _, result := range resp.Results {
		if result.Probabilities == nil {
			t.Fatal("expected probabilities on every result")
		}
		var sum float64
		for _, p := range result.Probabilities {
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("probabilities sum to %f, want 1", sum)
		}
	}
}

func TestAnalyzeModelUnavailable(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "missing.json"))

	_, err := s.Analyze([]string{"anything"})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestAnalyzeReloadsOnce(t *testing.T) {
	artifact := testArtifact(t)
	path := filepath.Join(t.TempDir(), "model.json")
	if err := ml.SaveArtifact(artifact, path); err != nil {
		t.Fatal(err)
	}

	// service constructed but never explicitly loaded: the first
	// Analyze call performs the single reload
	s := NewService(path)
	if s.ModelLoaded() {
		t.Fatal("model should not be loaded yet")
	}

	resp, err := s.Analyze([]string{"love this great video"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if !s.ModelLoaded() {
		t.Error("model should be loaded after successful reload")
	}
}
