package ml

import (
	"math"
	"testing"
)

// a tiny linearly separable problem: class by which feature dominates
func forestFixture() ([]SparseVector, []int) {
	x := []SparseVector{
		{0: 0.9, 1: 0.1},
		{0: 0.8},
		{0: 0.7, 2: 0.1},
		{1: 0.9},
		{1: 0.8, 2: 0.1},
		{1: 0.7, 0: 0.1},
		{2: 0.9},
		{2: 0.8, 0: 0.1},
		{2: 0.7, 1: 0.1},
	}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return x, y
}

func TestFitForestLearnsSeparableData(t *testing.T) {
	x, y := forestFixture()
	forest := FitForest(x, y, 3, ForestOptions{NumTrees: 25, MaxDepth: 8, Seed: 42})

	correct := 0
	for i := range x {
		if forest.Predict(x[i]) == y[i] {
			correct++
		}
	}
	// bootstrap noise allows the odd miss, but most must be right
	if correct < len(x)-1 {
		t.Errorf("forest got %d/%d training points right", correct, len(x))
	}
}

func TestPredictProbaSumsToOne(t *testing.T) {
	x, y := forestFixture()
	forest := FitForest(x, y, 3, ForestOptions{NumTrees: 10, MaxDepth: 8, Seed: 42})

	probs := forest.PredictProba(SparseVector{0: 0.5, 1: 0.2})
	if len(probs) != 3 {
		t.Fatalf("expected 3 probabilities, got %d", len(probs))
	}
	var sum float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %f", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}
}

func TestFitForestDeterministic(t *testing.T) {
	x, y := forestFixture()
	opts := ForestOptions{NumTrees: 10, MaxDepth: 8, Seed: 42}

	a := FitForest(x, y, 3, opts)
	b := FitForest(x, y, 3, opts)

	probe := SparseVector{0: 0.4, 1: 0.4, 2: 0.2}
	pa := a.PredictProba(probe)
	pb := b.PredictProba(probe)
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("same seed produced different forests: %v vs %v", pa, pb)
		}
	}
}
