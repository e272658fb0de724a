package ml

import (
	"math"
	"testing"
)

func TestEvaluatePerfect(t *testing.T) {
	y := []int{0, 1, 2, 0, 1, 2}
	m := Evaluate(y, y, 3)

	for name, got := range map[string]float64{
		"accuracy": m.Accuracy, "precision": m.Precision,
		"recall": m.Recall, "f1": m.F1,
	} {
		if math.Abs(got-1) > 1e-9 {
			t.Errorf("%s = %f, want 1", name, got)
		}
	}
}

func TestEvaluateWeighted(t *testing.T) {
	yTrue := []int{0, 0, 0, 1}
	yPred := []int{0, 0, 1, 1}
	m := Evaluate(yTrue, yPred, 3)

	if math.Abs(m.Accuracy-0.75) > 1e-9 {
		t.Errorf("accuracy = %f, want 0.75", m.Accuracy)
	}
	// class 0: p=1, r=2/3; class 1: p=1/2, r=1; weights 3/4 and 1/4
	wantPrecision := 0.75*1 + 0.25*0.5
	if math.Abs(m.Precision-wantPrecision) > 1e-9 {
		t.Errorf("precision = %f, want %f", m.Precision, wantPrecision)
	}
	wantRecall := 0.75*(2.0/3.0) + 0.25*1
	if math.Abs(m.Recall-wantRecall) > 1e-9 {
		t.Errorf("recall = %f, want %f", m.Recall, wantRecall)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	m := Evaluate(nil, nil, 3)
	if m.Accuracy != 0 || m.F1 != 0 {
		t.Errorf("expected zero metrics for empty input, got %+v", m)
	}
}
