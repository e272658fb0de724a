package ml

import (
	"time"
)

// Artifact is the fitted vectorizer+forest pair plus the label
// vocabulary it was trained against. Read-only after load; the analyzer
// swaps whole artifacts, never mutates one.
type Artifact struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Forest     *Forest     `json:"forest"`
	Labels     []string    `json:"labels"`
	TrainedAt  time.Time   `json:"trained_at"`
}

// Predict classifies raw text. No cleaning pass is applied here; the
// vectorizer's own tokenization absorbs the noise, matching how the
// model has always been served.
func (a *Artifact) Predict(text string) int {
	return a.Forest.Predict(a.Vectorizer.Transform(text))
}

// PredictProba returns the class-probability vector in label order.
func (a *Artifact) PredictProba(text string) []float64 {
	if a.Forest == nil {
		return nil
	}
	return a.Forest.PredictProba(a.Vectorizer.Transform(text))
}
