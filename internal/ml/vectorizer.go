package ml

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// SparseVector is a tf-idf document vector keyed by vocabulary index.
type SparseVector map[int]float64

// tokens of at least two word characters, the sklearn default the
// original model was trained with
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer is a bag-of-words tf-idf vectorizer. The fitted vocabulary
// and idf weights are part of the persisted artifact; inference must
// reuse them unchanged.
type Vectorizer struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	MaxFeatures int            `json:"max_features"`
	MinDF       int            `json:"min_df"`
	MaxDF       float64        `json:"max_df"`
}

func NewVectorizer() *Vectorizer {
	return &Vectorizer{
		MaxFeatures: 5000,
		MinDF:       2,
		MaxDF:       0.8,
	}
}

func tokenize(doc string) []string {
	return tokenPattern.FindAllString(strings.ToLower(doc), -1)
}

// Fit builds the vocabulary from the training corpus: terms must appear
// in at least MinDF documents and in at most MaxDF of them, and the
// vocabulary is capped at MaxFeatures terms (ties broken by total
// corpus frequency, then alphabetically).
func (v *Vectorizer) Fit(docs []string) error {
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			termFreq[tok]++
			if !seen[tok] {
				docFreq[tok]++
				seen[tok] = true
			}
		}
	}

	n := len(docs)
	maxDocs := int(v.MaxDF * float64(n))

	var terms []string
	for term, df := range docFreq {
		if df < v.MinDF || df > maxDocs {
			continue
		}
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return errors.New("no terms survive document-frequency pruning")
	}

	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}

	sort.Strings(terms)
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// smoothed idf, matching the formulation the artifact was
		// originally fitted with
		v.IDF[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	return nil
}

// Transform maps a raw document onto the fitted vocabulary. The
// vectorizer does its own lowercasing and tokenization, which is why
// serving-time input needs no separate cleaning pass.
func (v *Vectorizer) Transform(doc string) SparseVector {
	vec := make(SparseVector)
	for _, tok := range tokenize(doc) {
		if idx, ok := v.Vocabulary[tok]; ok {
			vec[idx] += v.IDF[idx]
		}
	}

	// L2 normalize
	var sumSq float64
	for _, val := range vec {
		sumSq += val * val
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}

// TransformAll vectorizes a corpus in document order.
func (v *Vectorizer) TransformAll(docs []string) []SparseVector {
	out := make([]SparseVector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// NumFeatures reports the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Vocabulary)
}
