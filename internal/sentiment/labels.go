package sentiment

import "strconv"

// Sentiment is the canonical 3-class vocabulary shared by training and
// inference. The integer values are part of the persisted artifact and
// must never change.
type Sentiment int

const (
	Negative Sentiment = 0
	Neutral  Sentiment = 1
	Positive Sentiment = 2
)

var names = [...]string{"negative", "neutral", "positive"}

// canonical is the single source of truth for label unification. The
// reverse (id -> name) direction comes out of the same table via
// String/FromID so the two mappings cannot drift apart.
var canonical = map[string]Sentiment{
	"negative": Negative,
	"neutral":  Neutral,
	"positive": Positive,
	"-1":       Negative,
	"0":        Neutral,
	"1":        Positive,
}

func (s Sentiment) String() string {
	if s < Negative || s > Positive {
		return "unknown"
	}
	return names[s]
}

// Names returns the canonical label names in id order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// FromID maps a predicted class id back to its canonical sentiment.
func FromID(id int) (Sentiment, bool) {
	if id < int(Negative) || id > int(Positive) {
		return 0, false
	}
	return Sentiment(id), true
}

// Unify reconciles a raw dataset label into the canonical vocabulary.
// The source datasets mix {-1,0,1} integers, their string forms, and
// occasionally the plain names; anything else is reported as absent and
// the caller must drop the row rather than default it.
func Unify(raw any) (Sentiment, bool) {
	switch v := raw.(type) {
	case string:
		s, ok := canonical[v]
		return s, ok
	case int:
		s, ok := canonical[strconv.Itoa(v)]
		return s, ok
	case int64:
		s, ok := canonical[strconv.FormatInt(v, 10)]
		return s, ok
	case float64:
		// CSV readers and JSON decoders hand numeric categories over as
		// floats; only whole values can match the vocabulary.
		if v != float64(int64(v)) {
			return 0, false
		}
		s, ok := canonical[strconv.FormatInt(int64(v), 10)]
		return s, ok
	default:
		return 0, false
	}
}
