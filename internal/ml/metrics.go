package ml

// Metrics are the held-out evaluation numbers recorded with each
// training run. Precision, recall and F1 are support-weighted over the
// three classes.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

func Evaluate(yTrue, yPred []int, numClasses int) Metrics {
	if len(yTrue) == 0 {
		return Metrics{}
	}

	tp := make([]int, numClasses)
	fp := make([]int, numClasses)
	fn := make([]int, numClasses)
	support := make([]int, numClasses)
	correct := 0

	for i := range yTrue {
		support[yTrue[i]]++
		if yPred[i] == yTrue[i] {
			tp[yTrue[i]]++
			correct++
		} else {
			fp[yPred[i]]++
			fn[yTrue[i]]++
		}
	}

	var m Metrics
	m.Accuracy = float64(correct) / float64(len(yTrue))

	total := float64(len(yTrue))
	for c := 0; c < numClasses; c++ {
		var precision, recall, f1 float64
		if tp[c]+fp[c] > 0 {
			precision = float64(tp[c]) / float64(tp[c]+fp[c])
		}
		if tp[c]+fn[c] > 0 {
			recall = float64(tp[c]) / float64(tp[c]+fn[c])
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		weight := float64(support[c]) / total
		m.Precision += weight * precision
		m.Recall += weight * recall
		m.F1 += weight * f1
	}

	return m
}
