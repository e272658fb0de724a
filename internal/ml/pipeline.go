package ml

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
	"github.com/bibek1414/youtube-comment-analyzer/internal/sentiment"
)

const (
	MinUsableRows = 5
	TestFraction  = 0.2
	SplitSeed     = 42
)

// ErrInsufficientData means fewer than MinUsableRows rows survived
// cleaning; training on such a set is rejected rather than producing a
// degenerate model.
var ErrInsufficientData = errors.New("not enough data to train the model")

// TrainingReport carries the evaluation metrics and row accounting for
// one training run.
type TrainingReport struct {
	Metrics
	TrainRows   int
	TestRows    int
	DroppedRows int
}

// TrainPipeline runs the full training recipe over unified dataset
// rows: normalize text, map labels, drop unlabeled rows, split 80/20
// with a fixed seed, fit tf-idf + random forest, evaluate on the
// held-out split.
func TrainPipeline(rows []models.DatasetRow) (*Artifact, *TrainingReport, error) {
	var (
		texts   []string
		labels  []int
		dropped int
	)

	for _, row := range rows {
		label, ok := sentiment.Unify(row.Label)
		if !ok {
			// unlabeled rows are dropped, never defaulted to a class
			dropped++
			continue
		}
		// a row whose cleaned text is empty is still kept as long as
		// its label maps; only label absence drops a row
		texts = append(texts, sentiment.Normalize(row.Comment))
		labels = append(labels, int(label))
	}

	if dropped > 0 {
		slog.Info("[Training] Dropped rows with unmappable labels",
			slog.Int("dropped", dropped))
	}

	if len(texts) < MinUsableRows {
		return nil, nil, fmt.Errorf("%w: %d usable rows, need at least %d",
			ErrInsufficientData, len(texts), MinUsableRows)
	}

	rng := rand.New(rand.NewSource(SplitSeed))
	perm := rng.Perm(len(texts))

	numTest := int(float64(len(texts)) * TestFraction)
	if numTest < 1 {
		numTest = 1
	}
	numTrain := len(texts) - numTest

	trainTexts := make([]string, 0, numTrain)
	trainLabels := make([]int, 0, numTrain)
	testTexts := make([]string, 0, numTest)
	testLabels := make([]int, 0, numTest)
	for i, p := range perm {
		if i < numTrain {
			trainTexts = append(trainTexts, texts[p])
			trainLabels = append(trainLabels, labels[p])
		} else {
			testTexts = append(testTexts, texts[p])
			testLabels = append(testLabels, labels[p])
		}
	}

	slog.Info("[Training] Fitting pipeline",
		slog.Int("train_rows", numTrain),
		slog.Int("test_rows", numTest))

	vectorizer := NewVectorizer()
	if err := vectorizer.Fit(trainTexts); err != nil {
		return nil, nil, fmt.Errorf("fitting vectorizer: %w", err)
	}

	start := time.Now()
	forest := FitForest(vectorizer.TransformAll(trainTexts), trainLabels,
		len(sentiment.Names()), DefaultForestOptions())
	slog.Info("[Training] Forest fitted",
		slog.Int("n_estimators", forest.NumTrees),
		slog.Int("vocabulary_size", vectorizer.NumFeatures()),
		slog.Duration("elapsed", time.Since(start)))

	preds := make([]int, len(testTexts))
	for i, text := range testTexts {
		preds[i] = forest.Predict(vectorizer.Transform(text))
	}
	metrics := Evaluate(testLabels, preds, len(sentiment.Names()))

	slog.Info("[Training] Held-out evaluation",
		slog.Float64("accuracy", metrics.Accuracy),
		slog.Float64("precision", metrics.Precision),
		slog.Float64("recall", metrics.Recall),
		slog.Float64("f1", metrics.F1))

	artifact := &Artifact{
		Vectorizer: vectorizer,
		Forest:     forest,
		Labels:     sentiment.Names(),
		TrainedAt:  time.Now().UTC(),
	}

	report := &TrainingReport{
		Metrics:     metrics,
		TrainRows:   numTrain,
		TestRows:    numTest,
		DroppedRows: dropped,
	}

	return artifact, report, nil
}
