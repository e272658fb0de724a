package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bibek1414/youtube-comment-analyzer/config"
	"github.com/bibek1414/youtube-comment-analyzer/internal/datasets"
	"github.com/bibek1414/youtube-comment-analyzer/internal/db"
	"github.com/bibek1414/youtube-comment-analyzer/internal/logging"
	"github.com/bibek1414/youtube-comment-analyzer/internal/ml"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	twitterPath := config.GetEnv("TWITTER_DATA_PATH", datasets.DefaultTwitterPath)
	redditPath := config.GetEnv("REDDIT_DATA_PATH", datasets.DefaultRedditPath)
	modelPath := config.GetEnv("MODEL_PATH", "models/sentiment_model.json")

	start := time.Now().UTC()
	run := models.TrainingRun{
		RunID:       newRunID(start),
		StartedAt:   start,
		ModelType:   "RandomForest",
		NumTrees:    ml.DefaultForestOptions().NumTrees,
		MaxFeatures: ml.NewVectorizer().MaxFeatures,
	}

	artifact, report, err := train(twitterPath, redditPath, modelPath, &run)
	run.DurationMS = time.Since(start).Milliseconds()
	if err != nil {
		run.Status = "failed"
		run.Reason = err.Error()
		slog.Error("[Trainer] Training failed", slog.String("error", err.Error()))
	} else {
		run.Status = "succeeded"
		run.ArtifactPath = modelPath
		slog.Info("[Trainer] Model training completed",
			slog.Float64("accuracy", report.Accuracy),
			slog.String("artifact", modelPath))
	}

	// record the run even when it failed; failed runs are lineage too
	if err := db.StoreTrainingRun(ctx, run); err != nil {
		slog.Warn("[Trainer] Failed to record training run",
			slog.String("error", err.Error()))
	}

	if artifact == nil {
		os.Exit(1)
	}
	smokeTest(artifact)
}

func train(twitterPath, redditPath, modelPath string, run *models.TrainingRun) (*ml.Artifact, *ml.TrainingReport, error) {
	rows, _, err := datasets.LoadTrainingData(twitterPath, redditPath)
	if err != nil {
		return nil, nil, err
	}

	artifact, report, err := ml.TrainPipeline(rows)
	if err != nil {
		return nil, nil, err
	}

	run.TrainRows = report.TrainRows
	run.TestRows = report.TestRows
	run.DroppedRows = report.DroppedRows
	run.Accuracy = report.Accuracy
	run.Precision = report.Precision
	run.Recall = report.Recall
	run.F1 = report.F1

	if err := ml.SaveArtifact(artifact, modelPath); err != nil {
		return nil, nil, fmt.Errorf("saving artifact: %w", err)
	}

	return artifact, report, nil
}

// smokeTest runs a few example comments through the freshly trained
// model, mirroring what anyone sanity-checking it by hand would do.
func smokeTest(artifact *ml.Artifact) {
	examples := []string{
		"This video is amazing, I love it!",
		"Not sure what to think about this content.",
		"Terrible video, waste of time.",
	}

	for _, comment := range examples {
		id := artifact.Predict(comment)
		label := "unknown"
		if id >= 0 && id < len(artifact.Labels) {
			label = artifact.Labels[id]
		}
		slog.Info("[Trainer] Smoke test prediction",
			slog.String("comment", comment),
			slog.String("sentiment", label),
			slog.Int("class", id))
	}
}

func newRunID(start time.Time) string {
	raw := fmt.Sprintf("train:%d", start.UnixNano())
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:8])
}
