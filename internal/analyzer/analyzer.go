package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bibek1414/youtube-comment-analyzer/internal/ml"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
	"github.com/bibek1414/youtube-comment-analyzer/internal/sentiment"
)

// ErrModelUnavailable is returned when no artifact is loaded and the
// single reload attempt failed. Callers surface it as a
// service-unavailable condition.
var ErrModelUnavailable = errors.New("sentiment model not available")

// Service classifies batches of raw comments against the currently
// loaded artifact. The artifact is read-only after load and held behind
// an atomic pointer, so concurrent requests need no locking; reload
// builds a complete new artifact and swaps the pointer.
type Service struct {
	artifact     atomic.Pointer[ml.Artifact]
	artifactPath string
	reloadMu     sync.Mutex
	loader       func(string) (*ml.Artifact, error)
}

func NewService(artifactPath string) *Service {
	return &Service{
		artifactPath: artifactPath,
		loader:       ml.LoadArtifact,
	}
}

// LoadModel loads the artifact from disk and atomically swaps it in.
// Readers see either the old artifact or the new one, never a partial
// state.
func (s *Service) LoadModel() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	artifact, err := s.loader(s.artifactPath)
	if err != nil {
		slog.Error("[Analyzer] Failed to load model",
			slog.String("path", s.artifactPath),
			slog.String("error", err.Error()))
		return err
	}

	s.artifact.Store(artifact)
	slog.Info("[Analyzer] Model loaded",
		slog.String("path", s.artifactPath),
		slog.Time("trained_at", artifact.TrainedAt))
	return nil
}

func (s *Service) ModelLoaded() bool {
	return s.artifact.Load() != nil
}

// Analyze classifies the batch in input order and derives the aggregate
// distribution. If no artifact is loaded it attempts one reload before
// giving up with ErrModelUnavailable.
func (s *Service) Analyze(comments []string) (*models.AnalysisResponse, error) {
	artifact := s.artifact.Load()
	if artifact == nil {
		if err := s.LoadModel(); err != nil {
			return nil, ErrModelUnavailable
		}
		artifact = s.artifact.Load()
		if artifact == nil {
			return nil, ErrModelUnavailable
		}
	}

	results := make([]models.ClassificationResult, 0, len(comments))
	counts := make(map[string]int, len(artifact.Labels))
	for _, name := range artifact.Labels {
		counts[name] = 0
	}

	for _, comment := range comments {
		// raw text goes straight into the persisted vectorizer; there
		// is deliberately no cleaning pass at serving time
		probs := artifact.PredictProba(comment)
		id := 0
		for j := range probs {
			if probs[j] > probs[id] {
				id = j
			}
		}

		label, ok := sentiment.FromID(id)
		if !ok {
			label = sentiment.Neutral
		}
		name := label.String()
		counts[name]++

		result := models.ClassificationResult{
			Comment:     comment,
			Sentiment:   name,
			SentimentID: id,
		}
		if probs != nil {
			result.Probabilities = make(map[string]float64, len(probs))
			for j, p := range probs {
				if j < len(artifact.Labels) {
					result.Probabilities[artifact.Labels[j]] = p
				}
			}
		}
		results = append(results, result)
	}

	total := len(comments)
	distribution := make(map[string]models.SentimentBucket, len(counts))
	for name, count := range counts {
		var pct float64
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		distribution[name] = models.SentimentBucket{Count: count, Percentage: pct}
	}

	return &models.AnalysisResponse{
		Results: results,
		Summary: models.AnalysisSummary{
			TotalComments:         total,
			SentimentDistribution: distribution,
		},
	}, nil
}

// WatchArtifact reloads the model whenever the artifact file's mtime
// changes, so a freshly trained model is picked up without a restart.
func (s *Service) WatchArtifact(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := os.Stat(s.artifactPath); err == nil {
		lastMod = info.ModTime()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(s.artifactPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(lastMod) {
				slog.Info("[Analyzer] Artifact changed on disk, reloading")
				if err := s.LoadModel(); err == nil {
					lastMod = info.ModTime()
				}
			}
		}
	}
}
