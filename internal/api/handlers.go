package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibek1414/youtube-comment-analyzer/internal/analyzer"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients/kafka_client"
	"github.com/bibek1414/youtube-comment-analyzer/internal/db"
	"github.com/bibek1414/youtube-comment-analyzer/internal/insights"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

// SentimentAnalyzer is what the handlers need from the inference
// service; narrowed to an interface so tests can stub it.
type SentimentAnalyzer interface {
	Analyze(comments []string) (*models.AnalysisResponse, error)
	ModelLoaded() bool
}

type Handler struct {
	analyzer SentimentAnalyzer

	// optional collaborators; any of these may be nil/false and the
	// corresponding feature is skipped
	cache          *clients.ValkeyClient
	publishResults bool
	enableInsights bool
}

type HandlerOptions struct {
	Cache          *clients.ValkeyClient
	PublishResults bool
	EnableInsights bool
}

func NewHandler(a SentimentAnalyzer, opts HandlerOptions) *Handler {
	return &Handler{
		analyzer:       a,
		cache:          opts.Cache,
		publishResults: opts.PublishResults,
		enableInsights: opts.EnableInsights,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": h.analyzer.ModelLoaded(),
	})
}

// AnalyzeComments classifies a batch of raw comment strings. Results
// come back in input order; the summary always covers all three
// sentiment classes.
func (h *Handler) AnalyzeComments(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.analyzer.Analyze(req.Comments)
	if err != nil {
		if errors.Is(err, analyzer.ErrModelUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not available"})
			return
		}
		slog.Error("[API] Analysis failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing comments: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// FetchComments proxies the YouTube commentThreads call. Upstream
// failures keep their status and message; nothing is retried here
// beyond the client's own 5xx backoff.
func (h *Handler) FetchComments(c *gin.Context) {
	var req models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	yc, err := clients.GetYouTubeClient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key not configured"})
		return
	}

	comments, err := yc.FetchComments(c.Request.Context(), req.VideoID, req.MaxComments)
	if err != nil {
		h.upstreamFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AnalyzeVideo fetches a video's comments and classifies them in one
// call. Finished analyses are cached per video id, optionally published
// to Kafka, and optionally annotated with an OpenAI digest.
func (h *Handler) AnalyzeVideo(c *gin.Context) {
	var req models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, ok := h.cache.GetVideoAnalysis(ctx, req.VideoID); ok {
			slog.Info("[API] Serving cached analysis",
				slog.String("video_id", req.VideoID))
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	yc, err := clients.GetYouTubeClient()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key not configured"})
		return
	}

	comments, err := yc.FetchComments(ctx, req.VideoID, req.MaxComments)
	if err != nil {
		h.upstreamFailure(c, err)
		return
	}

	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Text
	}

	resp, err := h.analyzer.Analyze(texts)
	if err != nil {
		if errors.Is(err, analyzer.ErrModelUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing comments: " + err.Error()})
		return
	}

	analysis := models.VideoAnalysis{
		VideoID:  req.VideoID,
		Results:  resp.Results,
		Summary:  resp.Summary,
		Comments: comments,
		Analyzed: time.Now().UTC(),
	}

	if h.enableInsights {
		analysis.Insights = insights.GenerateDigest(ctx, resp.Summary, resp.Results)
	}

	if h.cache != nil {
		if err := h.cache.CacheVideoAnalysis(ctx, analysis); err != nil {
			slog.Warn("[API] Failed to cache analysis",
				slog.String("video_id", req.VideoID),
				slog.String("error", err.Error()))
		}
	}

	if h.publishResults {
		h.publish(analysis)
	}

	c.JSON(http.StatusOK, analysis)
}

// TrainingRuns exposes the experiment-tracking table for lineage
// inspection.
func (h *Handler) TrainingRuns(c *gin.Context) {
	runs, err := db.GetTrainingRuns(c.Request.Context())
	if err != nil {
		slog.Error("[API] Failed to fetch training runs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch training runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) upstreamFailure(c *gin.Context, err error) {
	var upstream *clients.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.StatusCode, gin.H{"error": upstream.Message})
		return
	}
	slog.Error("[API] Comment fetch failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments: " + err.Error()})
}

func (h *Handler) publish(analysis models.VideoAnalysis) {
	stored := make([]models.StoredResult, 0, len(analysis.Results))
	for _, result := range analysis.Results {
		stored = append(stored, models.StoredResult{
			ResultID:    resultID(analysis.VideoID, result.Comment),
			VideoID:     analysis.VideoID,
			Comment:     result.Comment,
			Sentiment:   result.Sentiment,
			SentimentID: result.SentimentID,
			Confidence:  maxProbability(result.Probabilities),
			Timestamp:   analysis.Analyzed,
		})
	}

	err := kafka_client.PublishToKafka(
		kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS, analysis.VideoID, stored)
	if err != nil {
		slog.Warn("[API] Failed to publish results to Kafka",
			slog.String("video_id", analysis.VideoID),
			slog.String("error", err.Error()))
		return
	}
	slog.Info("[API] Published analysis results",
		slog.String("video_id", analysis.VideoID),
		slog.Int("count", len(stored)))
}

func resultID(videoID, comment string) string {
	raw := fmt.Sprintf("%s:%s", videoID, comment)
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

func maxProbability(probs map[string]float64) float64 {
	var max float64
	for _, p := range probs {
		if p > max {
			max = p
		}
	}
	return max
}
