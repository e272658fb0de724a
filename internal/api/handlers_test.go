package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bibek1414/youtube-comment-analyzer/internal/analyzer"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

type stubAnalyzer struct {
	loaded bool
	err    error
}

func (s *stubAnalyzer) ModelLoaded() bool { return s.loaded }

func (s *stubAnalyzer) Analyze(comments []string) (*models.AnalysisResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	results := make([]models.ClassificationResult, len(comments))
	counts := map[string]int{"negative": 0, "neutral": 0, "positive": 0}
	for i, comment := range comments {
		results[i] = models.ClassificationResult{
			Comment: comment, Sentiment: "neutral", SentimentID: 1,
		}
		counts["neutral"]++
	}

	distribution := make(map[string]models.SentimentBucket)
	for name, count := range counts {
		var pct float64
		if len(comments) > 0 {
			pct = float64(count) / float64(len(comments)) * 100
		}
		distribution[name] = models.SentimentBucket{Count: count, Percentage: pct}
	}

	return &models.AnalysisResponse{
		Results: results,
		Summary: models.AnalysisSummary{
			TotalComments:         len(comments),
			SentimentDistribution: distribution,
		},
	}, nil
}

func testRouter(a SentimentAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(NewHandler(a, HandlerOptions{}))
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(&stubAnalyzer{loaded: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, true, body["model_loaded"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := testRouter(&stubAnalyzer{loaded: true})

	payload, _ := json.Marshal(models.AnalyzeRequest{
		Comments: []string{"first", "second"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	require.Equal(t, "first", resp.Results[0].Comment)
	require.Equal(t, "second", resp.Results[1].Comment)
	require.Equal(t, 2, resp.Summary.TotalComments)
}

func TestAnalyzeEndpointModelUnavailable(t *testing.T) {
	router := testRouter(&stubAnalyzer{err: analyzer.ErrModelUnavailable})

	payload := []byte(`{"comments":["x"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAnalyzeEndpointBadBody(t *testing.T) {
	router := testRouter(&stubAnalyzer{loaded: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
