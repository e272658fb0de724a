package models

import "time"

type AnalyzeRequest struct {
	Comments []string `json:"comments"`
}

// ClassificationResult is the per-comment outcome. Probabilities is only
// present when the artifact exposes calibrated class probabilities.
type ClassificationResult struct {
	Comment       string             `json:"comment"`
	Sentiment     string             `json:"sentiment"`
	SentimentID   int                `json:"sentiment_id"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

type SentimentBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type AnalysisSummary struct {
	TotalComments         int                        `json:"total_comments"`
	SentimentDistribution map[string]SentimentBucket `json:"sentiment_distribution"`
}

type AnalysisResponse struct {
	Results []ClassificationResult `json:"results"`
	Summary AnalysisSummary        `json:"summary"`
}

// VideoAnalysis is the cached /analyze-video payload: the raw analysis
// plus the fetched comment metadata and an optional OpenAI digest.
type VideoAnalysis struct {
	VideoID  string                 `json:"video_id"`
	Results  []ClassificationResult `json:"results"`
	Summary  AnalysisSummary        `json:"summary"`
	Comments []Comment              `json:"comments,omitempty"`
	Insights string                 `json:"insights,omitempty"`
	Analyzed time.Time              `json:"analyzed_at"`
}

// StoredResult is the flattened per-comment record published to Kafka
// and persisted in DynamoDB by the results consumer.
type StoredResult struct {
	ResultID    string    `json:"result_id" dynamodbav:"result_id"`
	VideoID     string    `json:"video_id" dynamodbav:"video_id"`
	Comment     string    `json:"comment" dynamodbav:"comment"`
	Sentiment   string    `json:"sentiment" dynamodbav:"sentiment"`
	SentimentID int       `json:"sentiment_id" dynamodbav:"sentiment_id"`
	Confidence  float64   `json:"confidence" dynamodbav:"confidence"`
	Timestamp   time.Time `json:"timestamp" dynamodbav:"timestamp"`
}
