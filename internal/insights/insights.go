package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bibek1414/youtube-comment-analyzer/internal/clients"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

const (
	openAIModel         = openai.GPT3Dot5Turbo1106
	openAIRetryAttempts = 3
	maxSampleComments   = 20
)

// GenerateDigest asks OpenAI for a short natural-language read of an
// analysis: what the audience mood is and the themes driving it.
// Returns "" when no API key is configured; the digest is strictly
// optional.
func GenerateDigest(ctx context.Context, summary models.AnalysisSummary, results []models.ClassificationResult) string {
	client, err := clients.GetOpenAIClient()
	if err != nil {
		slog.Debug("[Insights] OpenAI unavailable, skipping digest")
		return ""
	}

	messages := buildChatMessages(summary, results)

	var resp openai.ChatCompletionResponse
	var completionErr error
	for i := 0; i < openAIRetryAttempts; i++ {
		start := time.Now()
		resp, completionErr = client.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    openAIModel,
			Messages: messages,
		})
		if completionErr == nil {
			break
		}
		slog.Warn("[Insights] Failed to get a response from OpenAI, retrying...",
			slog.String("error", completionErr.Error()),
			slog.Int("attempt", i+1),
			slog.Duration("elapsed", time.Since(start)))
	}
	if completionErr != nil {
		slog.Warn("[Insights] Giving up on digest",
			slog.Int("attempts", openAIRetryAttempts),
			slog.String("error", completionErr.Error()))
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func buildChatMessages(summary models.AnalysisSummary, results []models.ClassificationResult) []openai.ChatCompletionMessage {
	systemMessage := `You summarize YouTube comment sentiment for a video creator.
You will receive a sentiment distribution and a sample of classified comments.
Respond with a short paragraph (3 sentences max) describing the overall audience mood and any recurring themes.
Do not repeat the raw numbers back; interpret them.`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total comments: %d\n", summary.TotalComments)
	for name, bucket := range summary.SentimentDistribution {
		fmt.Fprintf(&sb, "%s: %d (%.1f%%)\n", name, bucket.Count, bucket.Percentage)
	}
	sb.WriteString("\nSample comments:\n")
	for i, result := range results {
		if i >= maxSampleComments {
			break
		}
		fmt.Fprintf(&sb, "- [%s] %s\n", result.Sentiment, result.Comment)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
		{Role: openai.ChatMessageRoleUser, Content: sb.String()},
	}
}
