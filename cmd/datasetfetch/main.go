package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/bibek1414/youtube-comment-analyzer/config"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients"
	"github.com/bibek1414/youtube-comment-analyzer/internal/datasets"
	"github.com/bibek1414/youtube-comment-analyzer/internal/logging"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
	"github.com/bibek1414/youtube-comment-analyzer/internal/sentiment"
)

const commentsPerSubreddit = 100

// datasetfetch grows the Reddit training CSV: it pulls recent comments
// from a few general-interest subreddits, flattens the markdown, labels
// each comment with VADER, and appends the rows in the dataset's
// {clean_comment,category} schema.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	subreddits := strings.Split(
		config.GetEnv("DATASET_SUBREDDITS", "videos,movies,technology,music"), ",")
	redditPath := config.GetEnv("REDDIT_DATA_PATH", datasets.DefaultRedditPath)

	rc := clients.GetRedditClient()

	var rows []models.DatasetRow
	for _, subreddit := range subreddits {
		subreddit = strings.TrimSpace(subreddit)
		if subreddit == "" {
			continue
		}

		comments, err := rc.FetchSubredditComments(subreddit, commentsPerSubreddit)
		if err != nil {
			slog.Error("[DatasetFetch] Failed to fetch subreddit comments",
				slog.String("subreddit", subreddit),
				slog.String("error", err.Error()))
			continue
		}

		for _, comment := range comments {
			plain := sentiment.ConvertMarkdownToText(comment.Body)
			if plain == "" {
				continue
			}
			_, label := sentiment.AnalyzeWithVADER(comment.Body)
			rows = append(rows, models.DatasetRow{
				Comment: plain,
				Label:   sentiment.CategoryCode(label),
			})
		}
	}

	if len(rows) == 0 {
		slog.Warn("[DatasetFetch] Nothing fetched, dataset unchanged")
		return
	}

	if err := datasets.AppendRows(redditPath, datasets.RedditTextColumn, rows); err != nil {
		slog.Error("[DatasetFetch] Failed to append rows",
			slog.String("path", redditPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[DatasetFetch] Dataset extended",
		slog.String("path", redditPath),
		slog.Int("rows_added", len(rows)))
}
