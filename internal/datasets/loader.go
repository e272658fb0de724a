package datasets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

const (
	DefaultTwitterPath = "data/Twitter_Data.csv"
	DefaultRedditPath  = "data/Reddit_Data.csv"

	// per-source text column names; both unify to {comment,label}
	TwitterTextColumn = "clean_text"
	RedditTextColumn  = "clean_comment"

	labelColumn = "category"
)

// ErrDataUnavailable means a dataset file could not be read and the
// synthetic fallback could not be written either.
var ErrDataUnavailable = errors.New("training data unavailable")

// LoadTrainingData loads both source datasets, unifies their schemas
// and concatenates them in Twitter-then-Reddit order. A missing or
// empty file is replaced by a small built-in synthetic dataset so the
// pipeline always has *something* trainable; that is a smoke-test
// convenience, not a path to a production model.
func LoadTrainingData(twitterPath, redditPath string) ([]models.DatasetRow, models.LoadStats, error) {
	var stats models.LoadStats

	twitter, err := loadSource(twitterPath, TwitterTextColumn, &stats)
	if err != nil {
		return nil, stats, err
	}
	stats.TwitterRows = len(twitter)

	reddit, err := loadSource(redditPath, RedditTextColumn, &stats)
	if err != nil {
		return nil, stats, err
	}
	stats.RedditRows = len(reddit)

	rows := append(twitter, reddit...)
	slog.Info("[Datasets] Combined datasets",
		slog.Int("twitter_rows", stats.TwitterRows),
		slog.Int("reddit_rows", stats.RedditRows),
		slog.Bool("used_fallback", stats.UsedFallback),
		slog.Int("skipped_bad_rows", stats.SkippedBadRow))

	return rows, stats, nil
}

func loadSource(path, textColumn string, stats *models.LoadStats) ([]models.DatasetRow, error) {
	rows, err := readCSV(path, textColumn, stats)
	if err == nil && len(rows) > 0 {
		return rows, nil
	}

	if err != nil {
		slog.Warn("[Datasets] Dataset unreadable, writing synthetic fallback",
			slog.String("path", path),
			slog.String("error", err.Error()))
	} else {
		slog.Warn("[Datasets] Dataset empty, writing synthetic fallback",
			slog.String("path", path))
	}

	if err := writeSampleData(path, textColumn); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	stats.UsedFallback = true

	rows, err = readCSV(path, textColumn, stats)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, path, err)
	}
	return rows, nil
}

// readCSV loads one source file and renames its columns into the common
// {comment,label} shape. Labels stay strings; mapping to canonical
// sentiments happens in the training pipeline.
func readCSV(path, textColumn string, stats *models.LoadStats) ([]models.DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	textIdx, labelIdx := -1, -1
	for i, col := range header {
		switch col {
		case textColumn:
			textIdx = i
		case labelColumn:
			labelIdx = i
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, fmt.Errorf("%s: expected columns %q and %q, got %v",
			path, textColumn, labelColumn, header)
	}

	var rows []models.DatasetRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.SkippedBadRow++
			continue
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			stats.SkippedBadRow++
			continue
		}
		rows = append(rows, models.DatasetRow{
			Comment: record[textIdx],
			Label:   record[labelIdx],
		})
	}
	return rows, nil
}

// AppendRows appends labeled rows to a source CSV, writing the header
// first when the file does not exist yet. Used by the dataset fetcher.
func AppendRows(path, textColumn string, rows []models.DatasetRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write([]string{textColumn, labelColumn}); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Comment, row.Label}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
