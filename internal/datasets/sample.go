package datasets

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
)

// Synthetic fallback rows, one per class per source. Only good for
// smoke-testing the training pipeline end to end.
var sampleRows = map[string][][2]string{
	TwitterTextColumn: {
		{"I love this product, it's amazing!", "1"},
		{"This is just okay, nothing special.", "0"},
		{"Terrible experience, would not recommend.", "-1"},
	},
	RedditTextColumn: {
		{"The service was outstanding and the staff was friendly.", "1"},
		{"Not sure how I feel about this, seems average.", "0"},
		{"Worst purchase I've ever made, complete waste of money.", "-1"},
	},
}

func writeSampleData(path, textColumn string) error {
	rows, ok := sampleRows[textColumn]
	if !ok {
		rows = sampleRows[TwitterTextColumn]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{textColumn, labelColumn}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	slog.Info("[Datasets] Sample data written",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}
