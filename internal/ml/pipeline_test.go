package ml

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

func trainingRows() []models.DatasetRow {
	return []models.DatasetRow{
		{Comment: "I love this video so much, great content", Label: "1"},
		{Comment: "great video love the content", Label: "1"},
		{Comment: "love it, this is great", Label: "positive"},
		{Comment: "this video is okay nothing special", Label: "0"},
		{Comment: "okay video nothing more", Label: "0"},
		{Comment: "nothing special about this, just okay", Label: "neutral"},
		{Comment: "terrible video waste of time", Label: "-1"},
		{Comment: "waste of time, terrible content", Label: "-1"},
		{Comment: "terrible waste, hate this video", Label: "negative"},
		{Comment: "hate it, terrible terrible", Label: "-1"},
	}
}

func TestTrainPipeline(t *testing.T) {
	artifact, report, err := TrainPipeline(trainingRows())
	require.NoError(t, err)
	require.NotNil(t, artifact)

	require.Equal(t, []string{"negative", "neutral", "positive"}, artifact.Labels)
	require.Equal(t, 8, report.TrainRows)
	require.Equal(t, 2, report.TestRows)
	require.Equal(t, 0, report.DroppedRows)

	id := artifact.Predict("I love this great video")
	require.GreaterOrEqual(t, id, 0)
	require.Less(t, id, 3)

	probs := artifact.PredictProba("terrible waste of time")
	require.Len(t, probs, 3)
}

func TestTrainPipelineDropsUnlabeledRows(t *testing.T) {
	rows := append(trainingRows(),
		models.DatasetRow{Comment: "mystery row", Label: "garbage"},
		models.DatasetRow{Comment: "another mystery", Label: "5"},
	)

	_, report, err := TrainPipeline(rows)
	require.NoError(t, err)
	require.Equal(t, 2, report.DroppedRows)
	require.Equal(t, 10, report.TrainRows+report.TestRows)
}

func TestTrainPipelineInsufficientData(t *testing.T) {
	rows := []models.DatasetRow{
		{Comment: "great", Label: "1"},
		{Comment: "bad", Label: "-1"},
		{Comment: "meh", Label: "0"},
	}

	artifact, _, err := TrainPipeline(rows)
	require.Nil(t, artifact)
	require.True(t, errors.Is(err, ErrInsufficientData))
}

func TestTrainPipelineKeepsEmptyCleanedText(t *testing.T) {
	rows := append(trainingRows(),
		// cleans to "" but carries a valid label: kept, not dropped
		models.DatasetRow{Comment: "12345 !!!", Label: "0"},
	)

	_, report, err := TrainPipeline(rows)
	require.NoError(t, err)
	require.Equal(t, 0, report.DroppedRows)
	require.Equal(t, 11, report.TrainRows+report.TestRows)
}

func TestSaveLoadArtifactRoundTrip(t *testing.T) {
	artifact, _, err := TrainPipeline(trainingRows())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveArtifact(artifact, path))

	loaded, err := LoadArtifact(path)
	require.NoError(t, err)
	require.Equal(t, artifact.Labels, loaded.Labels)

	// the loaded artifact must predict identically
	for _, text := range []string{"love this great video", "terrible waste", "okay nothing"} {
		require.Equal(t, artifact.Predict(text), loaded.Predict(text), "text %q", text)
	}
}

func TestLoadArtifactMissing(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
