package models

import "time"

// TrainingRun is the experiment-tracking record written to DynamoDB for
// every trainer invocation, successful or not.
type TrainingRun struct {
	RunID        string    `json:"run_id" dynamodbav:"run_id"`
	StartedAt    time.Time `json:"started_at" dynamodbav:"started_at"`
	DurationMS   int64     `json:"duration_ms" dynamodbav:"duration_ms"`
	ModelType    string    `json:"model_type" dynamodbav:"model_type"`
	NumTrees     int       `json:"n_estimators" dynamodbav:"n_estimators"`
	MaxFeatures  int       `json:"max_features" dynamodbav:"max_features"`
	TrainRows    int       `json:"train_rows" dynamodbav:"train_rows"`
	TestRows     int       `json:"test_rows" dynamodbav:"test_rows"`
	DroppedRows  int       `json:"dropped_rows" dynamodbav:"dropped_rows"`
	Accuracy     float64   `json:"accuracy" dynamodbav:"accuracy"`
	Precision    float64   `json:"precision" dynamodbav:"precision"`
	Recall       float64   `json:"recall" dynamodbav:"recall"`
	F1           float64   `json:"f1" dynamodbav:"f1"`
	ArtifactPath string    `json:"artifact_path" dynamodbav:"artifact_path"`
	Status       string    `json:"status" dynamodbav:"status"`
	Reason       string    `json:"reason,omitempty" dynamodbav:"reason,omitempty"`
}
