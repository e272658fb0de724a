package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/bibek1414/youtube-comment-analyzer/internal/clients"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

const (
	TRAINING_RUNS_TABLE_NAME    = "TrainingRuns"
	ANALYSIS_RESULTS_TABLE_NAME = "AnalysisResults"

	DYNAMODB_BATCH_SIZE = 25
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoreTrainingRun records one trainer invocation in the experiment
// tracking table. This is the versioning/lineage half of the dual
// persistence scheme; the flat artifact file is the other half.
func StoreTrainingRun(ctx context.Context, run models.TrainingRun) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	item, err := attributevalue.MarshalMap(run)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal training run: %w", err)
	}

	_, err = dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(TRAINING_RUNS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store training run: %w", err)
	}

	slog.Info("[DynamoDB] Training run recorded",
		slog.String("run_id", run.RunID),
		slog.String("status", run.Status))
	return nil
}

// GetTrainingRuns scans the experiment table, newest runs included;
// used by the /training-runs endpoint for lineage inspection.
func GetTrainingRuns(ctx context.Context) ([]models.TrainingRun, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	var runs []models.TrainingRun
	paginator := dynamodb.NewScanPaginator(dbClient, &dynamodb.ScanInput{
		TableName: aws.String(TRAINING_RUNS_TABLE_NAME),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for training runs failed: %w", err)
		}
		var page []models.TrainingRun
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("[DynamoDB] Unable to unmarshal training runs: %w", err)
		}
		runs = append(runs, page...)
	}

	slog.Info("[DynamoDB] Retrieved training runs", slog.Int("count", len(runs)))
	return runs, nil
}

// BatchInsertAnalysisResults writes per-comment results in chunks of
// 25, retrying unprocessed items with backoff.
func BatchInsertAnalysisResults(ctx context.Context, results []models.StoredResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	for start := 0; start < len(results); start += DYNAMODB_BATCH_SIZE {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := start + DYNAMODB_BATCH_SIZE
		if end > len(results) {
			end = len(results)
		}

		writeRequests := make([]types.WriteRequest, 0, end-start)
		for _, result := range results[start:end] {
			item, err := attributevalue.MarshalMap(result)
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to marshal result: %w", err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				ANALYSIS_RESULTS_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write results: %w", err)
		}

		retryCount := 0
		backoff := 500 * time.Millisecond
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2

			slog.Warn("[DynamoDB] Retrying unprocessed result items...",
				slog.Int("attempt", retryCount+1),
				slog.Int("remaining", len(out.UnprocessedItems[ANALYSIS_RESULTS_TABLE_NAME])))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some results were not written even after retries",
				slog.Int("remaining", len(out.UnprocessedItems[ANALYSIS_RESULTS_TABLE_NAME])))
		}
	}

	slog.Info("[DynamoDB] Stored analysis results", slog.Int("count", len(results)))
	return nil
}
