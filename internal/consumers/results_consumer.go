package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/bibek1414/youtube-comment-analyzer/internal/clients/kafka_client"
	"github.com/bibek1414/youtube-comment-analyzer/internal/db"
	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
	"github.com/bibek1414/youtube-comment-analyzer/internal/utils"
)

var insertBuffer = utils.NewBatchBuffer[models.StoredResult]()

// insertResults is a seam for tests; production always writes through
// the DynamoDB batch insert.
var insertResults = db.BatchInsertAnalysisResults

type offsetCommitter interface {
	Commit(msg *kafka.Message) error
}

// StartResultsConsumer drains the analysis-results topic into the
// DynamoDB results table, committing offsets only after a batch has
// been stored.
func StartResultsConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[ResultsConsumer] Consumer shutting down...")
			processResults(ctx, committer)
			return
		case <-ticker.C:
			processResults(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var results []models.StoredResult
			if err := utils.DeserializeFromJSON(msg.Value, &results); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			for _, result := range results {
				utils.TrackMessage(result.ResultID, msg)
				insertBuffer.Add(result)
				if insertBuffer.Size() >= db.DYNAMODB_BATCH_SIZE {
					processResults(ctx, committer)
				}
			}
		}
	}
}

func processResults(ctx context.Context, committer offsetCommitter) {
	if insertBuffer.Size() == 0 {
		return
	}
	insertBuffer.LogBatchProcessing("analysis-results")
	batch := insertBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var insertErr error
	for i := 0; i < 3; i++ {
		insertErr = insertResults(ctx, batch)
		if insertErr == nil {
			break
		}
		slog.Error("[ResultsConsumer] Failed to write results to DB",
			slog.String("error", insertErr.Error()),
			slog.Int("attempt", i+1))
	}

	if insertErr != nil {
		// leave the offsets uncommitted; the messages redeliver after a
		// restart or rebalance instead of being silently lost
		slog.Error("[ResultsConsumer] Batch not stored, offsets left uncommitted",
			slog.Int("size", len(batch)))
		return
	}

	for _, result := range batch {
		msg, found := utils.GetMessageForResult(result.ResultID)
		if found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[ResultsConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
