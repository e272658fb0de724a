package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bibek1414/youtube-comment-analyzer/config"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients/kafka_client"
	"github.com/bibek1414/youtube-comment-analyzer/internal/consumers"
	"github.com/bibek1414/youtube-comment-analyzer/internal/db"
	"github.com/bibek1414/youtube-comment-analyzer/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db.InitDynamoDB()

	cfg := kafka_client.GetKafkaConfig()
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_ANALYSIS_RESULTS,
		consumers.StartResultsConsumer)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
