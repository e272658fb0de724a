package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bibek1414/youtube-comment-analyzer/config"
	"github.com/bibek1414/youtube-comment-analyzer/internal/analyzer"
	"github.com/bibek1414/youtube-comment-analyzer/internal/api"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients"
	"github.com/bibek1414/youtube-comment-analyzer/internal/clients/kafka_client"
	"github.com/bibek1414/youtube-comment-analyzer/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	modelPath := config.GetEnv("MODEL_PATH", "models/sentiment_model.json")
	service := analyzer.NewService(modelPath)
	if err := service.LoadModel(); err != nil {
		// the first /analyze attempts one reload; until then /health
		// reports model_loaded=false
		slog.Warn("[Main] Starting without a loaded model",
			slog.String("path", modelPath),
			slog.String("error", err.Error()))
	}
	go service.WatchArtifact(ctx, 30*time.Second)

	opts := api.HandlerOptions{
		EnableInsights: os.Getenv("OPENAI_API_KEY") != "",
	}

	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		cache, err := clients.InitValkey()
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, serving without cache",
				slog.String("error", err.Error()))
		} else {
			opts.Cache = cache
			defer clients.CloseValkey()
		}
	}

	if kafka_client.Enabled() {
		cfg := kafka_client.GetKafkaConfig()
		if err := kafka_client.InitProducer(cfg); err != nil {
			slog.Warn("[Main] Kafka unavailable, serving without result publishing",
				slog.String("error", err.Error()))
		} else {
			opts.PublishResults = true
			defer kafka_client.CloseProducer()
		}
	}

	router := api.SetupRouter(api.NewHandler(service, opts))

	addr := ":" + config.GetEnv("PORT", "8000")
	slog.Info("[Main] Starting server", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("[Main] Server exited",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
