package main

import (
	"log"
	"log/slog"

	"github.com/Paulescu/crypto-sentiment-with-llms/internal/config"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/handler"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/metrics"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/signal"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	extractor, err := signal.FromConfig(cfg.Backend())
	if err != nil {
		log.Fatalf("error creating extractor: %v", err)
	}

	signalHandler := handler.NewSignalHandler(signal.Serialized(extractor), extractor.Backend())

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/signal", signalHandler.GetSignal)
	r.GET("/health", signalHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	slog.Info("serving signals", "addr", cfg.HTTPAddr, "backend", extractor.Backend())

	err = r.Run(cfg.HTTPAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
