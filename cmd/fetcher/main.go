package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Paulescu/crypto-sentiment-with-llms/db"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/config"
	"github.com/Paulescu/crypto-sentiment-with-llms/pkg/news"
	"github.com/joho/godotenv"
)

const fetchLimit = 50

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	queue, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer queue.Close()

	var clients []news.NewsClient
	if cfg.Keys.FinnHub != "" {
		clients = append(clients, news.NewFinnHubClient(cfg.Keys.FinnHub))
	}
	if cfg.Keys.AlphaVantage != "" {
		clients = append(clients, news.NewAlphaVantageClient(cfg.Keys.AlphaVantage))
	}
	if cfg.Keys.Massive != "" {
		clients = append(clients, news.NewMassiveClient(cfg.Keys.Massive))
	}

	if len(clients) == 0 {
		slog.Error("no news source API keys configured")
		return
	}

	for _, client := range clients {
		source := client.Name()

		articles, err := client.Fetch(ctx, fetchLimit)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			continue
		}

		var queued, skipped, errors int

		for _, a := range articles {
			if a.Headline == "" {
				skipped++
				continue
			}

			headline := db.Headline{
				Text:      a.Headline,
				Source:    source,
				URL:       a.URL,
				Published: a.PublishedAt,
			}

			err = queue.Push(ctx, db.HeadlineQueueKey, headline)
			if err != nil {
				slog.Error("error pushing to Redis queue", "source", source, "error", err, "url", a.URL)
				errors++
				continue
			}
			queued++
		}

		slog.Info("fetch complete", "source", source, "queued", queued, "skipped", skipped, "errors", errors)
	}
}
