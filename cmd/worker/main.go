package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Paulescu/crypto-sentiment-with-llms/db"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/config"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/metrics"
	"github.com/Paulescu/crypto-sentiment-with-llms/internal/signal"
	"github.com/joho/godotenv"
)

const popTimeout = 30 * time.Second

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	extractor, err := signal.FromConfig(cfg.Backend())
	if err != nil {
		log.Fatalf("error creating extractor: %v", err)
	}

	ctx := context.Background()

	queue, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer queue.Close()

	if err := run(ctx, queue, extractor, extractor.Backend(), popTimeout); err != nil {
		log.Fatalf("worker stopped: %v", err)
	}
}

// run classifies headlines until the queue stays empty for timeout. Entries
// that fail to decode or classify go to the dead-letter list; only Redis
// errors stop the loop.
func run(ctx context.Context, queue *db.Queue, classifier signal.Classifier, backend string, timeout time.Duration) error {
	for {
		headline, err := queue.PopHeadline(ctx, timeout)
		if errors.Is(err, db.ErrQueueEmpty) {
			failed, _ := queue.Length(ctx, db.DeadLetterKey)
			slog.Info("headline queue drained, exiting", "dead_letter", failed)
			return nil
		}
		var bad *db.BadEntryError
		if errors.As(err, &bad) {
			slog.Error("skipping malformed queue entry", "error", err)
			failed := db.FailedHeadline{Raw: bad.Raw, Error: bad.Err.Error(), Kind: "decode"}
			if err := queue.Push(ctx, db.DeadLetterKey, failed); err != nil {
				slog.Error("error pushing to dead letter queue", "error", err)
			}
			continue
		}
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			return err
		}

		result, err := classifier.GetSignal(ctx, headline.Text)
		if err != nil {
			kind := metrics.ErrorKind(err)
			metrics.ObserveError(backend, err)
			slog.Error("error extracting signal", "error", err, "kind", kind, "headline", headline.Text)

			failed := db.FailedHeadline{Headline: headline, Error: err.Error(), Kind: kind}
			if err := queue.Push(ctx, db.DeadLetterKey, failed); err != nil {
				slog.Error("error pushing to dead letter queue", "error", err, "headline", headline.Text)
			}
			continue
		}

		metrics.ObserveSignal(backend, result.Signal.String())

		msg := db.SignalMessage{
			Headline:  headline,
			Signal:    result.Signal.String(),
			Reasoning: result.Reasoning,
			Backend:   backend,
		}
		if err := queue.Publish(ctx, msg); err != nil {
			slog.Error("error publishing signal", "error", err, "headline", headline.Text)
			continue
		}

		slog.Info("signal extracted", "headline", headline.Text, "signal", result.Signal, "source", headline.Source)
	}
}
