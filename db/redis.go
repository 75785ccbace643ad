package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	HeadlineQueueKey = "cryptosignal:queue:headlines"
	DeadLetterKey    = "cryptosignal:queue:failed"
	SignalChannel    = "cryptosignal:signals"
)

// ErrQueueEmpty is returned by PopHeadline when nothing arrived before the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// Headline is the unit of work passed from the fetcher to the worker.
type Headline struct {
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	URL       string    `json:"url,omitempty"`
	Published time.Time `json:"published_at"`
}

// SignalMessage is what the worker publishes for each classified headline.
type SignalMessage struct {
	Headline  Headline `json:"headline"`
	Signal    string   `json:"signal"`
	Reasoning string   `json:"reasoning"`
	Backend   string   `json:"backend"`
}

// FailedHeadline is pushed to the dead-letter list when classification fails.
// Raw carries the original payload when the entry could not be decoded.
type FailedHeadline struct {
	Headline Headline `json:"headline"`
	Raw      string   `json:"raw,omitempty"`
	Error    string   `json:"error"`
	Kind     string   `json:"kind"`
}

// BadEntryError is returned by PopHeadline when the popped payload is not a
// Headline. The entry has already been removed from the queue.
type BadEntryError struct {
	Raw string
	Err error
}

func (e *BadEntryError) Error() string {
	return fmt.Sprintf("decode headline %q: %v", e.Raw, e.Err)
}

func (e *BadEntryError) Unwrap() error { return e.Err }

type Queue struct {
	client *redis.Client
}

func ConnectRedis(ctx context.Context, redisURL string) (*Queue, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Queue{client: client}, nil
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{client: client}
}

func (q *Queue) Close() error {
	return q.client.Close()
}

func (q *Queue) Push(ctx context.Context, queueKey string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, queueKey, data).Err()
}

func (q *Queue) PopHeadline(ctx context.Context, timeout time.Duration) (Headline, error) {
	var h Headline
	result, err := q.client.BRPop(ctx, timeout, HeadlineQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return h, ErrQueueEmpty
	}
	if err != nil {
		return h, err
	}
	if err := json.Unmarshal([]byte(result[1]), &h); err != nil {
		return h, &BadEntryError{Raw: result[1], Err: err}
	}
	return h, nil
}

// Publish sends msg to subscribers of SignalChannel. Nothing is kept if no
// one is listening.
func (q *Queue) Publish(ctx context.Context, msg SignalMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.Publish(ctx, SignalChannel, data).Err()
}

func (q *Queue) Length(ctx context.Context, queueKey string) (int64, error) {
	return q.client.LLen(ctx, queueKey).Result()
}
