package news

import (
	"context"
	"time"
)

type Article struct {
	ExternalID  string
	Headline    string
	Detail      string
	URL         string
	Source      string
	PublishedAt time.Time
	Symbols     []string
	Publisher   string
}

// NewsClient fetches recent crypto headlines from one provider.
type NewsClient interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}
