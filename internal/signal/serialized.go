package signal

import "context"

type serialized struct {
	sem chan struct{}
	c   Classifier
}

// Serialized wraps c so that at most one GetSignal runs at a time. Use it
// when a single Extractor is shared between goroutines. A caller waiting
// for its turn gives up when its ctx is done.
func Serialized(c Classifier) Classifier {
	return &serialized{sem: make(chan struct{}, 1), c: c}
}

func (s *serialized) GetSignal(ctx context.Context, text string) (MarketSignal, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return MarketSignal{}, ctx.Err()
	}
	defer func() { <-s.sem }()
	return s.c.GetSignal(ctx, text)
}
