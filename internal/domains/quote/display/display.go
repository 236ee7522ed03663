package display

import (
	"asteria/internal/domains/quote/model"
	"sync"
)

// Store holds the most recently computed quote for the read-only summary
// view. It is a single-value observable passed through dependency
// injection: publishing replaces whatever was there, last writer wins.
type Store interface {
	Publish(quote model.Quote)
	Latest() (model.Quote, bool)
}

type storeImpl struct {
	mu     sync.RWMutex
	latest model.Quote
	set    bool
}

func NewStore() Store {
	return &storeImpl{}
}

func (s *storeImpl) Publish(quote model.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = quote
	s.set = true
}

func (s *storeImpl) Latest() (model.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latest, s.set
}
