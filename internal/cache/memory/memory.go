// Package memory is in-process implementation of cache storage.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iftakhar005/talenthunt/internal/cache"
)

type item struct {
	content   []byte
	expiresAt time.Time
}

type storage struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
}

// NewStorage returns new instance of memory storage.
func NewStorage() cache.Storage {
	return newStorage(time.Now)
}

func newStorage(now func() time.Time) *storage {
	return &storage{
		items: make(map[string]item),
		now:   now,
	}
}

func (s *storage) Get(_ context.Context, key string) []byte {
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	if !s.now().Before(v.expiresAt) {
		s.mu.Lock()
		// item could be replaced while lock was released
		if v, ok := s.items[key]; ok && !s.now().Before(v.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()

		return nil
	}

	return v.content
}

func (s *storage) Set(_ context.Context, key string, content []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c := make([]byte, len(content))
	copy(c, content)

	s.mu.Lock()
	s.items[key] = item{
		content:   c,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *storage) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.items, k)
	}
	s.mu.Unlock()
}

func (s *storage) DeletePrefix(_ context.Context, prefixes ...string) {
	s.mu.Lock()
	for k := range s.items {
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				delete(s.items, k)
				break
			}
		}
	}
	s.mu.Unlock()
}
