package templates

import (
	"context"
	"errors"
	"sync"
	"time"

	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"
)

// CachedStore decorates a TemplateStore with a read-through TTL cache.
// Template misses are cached too, so a missing template does not hit the
// backing store on every render.
type CachedStore struct {
	store outbound.TemplateStore
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[templateKey]cachedTemplate
}

type templateKey struct {
	language  string
	framework string
	kind      valueobject.TestKind
}

type cachedTemplate struct {
	text      string
	missing   bool
	expiresAt time.Time
}

// NewCachedStore creates a caching decorator over a template store.
func NewCachedStore(store outbound.TemplateStore, ttl time.Duration) *CachedStore {
	if store == nil {
		panic("NewCachedStore: store cannot be nil")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedStore{
		store:   store,
		ttl:     ttl,
		entries: make(map[templateKey]cachedTemplate),
	}
}

// FindTemplate resolves a template, serving from cache while the entry is
// fresh.
func (c *CachedStore) FindTemplate(
	ctx context.Context,
	language, framework string,
	kind valueobject.TestKind,
) (string, error) {
	key := templateKey{language: language, framework: framework, kind: kind}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		if entry.missing {
			return "", ErrTemplateNotFound
		}
		return entry.text, nil
	}

	text, err := c.store.FindTemplate(ctx, language, framework, kind)
	switch {
	case err == nil:
		c.put(key, cachedTemplate{text: text, expiresAt: time.Now().Add(c.ttl)})
		return text, nil
	case errors.Is(err, ErrTemplateNotFound):
		c.put(key, cachedTemplate{missing: true, expiresAt: time.Now().Add(c.ttl)})
		return "", ErrTemplateNotFound
	default:
		// Store failures are not cached; the next lookup retries.
		return "", err
	}
}

func (c *CachedStore) put(key templateKey, entry cachedTemplate) {
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}
