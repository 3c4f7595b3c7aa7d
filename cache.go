package inkwell

import (
	"sync"
	"time"
)

// ArticleCache is an in-memory cache of the published-article listing with a
// TTL. It only ever holds the anonymous view of the articles table; admin
// listings and session checks always go to the database.
type ArticleCache struct {
	mu       sync.RWMutex
	articles []Article
	fetched  time.Time
	ttl      time.Duration
	store    *Store
}

// NewArticleCache creates an ArticleCache backed by the given Store.
func NewArticleCache(s *Store, ttl time.Duration) *ArticleCache {
	return &ArticleCache{store: s, ttl: ttl}
}

func (c *ArticleCache) valid() bool {
	return c.articles != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load. Called
// after every article mutation.
func (c *ArticleCache) Invalidate() {
	c.mu.Lock()
	c.articles = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached listing after ensuring it is fresh. It
// tries a read lock first; only takes a write lock if a reload is needed.
func (c *ArticleCache) ensureLoaded() ([]Article, error) {
	c.mu.RLock()
	if c.valid() {
		articles := c.articles
		c.mu.RUnlock()
		return articles, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.articles, nil
	}
	articles, err := c.store.ListArticles(nil)
	if err != nil {
		return nil, err
	}
	c.articles = articles
	c.fetched = time.Now()
	return c.articles, nil
}

// ListArticles returns the published articles, newest first.
func (c *ArticleCache) ListArticles() ([]Article, error) {
	return c.ensureLoaded()
}

// GetArticle returns a single published article by slug from the cache.
func (c *ArticleCache) GetArticle(slug string) (Article, error) {
	articles, err := c.ensureLoaded()
	if err != nil {
		return Article{}, err
	}
	for _, a := range articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Article{}, ErrNotFound
}
