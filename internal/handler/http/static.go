package http

import (
	"net/http"
	"sync/atomic"
)

// HitCounter counts page loads of the static site. It is separate from the
// Prometheus request metrics because the admin page displays and resets it.
type HitCounter struct {
	hits atomic.Int64
}

// NewHitCounter creates a zeroed hit counter.
func NewHitCounter() *HitCounter {
	return &HitCounter{}
}

// Count returns the current number of hits.
func (c *HitCounter) Count() int64 {
	return c.hits.Load()
}

// Reset zeroes the counter.
func (c *HitCounter) Reset() {
	c.hits.Store(0)
}

// Middleware increments the counter on every request it wraps.
func (c *HitCounter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits.Add(1)
		next.ServeHTTP(w, r)
	})
}

// StaticSite serves the file tree at dir under the /app/ prefix, counting
// every hit.
func StaticSite(dir string, counter *HitCounter) http.Handler {
	fs := http.StripPrefix("/app", http.FileServer(http.Dir(dir)))
	return counter.Middleware(fs)
}
