package network

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces requests per host with a token bucket of burst 1.
// Requests to different hosts do not wait on each other.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter returns nil when rps is not positive, which disables
// limiting.
func NewHostLimiter(rps float64) *HostLimiter {
	if rps <= 0 {
		return nil
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to target's host is allowed.
func (h *HostLimiter) Wait(ctx context.Context, target string) error {
	if h == nil {
		return nil
	}
	host := hostKey(target)

	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

func hostKey(target string) string {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Hostname() == "" {
		return target
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
