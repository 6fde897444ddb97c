package network

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out proxies round-robin and sidelines any proxy the
// target answered with 403 or 429.
type Rotator struct {
	proxies     []*url.URL
	banDuration time.Duration
	bannedUntil map[string]time.Time
	index       int
	now         func() time.Time
	mu          sync.Mutex
}

func NewRotator(raw []string, banDuration time.Duration) (*Rotator, error) {
	rotator := &Rotator{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
		now:         time.Now,
	}

	for _, proxy := range raw {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy %q: %w", proxy, err)
		}
		rotator.proxies = append(rotator.proxies, u)
	}

	return rotator, nil
}

func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.proxies)
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return nil, ErrNoProxies
	}

	for range r.proxies {
		proxy := r.proxies[r.index]
		r.index = (r.index + 1) % len(r.proxies)

		if !r.isBanned(proxy) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

func (r *Rotator) Report(proxy *url.URL, status int) {
	if proxy == nil {
		return
	}
	if status != fhttp.StatusForbidden && status != fhttp.StatusTooManyRequests {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bannedUntil[proxy.String()] = r.now().Add(r.banDuration)
}

func (r *Rotator) isBanned(proxy *url.URL) bool {
	until, ok := r.bannedUntil[proxy.String()]
	if !ok {
		return false
	}
	if r.now().After(until) {
		delete(r.bannedUntil, proxy.String())
		return false
	}
	return true
}
