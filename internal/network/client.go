package network

import (
	"errors"
	"math/rand"
	"net/url"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const DefaultTimeout = 15 * time.Second

// Doer sends a single request. *Client implements it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Client sends requests with a Chrome TLS fingerprint. Each proxy gets its
// own underlying client and cookie jar so concurrent requests never share
// a proxy setting.
type Client struct {
	timeout    time.Duration
	rotator    *Rotator
	userAgents []string

	mu      sync.Mutex
	direct  tls_client.HttpClient
	byProxy map[string]tls_client.HttpClient
	rand    *rand.Rand
}

var _ Doer = (*Client)(nil)

// NewClient builds a browser-like client. rotator may be nil.
func NewClient(rotator *Rotator, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	direct, err := newHTTPClient("", timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		timeout:    timeout,
		rotator:    rotator,
		userAgents: append([]string{}, userAgents...),
		direct:     direct,
		byProxy:    map[string]tls_client.HttpClient{},
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func newHTTPClient(proxy string, timeout time.Duration) (tls_client.HttpClient, error) {
	jar, _ := fhttpcookiejar.New(nil)
	opts := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithCookieJar(jar),
	}
	if proxy != "" {
		opts = append(opts, tls_client.WithProxyUrl(proxy))
	}
	return tls_client.NewHttpClient(tls_client.NewNoopLogger(), opts...)
}

// Do picks the next healthy proxy, falling back to a direct connection
// when every proxy is banned, and reports the response status back to
// the rotator.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, httpClient, err := c.pick()
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) pick() (*url.URL, tls_client.HttpClient, error) {
	if c.rotator == nil {
		return nil, c.direct, nil
	}
	proxy, err := c.rotator.Next()
	if errors.Is(err, ErrNoProxies) {
		return nil, c.direct, nil
	}
	if err != nil {
		return nil, nil, err
	}

	key := proxy.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byProxy[key]; ok {
		return proxy, existing, nil
	}
	created, err := newHTTPClient(key, c.timeout)
	if err != nil {
		return nil, nil, err
	}
	c.byProxy[key] = created
	return proxy, created, nil
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
