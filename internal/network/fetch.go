package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
)

// ErrFetch matches every error returned by Fetcher.
var ErrFetch = errors.New("fetch failed")

const maxBodyBytes = 10 << 20

// FetchError describes a failed page fetch. StatusCode is zero when no
// response arrived.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: http %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Timeout reports whether the fetch gave up waiting.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// Fetcher downloads job pages. One attempt per call, no retries.
type Fetcher struct {
	client  Doer
	timeout time.Duration
	headers map[string]string
	limiter *HostLimiter
}

func NewFetcher(client Doer, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:  client,
		timeout: timeout,
		headers: map[string]string{
			"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"accept-language": "en-US,en;q=0.9",
		},
	}
}

// LimitPerHost makes every request wait on limiter first. A nil limiter
// turns limiting off.
func (f *Fetcher) LimitPerHost(limiter *HostLimiter) *Fetcher {
	f.limiter = limiter
	return f
}

// Fetch returns the page body. Any status of 400 or above is an error.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	status, body, err := f.get(ctx, target, true)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", &FetchError{URL: target, StatusCode: status, Err: fmt.Errorf("http %d", status)}
	}
	return body, nil
}

// Check returns the response status without treating it as an error.
func (f *Fetcher) Check(ctx context.Context, target string) (int, error) {
	status, _, err := f.get(ctx, target, false)
	return status, err
}

func (f *Fetcher) get(ctx context.Context, target string, readBody bool) (int, string, error) {
	if err := f.limiter.Wait(ctx, target); err != nil {
		return 0, "", &FetchError{URL: target, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return 0, "", &FetchError{URL: target, Err: err}
	}
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return 0, "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if !readBody || resp.StatusCode >= 400 {
		return resp.StatusCode, "", nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, "", &FetchError{URL: target, Err: err}
	}
	return resp.StatusCode, string(body), nil
}
