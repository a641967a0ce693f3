package crawler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrRedirectLoop is returned by the default URL getter when a request
// chains through more than maxRedirects redirects.
var ErrRedirectLoop = errors.New("too many redirects")

const maxRedirects = 5

// Static and compile-time checks to ensure both getter types implement
// the URLGetter interface.
var (
	_ URLGetter = (*defaultURLGetter)(nil)
	_ URLGetter = (*RateLimitedURLGetter)(nil)
)

type defaultURLGetter struct {
	client *http.Client
}

// NewURLGetter returns a URLGetter backed by an http.Client with the
// provided per-request timeout and a bounded redirect policy.
func NewURLGetter(timeout time.Duration) URLGetter {
	return &defaultURLGetter{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrRedirectLoop
				}

				return nil
			},
		},
	}
}

func (g *defaultURLGetter) Get(url string) (*http.Response, error) {
	return g.client.Get(url)
}

// RateLimitedURLGetter decorates another URLGetter with a token-bucket
// rate limit so the crawl never hammers the scoped host.
type RateLimitedURLGetter struct {
	getter  URLGetter
	limiter *rate.Limiter
}

// NewRateLimitedURLGetter wraps the provided getter with a limit of
// requestsPerSecond and the specified burst size.
func NewRateLimitedURLGetter(getter URLGetter, requestsPerSecond float64, burst int) *RateLimitedURLGetter {
	return &RateLimitedURLGetter{
		getter:  getter,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

func (g *RateLimitedURLGetter) Get(url string) (*http.Response, error) {
	if err := g.limiter.Wait(context.Background()); err != nil {
		return nil, err
	}

	return g.getter.Get(url)
}
