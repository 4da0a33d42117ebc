package ownhttp

import (
	"net/http"

	"golang.org/x/time/rate"
)

// ThrottleTransport rate-limits outgoing requests. The fabric meta api
// gets hit with a burst of small version lookups, be polite about it.
type ThrottleTransport struct {
	T       http.RoundTripper
	limiter *rate.Limiter
}

func (tt *ThrottleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := tt.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return tt.T.RoundTrip(req)
}

// NewThrottleTransport wraps the given transport (or the default one)
func NewThrottleTransport(T http.RoundTripper, limiter *rate.Limiter) *ThrottleTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &ThrottleTransport{T, limiter}
}

// NewThrottled returns a client limited to n requests per second that
// also sets the User-Agent header
func NewThrottled(n int) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(n), n)
	return &http.Client{
		Transport: NewAddHeaderTransport(NewThrottleTransport(nil, limiter)),
	}
}
