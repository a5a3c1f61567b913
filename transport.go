package main

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimitedTransport throttles outgoing requests.
// The prayer times API asks clients to keep request rates modest.
type rateLimitedTransport struct {
	limiter *rate.Limiter
	rt      http.RoundTripper
}

func newRateLimitedTransport(rt http.RoundTripper, limiter *rate.Limiter) *rateLimitedTransport {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &rateLimitedTransport{limiter: limiter, rt: rt}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.rt.RoundTrip(req)
}
