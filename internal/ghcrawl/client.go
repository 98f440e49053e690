package ghcrawl

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const (
	requestTimeout    = 15 * time.Second
	lowQuotaThreshold = 10
)

func newGitHubClient(token string) *github.Client {
	var base http.RoundTripper = http.DefaultTransport
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		base = &oauth2.Transport{
			Source: ts,
			Base:   http.DefaultTransport,
		}
	}
	httpClient := &http.Client{
		Transport: &rateLimitTransport{base: base},
		Timeout:   requestTimeout,
	}
	return github.NewClient(httpClient)
}

// rateLimitTransport wraps an http.RoundTripper and reports when the
// remaining request quota runs low. It never sleeps: pacing is done by the
// analyzer's fixed inter-request throttle.
type rateLimitTransport struct {
	base http.RoundTripper
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return resp, nil
	}
	rem, err := strconv.Atoi(remaining)
	if err != nil || rem == 0 || rem > lowQuotaThreshold {
		return resp, nil
	}
	attrs := []any{"remaining", rem, "path", req.URL.Path}
	if resetUnix, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		attrs = append(attrs, "reset", time.Unix(resetUnix, 0).UTC())
	}
	slog.Warn("approaching github rate limit", attrs...)
	return resp, nil
}
