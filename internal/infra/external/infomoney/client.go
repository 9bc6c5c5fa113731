// Package infomoney fetches stock listings, price history and news from
// InfoMoney. The endpoints are unofficial, so every client throttles with a
// random delay, rotates user agents and retries transient failures.
package infomoney

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/PAlucas/investsite/internal/pkg/config"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

// Client carries the shared transport for all InfoMoney endpoints.
type Client struct {
	http *resty.Client
	cfg  config.InfomoneyConfig
}

func NewClient(cfg config.InfomoneyConfig) *Client {
	httpClient := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.MinDelay).
		SetRetryMaxWaitTime(10*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch r.StatusCode() {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				return true
			}
			return false
		})

	return &Client{http: httpClient, cfg: cfg}
}

func (c *Client) userAgent() string {
	return userAgents[rand.IntN(len(userAgents))]
}

// throttle sleeps for a random duration in [MinDelay, MaxDelay] or until ctx
// is done.
func (c *Client) throttle(ctx context.Context) error {
	delay := c.cfg.MinDelay
	if span := c.cfg.MaxDelay - c.cfg.MinDelay; span > 0 {
		delay += time.Duration(rand.Int64N(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
