package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/aatrey56/fpl-league-insights/internal/logging"
	"github.com/aatrey56/fpl-league-insights/internal/metrics"
	"github.com/aatrey56/fpl-league-insights/internal/store"
)

// ErrStatus wraps non-2xx upstream responses.
var ErrStatus = errors.New("fetch: unexpected status")

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	BaseURL      string
	UserAgent    string
	Limiter      *rate.Limiter
	Retries      int
	Backoff      time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
	Metrics      *metrics.Manager
	Log          *logrus.Entry
}

func NewClient(st *store.JSONStore) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 20 * time.Second},
		Store:       st,
		BaseURL:     "https://fantasy.premierleague.com/api",
		UserAgent:   "fpl-league-insights/1.0",
		Limiter:     rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		Retries:     3,
		Backoff:     time.Second,
		PrettyWrite: true,
		UseCache:    true,
		Log:         logging.WithComponent("fetch"),
	}
}

// SetInterval paces requests at most one per interval; 0 disables pacing.
func (c *Client) SetInterval(interval time.Duration) {
	if interval <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 1)
		return
	}
	c.Limiter = rate.NewLimiter(rate.Every(interval), 1)
}

// FetchRaw downloads urlPath (like "/bootstrap-static/") and writes it to relPath.
// Returns raw bytes (from cache or network). Transport errors, 429 and 5xx
// responses are retried up to Retries attempts in total.
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store.Exists(relPath) {
		return c.Store.ReadRaw(relPath)
	}

	attempts := max(1, c.Retries)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && c.Backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Backoff):
			}
		}

		body, retry, err := c.get(ctx, urlPath)
		if err == nil {
			if !c.DisableWrite && relPath != "" {
				if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
					return nil, err
				}
			}
			return body, nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
		if c.Log != nil {
			c.Log.WithFields(logrus.Fields{"path": urlPath, "attempt": attempt}).WithError(err).Debug("retrying")
		}
	}
	return nil, lastErr
}

// get performs one paced request and reports whether a failure is worth retrying.
func (c *Client) get(ctx context.Context, urlPath string) ([]byte, bool, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, false, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Metrics.Fetch(0)
		return nil, true, err
	}
	defer resp.Body.Close()
	c.Metrics.Fetch(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("%w: GET %s: %d body=%s", ErrStatus, urlPath, resp.StatusCode, truncate(body, 200))
	}
	return body, false, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
