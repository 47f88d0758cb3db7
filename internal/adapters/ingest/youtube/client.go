// Package youtube provides a retrying YouTube Data API v3 client that lists a
// channel's completed live broadcasts
package youtube

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"streamdex/internal/platform/cache"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://www.googleapis.com/youtube/v3"
	defaultTimeout   = 10 * time.Second
	defaultUA        = "streamdex"
	defaultMaxRetry  = 4
	defaultRetryBase = 500 * time.Millisecond
	defaultPageDelay = 150 * time.Millisecond
	maxBackoff       = 30 * time.Second

	// PageSize is the playlistItems page size and the videos.list id batch size
	PageSize = 50
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// PageDelay is slept between consecutive pages and id chunks
	PageDelay time.Duration

	// RPS caps the request rate when > 0, Burst defaults to 1
	RPS   float64
	Burst int

	// Cache stores videos.list bodies whose items are all settled; channel and
	// playlist listings always go upstream
	Cache    cache.Cache
	CacheTTL time.Duration
}

// Client is a minimal YouTube Data API client
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.PageDelay < 0 {
		o.PageDelay = 0
	} else if o.PageDelay == 0 {
		o.PageDelay = defaultPageDelay
	}
	var lim *rate.Limiter
	if o.RPS > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(o.RPS), burst)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("youtube"),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

// sleepCtx waits d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// pause sleeps d unless ctx is already done
func (c *Client) pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	return c.sleep(ctx, d)
}

// cacheKey leaves the api key out so rotating keys keeps the cache warm
func cacheKey(endpoint string, q url.Values) string {
	kq := cloneValues(q)
	kq.Del("key")
	return cache.Key("yt", endpoint, kq.Encode())
}

// cached returns a stored body for endpoint and q
func (c *Client) cached(ctx context.Context, endpoint string, q url.Values) ([]byte, bool) {
	if c.opts.Cache == nil {
		return nil, false
	}
	b, ok := c.opts.Cache.Get(ctx, cacheKey(endpoint, q))
	if ok {
		c.log.Debug().Str("endpoint", endpoint).Msg("youtube cache hit")
	}
	return b, ok
}

func (c *Client) store(ctx context.Context, endpoint string, q url.Values, b []byte) {
	if c.opts.Cache != nil {
		c.opts.Cache.Set(ctx, cacheKey(endpoint, q), b, c.opts.CacheTTL)
	}
}

// get fetches endpoint with q from upstream and returns the body
func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	if c.opts.APIKey != "" {
		q.Set("key", c.opts.APIKey)
	}
	resp, err := c.Do(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("endpoint", endpoint).Msg("youtube close body failed")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "youtube read %s body failed", endpoint)
	}
	return b, nil
}

// Do issues a GET, retrying transport errors, 429 and 5xx up to MaxRetries times
// the caller owns the returned body
func (c *Client) Do(ctx context.Context, endpoint string, q url.Values) (*http.Response, error) {
	u := c.opts.BaseURL + "/" + endpoint + "?" + q.Encode()
	for attempt := 0; ; attempt++ {
		resp, wait, err := c.try(ctx, endpoint, u, attempt)
		if wait <= 0 || attempt >= c.opts.MaxRetries || ctx.Err() != nil {
			if err != nil && resp != nil {
				_ = drainAndClose(resp.Body)
				resp = nil
			}
			return resp, err
		}
		if resp != nil {
			_ = drainAndClose(resp.Body)
		}
		c.log.Warn().Err(err).Str("endpoint", endpoint).Int("attempt", attempt).Dur("retry_in", wait).
			Msg("youtube request failed, retrying")
		if serr := c.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

// try performs one request; wait > 0 means the outcome is worth retrying after wait
func (c *Client) try(ctx context.Context, endpoint, u string, attempt int) (*http.Response, time.Duration, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, perr.Wrapf(err, perr.ErrorCodeUnknown, "youtube build %s request", endpoint)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.backoff(attempt), perr.Wrapf(err, perr.ErrorCodeUnavailable, "youtube %s failed", endpoint)
	}
	c.log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Int("attempt", attempt).
		Dur("latency", c.now().Sub(start)).Msg("youtube http response")

	if resp.StatusCode == http.StatusOK {
		return resp, 0, nil
	}
	if !transientStatus(resp.StatusCode) || attempt >= c.opts.MaxRetries {
		return nil, 0, statusError(resp)
	}
	wait := retryAfter(resp.Header)
	if wait <= 0 {
		wait = c.backoff(attempt)
	}
	return resp, wait, perr.Newf(perr.ErrorCodeUnavailable, "youtube %s status %d", endpoint, resp.StatusCode)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError && code != http.StatusNotImplemented
}

// backoff doubles RetryBase per attempt up to maxBackoff
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	for range attempt {
		if d >= maxBackoff {
			break
		}
		d *= 2
	}
	return min(d, maxBackoff)
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
