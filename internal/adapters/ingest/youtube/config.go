package youtube

import (
	"time"

	"streamdex/internal/platform/config"
)

// FromConfig reads client options with the YT_ prefix; Cache is left for the caller
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("YT_")
	return Options{
		BaseURL:    c.MayString("BASE_URL", ""),
		APIKey:     c.MayString("API_KEY", ""),
		UserAgent:  c.MayString("USER_AGENT", ""),
		Timeout:    c.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries: c.MayInt("MAX_RETRIES", defaultMaxRetry),
		RetryBase:  c.MayDuration("RETRY_BASE", defaultRetryBase),
		PageDelay:  c.MayDuration("PAGE_DELAY", defaultPageDelay),
		RPS:        c.MayFloat64("RPS", 0),
		Burst:      c.MayInt("BURST", 1),
		CacheTTL:   c.MayDuration("CACHE_TTL", 10*time.Minute),
	}
}
