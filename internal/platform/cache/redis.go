package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	perr "streamdex/internal/platform/errors"
)

// OpenRedis parses url and pings the server
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "cache: invalid redis url")
	}
	rdb := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "cache: redis unreachable")
	}
	return rdb, nil
}
