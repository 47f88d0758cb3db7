// @title         Streamdex API
// @version       0.1.0
// @description   Catalog of a channel's finished broadcasts joined with curated tag tables

package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"streamdex/internal/adapters/ingest/youtube"
	"streamdex/internal/core/version"
	"streamdex/internal/platform/cache"
	"streamdex/internal/platform/config"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/logger"
	phttp "streamdex/internal/platform/net/http"
	"streamdex/internal/platform/store"
	"streamdex/internal/platform/watch"

	"streamdex/internal/services/api"
	catalogmod "streamdex/internal/services/api/catalog/module"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env wins
	_ = godotenv.Load()

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root.Prefix("YT_").Require("API_KEY", "CHANNEL_ID")

	// postgres only backs TAGS_SOURCE=pg
	st := &store.Store{Log: *l}
	if url := root.MayString("CORE_PG_URL", ""); url != "" {
		pgCfg := root.Prefix("CORE_PG_")
		opened, err := store.Open(ctx, store.Config{
			AppName: version.Info().Service,
			PG: store.PGConfig{
				Enabled:        true,
				URL:            url,
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 6),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
			},
		}, store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		st = opened
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// response cache, memory first with optional redis behind it
	cacheCfg := root.Prefix("CACHE_")
	copts := []cache.Option{
		cache.WithTTL(cacheCfg.MayDuration("TTL", 10*time.Minute)),
		cache.WithMaxEntries(cacheCfg.MayInt("MAX_ENTRIES", 2048)),
	}
	var redisCheck any
	if url := cacheCfg.MayString("REDIS_URL", ""); url != "" {
		rdb, err := cache.OpenRedis(ctx, url)
		if err != nil {
			l.Warn().Err(err).Msg("redis unavailable, caching in memory only")
		} else {
			copts = append(copts, cache.WithRedis(rdb))
		}
	}
	c := cache.New(copts...)
	if c.Stats().Redis {
		redisCheck = c
	}
	defer func() { _ = c.Close() }()

	ytOpts := youtube.FromConfig(root)
	ytOpts.Cache = c
	yt := youtube.NewClient(ytOpts)

	// http server (reads API_PORT)
	srv := phttp.NewServer(root)

	catOpts := catalogmod.FromConfig(root)
	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Source:         yt,
			Redis:          redisCheck,
			Catalog:        catOpts,
			EnableSwagger:  root.MayBool("API_SWAGGER", true),
			EnableProfiler: root.MayBool("API_PROFILER", false),
		},
	)

	reload := func(ctx context.Context) {
		if _, err := mounted.Catalog.Reload(ctx); err != nil {
			l.Error().Err(err).Msg("catalog reload failed")
		}
	}
	// first load retries transient failures so a cold start survives a flaky upstream
	go func() {
		attempts := root.MayInt("TAGS_STARTUP_RETRIES", 3)
		wait := root.MayDuration("TAGS_STARTUP_BACKOFF", 5*time.Second)
		for i := 0; ; i++ {
			_, err := mounted.Catalog.Reload(ctx)
			if err == nil {
				return
			}
			if i >= attempts || !perr.Retryable(err) {
				l.Error().Err(err).Msg("initial catalog load failed")
				return
			}
			l.Warn().Err(err).Int("attempt", i+1).Dur("retry_in", wait).Msg("initial catalog load failed, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
			wait *= 2
		}
	}()

	if root.MayBool("TAGS_WATCH", false) {
		if paths := localPaths(catOpts.PrimaryLoc, catOpts.SecondaryLoc); len(paths) > 0 {
			go func() {
				if err := watch.Files(ctx, paths, root.MayDuration("TAGS_WATCH_DEBOUNCE", watch.DefaultDebounce), reload); err != nil {
					l.Error().Err(err).Msg("tag file watch stopped")
				}
			}()
		}
	}

	// serves until SIGINT or SIGTERM, then drains
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// localPaths keeps table locations that are files on disk
func localPaths(locs ...string) []string {
	var out []string
	for _, loc := range locs {
		loc = strings.TrimSpace(loc)
		if loc == "" || strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
			continue
		}
		out = append(out, loc)
	}
	return out
}
