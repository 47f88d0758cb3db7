// Command streamdex-sync reconciles a channel once and prints the filtered catalog
package main

import (
	"fmt"
	"os"

	"streamdex/internal/adapters/ingest/youtube"
	"streamdex/internal/platform/cache"
	"streamdex/internal/platform/config"
	"streamdex/internal/services/api/catalog/domain"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCmd(func(cfg config.Conf) domain.VideoSource {
		o := youtube.FromConfig(cfg)
		o.Cache = cache.New(cache.WithTTL(o.CacheTTL))
		return youtube.NewClient(o)
	})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
