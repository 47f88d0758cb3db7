// Package service owns the loaded stream catalog and its tag selection
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"streamdex/internal/core/stream"
	"streamdex/internal/core/tabular"
	"streamdex/internal/core/tags"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/platform/logger"
	"streamdex/internal/services/api/catalog/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for the catalog
type Service interface{ domain.ServicePort }

// Config selects the channel and tag tables a catalog reconciles
type Config struct {
	ChannelID       string
	Primary         domain.TableSource
	Secondary       domain.TableSource
	PrimarySchema   stream.Schema
	SecondarySchema stream.Schema
}

// snapshot is one immutable reconciled set
type snapshot struct {
	generation string
	loadedAt   time.Time
	channel    stream.Channel
	streams    []stream.Stream
	byID       map[string]int
	tagNames   []string
}

// Svc implements the Service interface
type Svc struct {
	cfg  Config
	src  domain.VideoSource
	reg  *tags.Registry
	log  logger.Logger
	now  func() time.Time
	newG func() string

	mu      sync.RWMutex
	snap    *snapshot
	loading atomic.Bool
}

// New creates a new catalog service
func New(src domain.VideoSource, cfg Config, log logger.Logger) *Svc {
	if src == nil {
		panic("catalog.Service requires a non nil VideoSource")
	}
	if cfg.Primary == nil {
		panic("catalog.Service requires a primary TableSource")
	}
	return &Svc{
		cfg:  cfg,
		src:  src,
		reg:  tags.New(),
		log:  log,
		now:  time.Now,
		newG: uuid.NewString,
	}
}

// Loaded reports whether a reconciled set is installed
func (s *Svc) Loaded() bool { return s.current() != nil }

func (s *Svc) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reload fetches uploads and tag tables, reconciles, and swaps the set in whole
// a concurrent reload is rejected; on failure the previous set stays installed
func (s *Svc) Reload(ctx context.Context) (domain.Reload, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return domain.Reload{}, perr.Conflictf("reload already in progress")
	}
	defer s.loading.Store(false)

	start := s.now()
	partial := false

	ch, videos, err := s.src.Uploads(ctx, s.cfg.ChannelID)
	switch {
	case err != nil && perr.IsCode(err, perr.ErrorCodeNotFound):
		return domain.Reload{}, perr.Wrap(err, perr.ErrorCodeNotFound, "Channel not found.")
	case err != nil && len(videos) == 0:
		s.log.Error().Err(err).Str("channel", s.cfg.ChannelID).Msg("catalog reload failed")
		return domain.Reload{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "Error loading data.")
	case err != nil:
		s.log.Warn().Err(err).Int("videos", len(videos)).Msg("catalog reload kept partial uploads")
		partial = true
	}

	primary, ok := s.loadTable(ctx, "primary", s.cfg.Primary)
	partial = partial || !ok
	secondary, ok := s.loadTable(ctx, "secondary", s.cfg.Secondary)
	partial = partial || !ok

	in := stream.Input{
		Videos:          videos,
		Primary:         primary,
		PrimarySchema:   s.cfg.PrimarySchema,
		Secondary:       secondary,
		SecondarySchema: s.cfg.SecondarySchema,
	}
	if ids := stream.SecondaryIDs(in); len(ids) > 0 {
		extra, err := s.src.LookupVideos(ctx, ids)
		if err != nil {
			s.log.Warn().Err(err).Int("ids", len(ids)).Msg("secondary video lookup incomplete")
			partial = true
		}
		in.Extra = extra
	}

	res := stream.Reconcile(in)
	next := &snapshot{
		generation: s.newG(),
		loadedAt:   s.now(),
		channel:    ch,
		streams:    res.Streams,
		byID:       make(map[string]int, len(res.Streams)),
		tagNames:   res.TagNames,
	}
	for i, st := range res.Streams {
		next.byID[st.ID] = i
	}

	s.mu.Lock()
	s.snap = next
	s.reg.Register(res.TagNames)
	s.mu.Unlock()

	s.log.Info().
		Str("generation", next.generation).
		Int("streams", len(next.streams)).
		Int("tags", len(next.tagNames)).
		Bool("partial", partial).
		Dur("took", s.now().Sub(start)).
		Msg("catalog reloaded")

	return domain.Reload{
		Generation: next.generation,
		Streams:    len(next.streams),
		Tags:       len(next.tagNames),
		Partial:    partial,
		LoadedAt:   next.loadedAt,
	}, nil
}

// loadTable degrades a failed or missing table to empty so videos still load untagged
func (s *Svc) loadTable(ctx context.Context, which string, src domain.TableSource) (tabular.Table, bool) {
	if src == nil {
		return tabular.Table{}, true
	}
	t, err := src.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("table", which).Msg("tag table unavailable, continuing untagged")
		return tabular.Table{}, false
	}
	s.log.Debug().Str("table", which).Int("rows", t.Len()).Strs("columns", t.Header).Msg("tag table loaded")
	return t, true
}

func notLoaded() error { return perr.Unavailablef("Error loading data.") }
