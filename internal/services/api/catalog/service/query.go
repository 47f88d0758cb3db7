package service

import (
	"context"
	"strings"

	"streamdex/internal/core/duration"
	"streamdex/internal/core/filter"
	"streamdex/internal/core/stream"
	"streamdex/internal/core/tags"
	perr "streamdex/internal/platform/errors"
	"streamdex/internal/services/api/catalog/domain"
)

// List filters and orders the loaded set
// include and exclude in the query override the registry for that call only
func (s *Svc) List(_ context.Context, in domain.ListQuery) (domain.ListResult, error) {
	snap := s.current()
	if snap == nil {
		return domain.ListResult{}, notLoaded()
	}
	q, err := toQuery(in)
	if err != nil {
		return domain.ListResult{}, err
	}

	sel := s.reg.Snapshot()
	if len(in.Include) > 0 || len(in.Exclude) > 0 {
		sel = overlay(sel, in.Include, in.Exclude)
	}

	res := filter.Apply(snap.streams, q, sel)
	out := domain.ListResult{
		Streams:   make([]domain.Stream, 0, len(res.Streams)),
		Count:     res.Count,
		CountText: filter.CountText(res.Count),
	}
	for _, st := range res.Streams {
		out.Streams = append(out.Streams, toDTO(st))
	}
	if res.Count == 0 {
		out.Empty = filter.EmptyText
	}
	return out, nil
}

// Stream returns one stream by video id
func (s *Svc) Stream(_ context.Context, id string) (domain.Stream, error) {
	snap := s.current()
	if snap == nil {
		return domain.Stream{}, notLoaded()
	}
	i, ok := snap.byID[id]
	if !ok {
		return domain.Stream{}, perr.NotFoundf("stream %s not found", id)
	}
	return toDTO(snap.streams[i]), nil
}

// Tags lists registry entries in registration order
func (s *Svc) Tags(context.Context) ([]domain.Tag, error) {
	sel := s.reg.Snapshot()
	names := s.reg.Names()
	out := make([]domain.Tag, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Tag{Name: n, State: sel[n].String(), Known: true})
	}
	return out, nil
}

// CycleTag advances a tag unset -> include -> exclude -> unset
// unknown names are a no-op and come back unset with Known false
func (s *Svc) CycleTag(_ context.Context, name string) (domain.Tag, error) {
	st, ok := s.reg.Cycle(name)
	return domain.Tag{Name: name, State: st.String(), Known: ok}, nil
}

// ResetTags clears every selection and returns the registry
func (s *Svc) ResetTags(ctx context.Context) ([]domain.Tag, error) {
	s.reg.Reset()
	return s.Tags(ctx)
}

// Channel returns the channel of the loaded set
func (s *Svc) Channel(context.Context) (domain.Channel, error) {
	snap := s.current()
	if snap == nil {
		return domain.Channel{}, notLoaded()
	}
	c := snap.channel
	return domain.Channel{ID: c.ID, Title: c.Title, ThumbnailURL: c.ThumbnailURL, URL: c.URL()}, nil
}

// Stats summarizes the loaded set
func (s *Svc) Stats(context.Context) (domain.Stats, error) {
	snap := s.current()
	if snap == nil {
		return domain.Stats{Loading: s.loading.Load()}, notLoaded()
	}
	out := domain.Stats{
		Generation: snap.generation,
		LoadedAt:   snap.loadedAt,
		Loading:    s.loading.Load(),
		Streams:    len(snap.streams),
	}
	totals := make([]float64, 0, len(snap.streams))
	friends := 0
	for _, st := range snap.streams {
		totals = append(totals, st.TotalMinutes)
		if st.Tagged() {
			out.Tagged++
		} else {
			out.Untagged++
		}
		if st.Secondary {
			out.Secondary++
		}
		friends = max(friends, int(st.FriendCount))
	}
	out.SliderMax = duration.SliderMax(totals)
	out.SliderMaxLabel = duration.SliderLabel(float64(out.SliderMax))
	out.FriendMax = min(max(friends, 1), filter.FriendCap)
	out.FriendMaxLabel = filter.FriendLabel(out.FriendMax)
	return out, nil
}

func toQuery(in domain.ListQuery) (filter.Query, error) {
	q := filter.Query{
		Text:     strings.TrimSpace(in.Q),
		Duration: filter.Window{Min: in.MinMinutes, Max: in.MaxMinutes},
		Friends:  filter.Window{Min: in.MinFriends, Max: in.MaxFriends},
	}
	if in.Mode != "" {
		m, err := stream.ParseMode(in.Mode)
		if err != nil {
			return q, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid mode")
		}
		q.Mode = m
	}
	if in.Sort != "" {
		k, err := filter.ParseSort(in.Sort)
		if err != nil {
			return q, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid sort")
		}
		q.Sort = k
	}
	if q.Duration.Inverted() {
		return q, perr.InvalidArgf("max_minutes must not be below min_minutes")
	}
	if q.Friends.Inverted() {
		return q, perr.InvalidArgf("max_friends must not be below min_friends")
	}
	return q, nil
}

// overlay applies per call include and exclude names over a registry snapshot
func overlay(base tags.Snapshot, include, exclude []string) tags.Snapshot {
	out := make(tags.Snapshot, len(base)+len(include)+len(exclude))
	for k, v := range base {
		out[k] = v
	}
	for _, n := range include {
		out[n] = tags.Include
	}
	for _, n := range exclude {
		out[n] = tags.Exclude
	}
	return out
}

func toDTO(st stream.Stream) domain.Stream {
	return domain.Stream{
		ID:                st.ID,
		Title:             st.Title,
		URL:               st.WatchURL(),
		ThumbnailURL:      st.ThumbnailURL,
		ChannelName:       st.ChannelName,
		PublishedAt:       st.PublishedAt,
		Date:              st.DisplayDate(),
		TotalMinutes:      st.TotalMinutes,
		Duration:          duration.FormatLong(st.TotalMinutes),
		MarkerMinutes:     st.MarkerMinutes,
		PreMarkerMinutes:  st.PreMarkerMinutes,
		PostMarkerMinutes: st.PostMarkerMinutes,
		Tags:              st.Tags,
		Untagged:          !st.Tagged(),
		FriendCount:       st.FriendCount,
		Secondary:         st.Secondary,
	}
}
