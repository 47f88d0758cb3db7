package stream

import (
	"streamdex/internal/core/duration"
	"streamdex/internal/core/tabular"
)

// SentinelTag marks streams that came from the secondary table
const SentinelTag = "Home"

// Input is everything one reconciliation pass consumes
type Input struct {
	// Videos in source order, usually newest upload first
	Videos []Video
	// Primary tag table, wins over Secondary for the same id
	Primary       tabular.Table
	PrimarySchema Schema
	// Secondary collab table, only rows with a positive count are used
	Secondary       tabular.Table
	SecondarySchema Schema
	// Extra carries metadata for secondary rows that are not in Videos
	Extra []Video
}

// Result is the canonical stream set plus the tag names it exposes
type Result struct {
	Streams  []Stream
	TagNames []string
}

// SecondaryIDs returns ids of positive count secondary rows that Videos does not cover
// the caller looks these up and passes them back as Input.Extra
func SecondaryIDs(in Input) []string {
	in = in.withDefaults()
	have := make(map[string]struct{}, len(in.Videos))
	for _, v := range in.Videos {
		have[v.ID] = struct{}{}
	}
	primary := index(Rows(in.Primary, in.PrimarySchema))

	var out []string
	for _, r := range Rows(in.Secondary, in.SecondarySchema) {
		if !r.PositiveCount() {
			continue
		}
		if _, ok := have[r.VideoID]; ok {
			continue
		}
		if _, ok := primary[r.VideoID]; ok {
			continue
		}
		have[r.VideoID] = struct{}{}
		out = append(out, r.VideoID)
	}
	return out
}

// Reconcile joins videos with tag rows into one Stream per video id
// per row problems never surface: bad rows are skipped or defaulted
func Reconcile(in Input) Result {
	in = in.withDefaults()

	primaryRows := Rows(in.Primary, in.PrimarySchema)
	secondaryRows := Rows(in.Secondary, in.SecondarySchema)
	primary := index(primaryRows)
	secondary := index(positive(secondaryRows))

	out := make([]Stream, 0, len(in.Videos))
	seen := make(map[string]struct{}, len(in.Videos))
	anySecondary := false

	for _, v := range in.Videos {
		if _, dup := seen[v.ID]; dup || v.ID == "" {
			continue
		}
		seen[v.ID] = struct{}{}

		if r, ok := primary[v.ID]; ok {
			out = append(out, build(v, &r, false))
			continue
		}
		if r, ok := secondary[v.ID]; ok {
			out = append(out, build(v, &r, true))
			anySecondary = true
			continue
		}
		out = append(out, build(v, nil, false))
	}

	extra := make(map[string]Video, len(in.Extra))
	for _, v := range in.Extra {
		if _, ok := extra[v.ID]; !ok {
			extra[v.ID] = v
		}
	}
	for _, r := range secondaryRows {
		if !r.PositiveCount() {
			continue
		}
		if _, dup := seen[r.VideoID]; dup {
			continue
		}
		if _, ok := primary[r.VideoID]; ok {
			continue
		}
		v, ok := extra[r.VideoID]
		if !ok {
			continue
		}
		seen[r.VideoID] = struct{}{}
		out = append(out, build(v, &r, true))
		anySecondary = true
	}

	return Result{
		Streams:  out,
		TagNames: tagNames(in, anySecondary),
	}
}

func (in Input) withDefaults() Input {
	if in.PrimarySchema.URLColumn == "" {
		in.PrimarySchema = PrimarySchema()
	}
	if in.SecondarySchema.URLColumn == "" {
		in.SecondarySchema = SecondarySchema()
	}
	return in
}

// build assembles one Stream; row is nil for untagged videos
func build(v Video, row *TagRow, secondary bool) Stream {
	s := Stream{
		ID:           v.ID,
		Title:        v.Title,
		PublishedAt:  v.PublishedAt,
		ThumbnailURL: v.ThumbnailURL,
		ChannelName:  v.ChannelName,
		TotalMinutes: duration.ParseISO(v.DurationISO),
		Tags:         map[string]string{},
		FriendCount:  1,
		Secondary:    secondary,
	}
	if row != nil {
		for k, val := range row.Tags {
			s.Tags[k] = val
		}
		s.MarkerMinutes = max(0, row.MarkerMinutes())
		s.FriendCount = row.FriendCount()
	}
	if secondary {
		s.Tags[SentinelTag] = "1"
	}
	s.PreMarkerMinutes, s.PostMarkerMinutes = Split(s.TotalMinutes, s.MarkerMinutes)
	return s
}

// Split divides total at marker; a marker past the end yields (total, 0)
func Split(total, marker float64) (pre, post float64) {
	pre = max(0, marker)
	if pre > total {
		pre = total
	}
	post = max(0, total-marker)
	return pre, post
}

// index keeps the first row per video id
func index(rows []TagRow) map[string]TagRow {
	m := make(map[string]TagRow, len(rows))
	for _, r := range rows {
		if _, ok := m[r.VideoID]; !ok {
			m[r.VideoID] = r
		}
	}
	return m
}

func positive(rows []TagRow) []TagRow {
	out := rows[:0:0]
	for _, r := range rows {
		if r.PositiveCount() {
			out = append(out, r)
		}
	}
	return out
}

func tagNames(in Input, anySecondary bool) []string {
	var names []string
	seen := map[string]struct{}{}
	add := func(cols []string) {
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			names = append(names, c)
		}
	}
	add(in.PrimarySchema.TagColumns(in.Primary.Header))
	add(in.SecondarySchema.TagColumns(in.Secondary.Header))
	if anySecondary {
		add([]string{SentinelTag})
	}
	return names
}
