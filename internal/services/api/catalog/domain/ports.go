package domain

import (
	"context"

	"streamdex/internal/core/stream"
	"streamdex/internal/core/tabular"
)

// ServicePort defines the service contract for the catalog
type ServicePort interface {
	List(ctx context.Context, in ListQuery) (ListResult, error)
	Stream(ctx context.Context, id string) (Stream, error)
	Tags(ctx context.Context) ([]Tag, error)
	CycleTag(ctx context.Context, name string) (Tag, error)
	ResetTags(ctx context.Context) ([]Tag, error)
	Reload(ctx context.Context) (Reload, error)
	Channel(ctx context.Context) (Channel, error)
	Stats(ctx context.Context) (Stats, error)
}

// VideoSource fetches channel uploads and individual videos
type VideoSource interface {
	Uploads(ctx context.Context, channelID string) (stream.Channel, []stream.Video, error)
	LookupVideos(ctx context.Context, ids []string) ([]stream.Video, error)
}

// TableSource loads one tag table
type TableSource interface {
	Load(ctx context.Context) (tabular.Table, error)
}
