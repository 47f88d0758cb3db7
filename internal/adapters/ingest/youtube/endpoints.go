package youtube

import (
	"context"
	"encoding/json"
	"iter"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streamdex/internal/core/stream"
	perr "streamdex/internal/platform/errors"
)

// Channel fetches display metadata and the uploads playlist id
func (c *Client) Channel(ctx context.Context, channelID string) (stream.Channel, error) {
	if strings.TrimSpace(channelID) == "" {
		return stream.Channel{}, perr.InvalidArgf("youtube channel id is required")
	}
	q := url.Values{}
	q.Set("part", "snippet,contentDetails")
	q.Set("id", channelID)

	var out channelsResponse
	if err := c.getJSON(ctx, "channels", q, &out); err != nil {
		return stream.Channel{}, err
	}
	if len(out.Items) == 0 || out.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return stream.Channel{}, perr.NotFoundf("channel %s not found", channelID)
	}
	it := out.Items[0]
	return stream.Channel{
		ID:              channelID,
		Title:           it.Snippet.Title,
		ThumbnailURL:    it.Snippet.Thumbnails.best(),
		UploadsPlaylist: it.ContentDetails.RelatedPlaylists.Uploads,
	}, nil
}

// ResolveUploadsPlaylist returns the uploads playlist id of a channel
func (c *Client) ResolveUploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	ch, err := c.Channel(ctx, channelID)
	if err != nil {
		return "", err
	}
	return ch.UploadsPlaylist, nil
}

// PlaylistItems walks a playlist page by page, PageSize items at a time
// the sequence stops after yielding the first error; a new call starts at page one
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) iter.Seq2[ItemRef, error] {
	return func(yield func(ItemRef, error) bool) {
		token := ""
		for page := 0; ; page++ {
			if page > 0 {
				if err := c.pause(ctx, c.opts.PageDelay); err != nil {
					yield(ItemRef{}, err)
					return
				}
			}
			q := url.Values{}
			q.Set("part", "snippet")
			q.Set("maxResults", strconv.Itoa(PageSize))
			q.Set("playlistId", playlistID)
			if token != "" {
				q.Set("pageToken", token)
			}

			var out playlistItemsResponse
			if err := c.getJSON(ctx, "playlistItems", q, &out); err != nil {
				yield(ItemRef{}, err)
				return
			}
			for _, it := range out.Items {
				id := it.Snippet.ResourceID.VideoID
				if id == "" {
					continue
				}
				if !yield(ItemRef{VideoID: id, PublishedAt: it.Snippet.PublishedAt}, nil) {
					return
				}
			}
			if out.NextPageToken == "" || len(out.Items) == 0 {
				return
			}
			token = out.NextPageToken
		}
	}
}

// ListPlaylist collects PlaylistItems
// on failure the ids gathered so far are returned with the error
func (c *Client) ListPlaylist(ctx context.Context, playlistID string) ([]ItemRef, error) {
	var refs []ItemRef
	for ref, err := range c.PlaylistItems(ctx, playlistID) {
		if err != nil {
			return refs, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// FetchDetails loads videos in batches of PageSize and keeps completed live broadcasts
// on failure the videos gathered so far are returned with the error
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]stream.Video, error) {
	return c.videos(ctx, ids, videoItem.completedBroadcast)
}

// LookupVideos loads videos by id keeping anything that is not live or upcoming
func (c *Client) LookupVideos(ctx context.Context, ids []string) ([]stream.Video, error) {
	return c.videos(ctx, ids, videoItem.finished)
}

func (c *Client) videos(ctx context.Context, ids []string, keep func(videoItem) bool) ([]stream.Video, error) {
	var out []stream.Video
	for i, batch := range chunk(ids, PageSize) {
		if i > 0 {
			if err := c.pause(ctx, c.opts.PageDelay); err != nil {
				return out, err
			}
		}
		q := url.Values{}
		q.Set("part", "snippet,contentDetails,liveStreamingDetails")
		q.Set("id", strings.Join(batch, ","))
		q.Set("maxResults", strconv.Itoa(PageSize))

		var resp videosResponse
		if err := c.cachedJSON(ctx, "videos", q, &resp, resp.settled); err != nil {
			return out, err
		}
		for _, it := range resp.Items {
			if !keep(it) {
				continue
			}
			out = append(out, toVideo(it))
		}
	}
	return out, nil
}

// Uploads resolves a channel, lists its uploads and returns its completed broadcasts
// in upload order; partial results are returned alongside a stage error
func (c *Client) Uploads(ctx context.Context, channelID string) (stream.Channel, []stream.Video, error) {
	ch, err := c.Channel(ctx, channelID)
	if err != nil {
		return stream.Channel{}, nil, err
	}
	refs, listErr := c.ListPlaylist(ctx, ch.UploadsPlaylist)
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.VideoID)
	}
	vids, err := c.FetchDetails(ctx, ids)
	if err == nil {
		err = listErr
	}
	c.log.Info().
		Str("channel", channelID).
		Int("uploads", len(ids)).
		Int("broadcasts", len(vids)).
		Err(err).
		Msg("youtube uploads fetched")
	return ch, vids, err
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	b, err := c.get(ctx, endpoint, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "youtube %s decode failed", endpoint)
	}
	return nil
}

// cachedJSON serves endpoint from the cache when it can; a fresh body is stored
// only when settled reports the decoded value can no longer change
func (c *Client) cachedJSON(ctx context.Context, endpoint string, q url.Values, out any, settled func() bool) error {
	if b, ok := c.cached(ctx, endpoint, q); ok {
		if err := json.Unmarshal(b, out); err == nil {
			return nil
		}
	}
	b, err := c.get(ctx, endpoint, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "youtube %s decode failed", endpoint)
	}
	if settled() {
		c.store(ctx, endpoint, q, b)
	}
	return nil
}

func toVideo(it videoItem) stream.Video {
	pub, _ := time.Parse(time.RFC3339, it.Snippet.PublishedAt)
	return stream.Video{
		ID:           it.ID,
		Title:        it.Snippet.Title,
		PublishedAt:  pub,
		DurationISO:  it.ContentDetails.Duration,
		ThumbnailURL: it.Snippet.Thumbnails.best(),
		ChannelName:  it.Snippet.ChannelTitle,
	}
}
