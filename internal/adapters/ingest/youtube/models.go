package youtube

// ItemRef points at one upload in a playlist
type ItemRef struct {
	VideoID     string `json:"video_id"`
	PublishedAt string `json:"published_at,omitempty"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Default *thumbnail `json:"default,omitempty"`
	Medium  *thumbnail `json:"medium,omitempty"`
	High    *thumbnail `json:"high,omitempty"`
}

// best returns the high resolution thumbnail, falling back to smaller ones
func (t thumbnails) best() string {
	for _, th := range []*thumbnail{t.High, t.Medium, t.Default} {
		if th != nil && th.URL != "" {
			return th.URL
		}
	}
	return ""
}

type channelsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title      string     `json:"title"`
			Thumbnails thumbnails `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			PublishedAt string `json:"publishedAt"`
			ResourceID  struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

type liveStreamingDetails struct {
	ActualStartTime    string `json:"actualStartTime,omitempty"`
	ActualEndTime      string `json:"actualEndTime,omitempty"`
	ScheduledStartTime string `json:"scheduledStartTime,omitempty"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title                string     `json:"title"`
		PublishedAt          string     `json:"publishedAt"`
		ChannelTitle         string     `json:"channelTitle"`
		LiveBroadcastContent string     `json:"liveBroadcastContent"`
		Thumbnails           thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	LiveStreamingDetails *liveStreamingDetails `json:"liveStreamingDetails,omitempty"`
}

// completedBroadcast reports a finished live stream: not live or upcoming,
// and carrying live streaming timing data
func (v videoItem) completedBroadcast() bool {
	return v.Snippet.LiveBroadcastContent == "none" && v.LiveStreamingDetails != nil
}

// finished reports an item that is neither live nor scheduled
func (v videoItem) finished() bool {
	return v.Snippet.LiveBroadcastContent == "" || v.Snippet.LiveBroadcastContent == "none"
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

// settled reports a batch whose items are all past live and upcoming
func (r *videosResponse) settled() bool {
	for _, it := range r.Items {
		if !it.finished() {
			return false
		}
	}
	return true
}
