// Package stream holds the canonical stream catalog model and the reconciler
// that joins upstream video records with hand maintained tag tables
package stream

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which duration a stream is measured by
type Mode uint8

const (
	// ModeTotal measures the whole broadcast
	ModeTotal Mode = iota
	// ModePreMarker measures the segment before the marker
	ModePreMarker
	// ModePostMarker measures the segment after the marker
	ModePostMarker
)

func (m Mode) String() string {
	switch m {
	case ModePreMarker:
		return "preMarker"
	case ModePostMarker:
		return "postMarker"
	default:
		return "total"
	}
}

// ParseMode maps a mode name to a Mode
// the legacy names full, game and zatsu are accepted as aliases
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "total", "full":
		return ModeTotal, nil
	case "premarker", "pre", "game":
		return ModePreMarker, nil
	case "postmarker", "post", "zatsu":
		return ModePostMarker, nil
	default:
		return ModeTotal, fmt.Errorf("unknown duration mode %q", s)
	}
}

// Video is one completed broadcast as delivered by the video source
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"published_at"`
	DurationISO  string    `json:"duration_iso"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ChannelName  string    `json:"channel_name,omitempty"`
}

// Channel is display metadata for the catalog owner
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	UploadsPlaylist string `json:"uploads_playlist"`
}

// Stream is the reconciled catalog entry
type Stream struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	PublishedAt       time.Time         `json:"published_at"`
	ThumbnailURL      string            `json:"thumbnail_url,omitempty"`
	ChannelName       string            `json:"channel_name,omitempty"`
	TotalMinutes      float64           `json:"total_minutes"`
	MarkerMinutes     float64           `json:"marker_minutes"`
	PreMarkerMinutes  float64           `json:"pre_marker_minutes"`
	PostMarkerMinutes float64           `json:"post_marker_minutes"`
	Tags              map[string]string `json:"tags"`
	FriendCount       float64           `json:"friend_count"`
	Secondary         bool              `json:"secondary"`
}

// Minutes returns the duration selected by mode
func (s Stream) Minutes(m Mode) float64 {
	switch m {
	case ModePreMarker:
		return s.PreMarkerMinutes
	case ModePostMarker:
		return s.PostMarkerMinutes
	default:
		return s.TotalMinutes
	}
}

// Tagged reports whether any tag row contributed to the stream
func (s Stream) Tagged() bool { return len(s.Tags) > 0 }

// DisplayDate renders the publish date as "1 March '24" in UTC
func (s Stream) DisplayDate() string {
	if s.PublishedAt.IsZero() {
		return ""
	}
	d := s.PublishedAt.UTC()
	return d.Format("2 January") + " '" + d.Format("06")
}

// WatchURL returns the short watch link for the stream
func (s Stream) WatchURL() string { return "https://youtu.be/" + s.ID }

// URL links the channel's live stream archive
func (c Channel) URL() string { return "https://www.youtube.com/channel/" + c.ID + "/streams" }
