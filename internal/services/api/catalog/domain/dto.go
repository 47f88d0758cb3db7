// Package domain holds DTOs for catalog http and service contracts
package domain

import "time"

// ListQuery selects and orders streams; zero values mean "no constraint",
// a nil max leaves that window open and 0 is a real bound
type ListQuery struct {
	Q          string   `json:"q,omitempty" validate:"omitempty,max=200" example:"horror"`
	Mode       string   `json:"mode,omitempty" validate:"omitempty,oneof=total preMarker postMarker full game zatsu pre post" example:"total"`
	MinMinutes float64  `json:"min_minutes,omitempty" validate:"gte=0" example:"30"`
	MaxMinutes *float64 `json:"max_minutes,omitempty" validate:"omitempty,gte=0" example:"180"`
	MinFriends float64  `json:"min_friends,omitempty" validate:"gte=0" example:"1"`
	MaxFriends *float64 `json:"max_friends,omitempty" validate:"omitempty,gte=0" example:"4"`
	Sort       string   `json:"sort,omitempty" validate:"omitempty,oneof=newest oldest shortest longest" example:"newest"`
	Include    []string `json:"include,omitempty" validate:"omitempty,max=64,dive,min=1,max=100" example:"horror"`
	Exclude    []string `json:"exclude,omitempty" validate:"omitempty,max=64,dive,min=1,max=100" example:"Home"`
}

// Stream is one catalog entry as served to clients
type Stream struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	URL               string            `json:"url"`
	ThumbnailURL      string            `json:"thumbnail_url"`
	ChannelName       string            `json:"channel_name"`
	PublishedAt       time.Time         `json:"published_at"`
	Date              string            `json:"date"`
	TotalMinutes      float64           `json:"total_minutes"`
	Duration          string            `json:"duration"`
	MarkerMinutes     float64           `json:"marker_minutes"`
	PreMarkerMinutes  float64           `json:"pre_marker_minutes"`
	PostMarkerMinutes float64           `json:"post_marker_minutes"`
	Tags              map[string]string `json:"tags,omitempty"`
	Untagged          bool              `json:"untagged"`
	FriendCount       float64           `json:"friend_count"`
	Secondary         bool              `json:"secondary"`
}

// ListResult is a filtered, ordered page of streams with its display count
type ListResult struct {
	Streams   []Stream `json:"streams"`
	Count     int      `json:"count"`
	CountText string   `json:"count_text"`
	Empty     string   `json:"empty,omitempty"`
}

// Tag is one registry entry and its selection state
type Tag struct {
	Name  string `json:"name"`
	State string `json:"state" example:"include"`
	Known bool   `json:"known"`
}

// Reload summarizes one completed reconciliation
type Reload struct {
	Generation string    `json:"generation"`
	Streams    int       `json:"streams"`
	Tags       int       `json:"tags"`
	Partial    bool      `json:"partial"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Channel describes the loaded channel
type Channel struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	URL          string `json:"url"`
}

// Stats is a summary of the loaded set and the bounds clients use for windows
type Stats struct {
	Generation     string    `json:"generation"`
	LoadedAt       time.Time `json:"loaded_at"`
	Loading        bool      `json:"loading"`
	Streams        int       `json:"streams"`
	Tagged         int       `json:"tagged"`
	Untagged       int       `json:"untagged"`
	Secondary      int       `json:"secondary"`
	SliderMax      int       `json:"slider_max"`
	SliderMaxLabel string    `json:"slider_max_label"`
	FriendMax      int       `json:"friend_max"`
	FriendMaxLabel string    `json:"friend_max_label"`
}
