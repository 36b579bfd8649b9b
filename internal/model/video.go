package model

// Video is a raw upload fetched from the YouTube API. Ephemeral: fetched per
// request and never persisted; only the derived Card enters a pool. Duration
// and ViewCount stay nil when the detail lookup failed or was not requested.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Duration     *int   `json:"duration"`
	ViewCount    *int64 `json:"viewCount"`
}
