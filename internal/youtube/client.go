// Package youtube is a thin client for the YouTube Data API v3 covering the
// three calls the discovery engine needs: a channel's uploads playlist page,
// the batched video-detail lookup, and channel/handle resolution for imports.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/9000fm/diggeart/internal/model"
)

const (
	apiBase = "https://www.googleapis.com/youtube/v3"

	// The videos.list endpoint accepts at most 50 ids per request.
	detailsBatchSize = 50
)

// ErrMissingAPIKey flags a request attempted without a configured API key.
// This is a configuration failure and surfaces to the request boundary,
// unlike upstream transient errors which degrade to empty results.
var ErrMissingAPIKey = errors.New("youtube: YOUTUBE_API_KEY is not configured")

type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(apiBase).SetTimeout(15 * time.Second),
		apiKey: apiKey,
	}
}

// UploadsPlaylistID derives a channel's uploads playlist: channel IDs start
// with "UC" and the matching playlist swaps the prefix to "UU".
func UploadsPlaylistID(channelID string) string {
	if len(channelID) > 2 {
		return "UU" + channelID[2:]
	}
	return channelID
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type playlistItemsResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			ResourceID   struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
			Thumbnails map[string]thumbnail `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// PlaylistItems returns up to maxResults of a channel's most recent uploads.
// Duration and view count are left nil; VideoDetails fills those in.
func (c *Client) PlaylistItems(ctx context.Context, channelID string, maxResults int) ([]model.Video, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var out playlistItemsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"playlistId": UploadsPlaylistID(channelID),
			"maxResults": strconv.Itoa(maxResults),
			"key":        c.apiKey,
		}).
		SetResult(&out).
		Get("/playlistItems")
	if err != nil {
		return nil, fmt.Errorf("youtube: playlistItems for %s: %w", channelID, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("youtube: playlistItems for %s: status %d", channelID, resp.StatusCode())
	}

	videos := make([]model.Video, 0, len(out.Items))
	for _, item := range out.Items {
		if item.Snippet.ResourceID.VideoID == "" {
			continue
		}
		thumb := bestThumbnail(item.Snippet.Thumbnails)
		videos = append(videos, model.Video{
			ID:           item.Snippet.ResourceID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			Thumbnail:    thumb.URL,
			Width:        thumb.Width,
			Height:       thumb.Height,
		})
	}
	return videos, nil
}

// bestThumbnail prefers the high variant, then medium, then default. The API
// omits dimensions on some variants; fall back to the standard 480x360.
func bestThumbnail(thumbs map[string]thumbnail) thumbnail {
	for _, quality := range []string{"high", "medium", "default"} {
		if t, ok := thumbs[quality]; ok && t.URL != "" {
			if t.Width == 0 {
				t.Width = 480
			}
			if t.Height == 0 {
				t.Height = 360
			}
			return t
		}
	}
	return thumbnail{Width: 480, Height: 360}
}

// Details is the per-video enrichment from videos.list.
type Details struct {
	Duration  int
	ViewCount int64
}

type videoListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// VideoDetails batch-fetches duration and view count for the given ids.
// Chunks of up to 50 ids are issued sequentially to respect upstream rate
// limits; a failed chunk is logged and skipped, leaving its videos without
// details rather than failing the whole lookup.
func (c *Client) VideoDetails(ctx context.Context, ids []string) (map[string]Details, error) {
	details := make(map[string]Details, len(ids))
	if len(ids) == 0 {
		return details, nil
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	for start := 0; start < len(ids); start += detailsBatchSize {
		end := min(start+detailsBatchSize, len(ids))
		chunk := ids[start:end]

		var out videoListResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"part": "contentDetails,statistics",
				"id":   strings.Join(chunk, ","),
				"key":  c.apiKey,
			}).
			SetResult(&out).
			Get("/videos")
		if err != nil {
			log.Printf("youtube: details chunk (%d ids) failed: %v", len(chunk), err)
			continue
		}
		if !resp.IsSuccess() {
			log.Printf("youtube: details chunk (%d ids) failed: status %d", len(chunk), resp.StatusCode())
			continue
		}

		for _, item := range out.Items {
			views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
			details[item.ID] = Details{
				Duration:  ParseDuration(item.ContentDetails.Duration),
				ViewCount: views,
			}
		}
	}
	return details, nil
}

type channelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type searchResponse struct {
	Items []struct {
		Snippet struct {
			ChannelID string `json:"channelId"`
			Title     string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

// ResolveHandle resolves an @handle or custom channel name to a channel ID
// and title. The forHandle lookup is tried first; a channel search is the
// fallback for /c/ and /user/ style names the handle endpoint misses.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (id, name string, err error) {
	if c.apiKey == "" {
		return "", "", ErrMissingAPIKey
	}

	var out channelListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":      "snippet",
			"forHandle": strings.TrimPrefix(handle, "@"),
			"key":       c.apiKey,
		}).
		SetResult(&out).
		Get("/channels")
	if err == nil && resp.IsSuccess() && len(out.Items) > 0 {
		return out.Items[0].ID, out.Items[0].Snippet.Title, nil
	}

	var search searchResponse
	resp, err = c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"q":          strings.TrimPrefix(handle, "@"),
			"type":       "channel",
			"maxResults": "1",
			"key":        c.apiKey,
		}).
		SetResult(&search).
		Get("/search")
	if err != nil {
		return "", "", fmt.Errorf("youtube: resolve %q: %w", handle, err)
	}
	if !resp.IsSuccess() || len(search.Items) == 0 {
		return "", "", fmt.Errorf("youtube: resolve %q: no channel found", handle)
	}
	return search.Items[0].Snippet.ChannelID, search.Items[0].Snippet.Title, nil
}

// ChannelName resolves a raw channel ID to its display name.
func (c *Client) ChannelName(ctx context.Context, channelID string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	var out channelListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet",
			"id":   channelID,
			"key":  c.apiKey,
		}).
		SetResult(&out).
		Get("/channels")
	if err != nil {
		return "", fmt.Errorf("youtube: channel %s: %w", channelID, err)
	}
	if !resp.IsSuccess() || len(out.Items) == 0 {
		return "", fmt.Errorf("youtube: channel %s: not found", channelID)
	}
	return out.Items[0].Snippet.Title, nil
}
