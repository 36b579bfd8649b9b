package service

import (
	"context"
	"fmt"
	"log"

	"github.com/9000fm/diggeart/internal/cache"
	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/youtube"
)

// UploadsAPI is the slice of the YouTube client the fetcher needs.
type UploadsAPI interface {
	PlaylistItems(ctx context.Context, channelID string, maxResults int) ([]model.Video, error)
	VideoDetails(ctx context.Context, ids []string) (map[string]youtube.Details, error)
}

// FetchService is the cache-backed upstream video fetcher. Every upstream
// call for one channel is an isolated failure boundary: errors are logged
// and yield an empty slice, so a batch of channels can never be aborted by
// one bad channel.
type FetchService struct {
	api   UploadsAPI
	cache *cache.Store
}

func NewFetchService(api UploadsAPI, store *cache.Store) *FetchService {
	return &FetchService{api: api, cache: store}
}

// ChannelUploads returns a channel's recent uploads. Enriched and
// unenriched results live on separate cache lines since they are not
// interchangeable. skipCache bypasses the read path but still writes the
// fresh result back — that is what a user-triggered rescan relies on.
//
// View counts are filled in whenever the detail lookup succeeds; durations
// only when withDetails is set. Videos whose detail lookup failed keep nil
// for both.
func (s *FetchService) ChannelUploads(ctx context.Context, channelID string, maxResults int, withDetails, skipCache bool) []model.Video {
	key := uploadsCacheKey(channelID, maxResults, withDetails)
	if !skipCache {
		if cached, ok := cache.GetAs[[]model.Video](s.cache, key); ok {
			return cached
		}
	}

	videos, err := s.api.PlaylistItems(ctx, channelID, maxResults)
	if err != nil {
		log.Printf("fetch: uploads for %s: %v", channelID, err)
		return nil
	}

	if len(videos) > 0 {
		ids := make([]string, len(videos))
		for i, v := range videos {
			ids[i] = v.ID
		}
		details, err := s.api.VideoDetails(ctx, ids)
		if err != nil {
			log.Printf("fetch: details for %s: %v", channelID, err)
		}
		for i := range videos {
			d, ok := details[videos[i].ID]
			if !ok {
				continue
			}
			views := d.ViewCount
			videos[i].ViewCount = &views
			if withDetails {
				dur := d.Duration
				videos[i].Duration = &dur
			}
		}
	}

	s.cache.Set(key, videos, 0)
	return videos
}

func uploadsCacheKey(channelID string, maxResults int, withDetails bool) string {
	det := "nodet"
	if withDetails {
		det = "det"
	}
	return fmt.Sprintf("yt-uploads-%s-%d-%s", channelID, maxResults, det)
}
