package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/9000fm/diggeart/internal/cache"
	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/youtube"
)

type stubUploadsAPI struct {
	videos      []model.Video
	details     map[string]youtube.Details
	listCalls   int
	detailCalls int
	listErr     error
	detailErr   error
}

func (s *stubUploadsAPI) PlaylistItems(ctx context.Context, channelID string, maxResults int) ([]model.Video, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]model.Video, len(s.videos))
	copy(out, s.videos)
	return out, nil
}

func (s *stubUploadsAPI) VideoDetails(ctx context.Context, ids []string) (map[string]youtube.Details, error) {
	s.detailCalls++
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.details, nil
}

func TestChannelUploadsMergesDetails(t *testing.T) {
	api := &stubUploadsAPI{
		videos: []model.Video{
			{ID: "vid-a", Title: "Artist - Track A"},
			{ID: "vid-b", Title: "Artist - Track B"},
		},
		details: map[string]youtube.Details{
			"vid-a": {Duration: 245, ViewCount: 1200},
		},
	}
	svc := NewFetchService(api, cache.New(time.Minute))

	videos := svc.ChannelUploads(context.Background(), "UCaaa", 20, true, false)
	if len(videos) != 2 {
		t.Fatalf("got %d videos, want 2", len(videos))
	}
	if videos[0].Duration == nil || *videos[0].Duration != 245 {
		t.Errorf("vid-a duration: got %v", videos[0].Duration)
	}
	if videos[0].ViewCount == nil || *videos[0].ViewCount != 1200 {
		t.Errorf("vid-a viewCount: got %v", videos[0].ViewCount)
	}
	// vid-b had no detail row: both stay nil.
	if videos[1].Duration != nil || videos[1].ViewCount != nil {
		t.Errorf("vid-b must keep nil details, got %v / %v", videos[1].Duration, videos[1].ViewCount)
	}
}

func TestChannelUploadsServedFromCache(t *testing.T) {
	api := &stubUploadsAPI{videos: []model.Video{{ID: "vid-a", Title: "Artist - Track"}}}
	svc := NewFetchService(api, cache.New(time.Minute))

	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)
	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)

	if api.listCalls != 1 {
		t.Errorf("second read must hit the cache, got %d upstream calls", api.listCalls)
	}
}

func TestChannelUploadsSeparateCacheLinesPerShape(t *testing.T) {
	api := &stubUploadsAPI{videos: []model.Video{{ID: "vid-a", Title: "Artist - Track"}}}
	svc := NewFetchService(api, cache.New(time.Minute))

	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)
	svc.ChannelUploads(context.Background(), "UCaaa", 20, true, false)

	// Enriched and unenriched results are not interchangeable.
	if api.listCalls != 2 {
		t.Errorf("detail shape must use its own cache line, got %d upstream calls", api.listCalls)
	}
}

func TestChannelUploadsSkipCacheStillWritesBack(t *testing.T) {
	api := &stubUploadsAPI{videos: []model.Video{{ID: "vid-a", Title: "Artist - Track"}}}
	svc := NewFetchService(api, cache.New(time.Minute))

	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)
	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, true)
	if api.listCalls != 2 {
		t.Fatalf("skipCache must bypass the read path, got %d upstream calls", api.listCalls)
	}

	// The forced fetch refreshed the cache; a normal read hits it.
	svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)
	if api.listCalls != 2 {
		t.Errorf("rescan result must be cached, got %d upstream calls", api.listCalls)
	}
}

func TestChannelUploadsUpstreamFailureYieldsEmpty(t *testing.T) {
	api := &stubUploadsAPI{listErr: errors.New("quota exceeded")}
	svc := NewFetchService(api, cache.New(time.Minute))

	videos := svc.ChannelUploads(context.Background(), "UCaaa", 20, false, false)
	if len(videos) != 0 {
		t.Errorf("failed fetch must contribute nothing, got %d videos", len(videos))
	}
}

func TestChannelUploadsDetailFailureKeepsVideos(t *testing.T) {
	api := &stubUploadsAPI{
		videos:    []model.Video{{ID: "vid-a", Title: "Artist - Track"}},
		detailErr: errors.New("quota exceeded"),
	}
	svc := NewFetchService(api, cache.New(time.Minute))

	videos := svc.ChannelUploads(context.Background(), "UCaaa", 20, true, false)
	if len(videos) != 1 {
		t.Fatalf("got %d videos, want 1", len(videos))
	}
	if videos[0].Duration != nil || videos[0].ViewCount != nil {
		t.Errorf("details must stay nil after a failed lookup")
	}
}
