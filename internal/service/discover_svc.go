package service

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/spotify"
)

// TrackSource is the slice of the Spotify client the blender needs.
type TrackSource interface {
	SearchTracks(ctx context.Context, genres []string, limit, offset int) ([]spotify.Track, error)
	AudioFeatures(ctx context.Context, trackIDs []string) (map[string]spotify.AudioFeatures, error)
}

// DiscoverService blends the two card sources into one feed. Spotify and
// YouTube are fetched independently; a short side never fails the request,
// the feed just carries fewer cards.
type DiscoverService struct {
	tracks TrackSource
	pools  *PoolService

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDiscoverService(tracks TrackSource, pools *PoolService) *DiscoverService {
	return &DiscoverService{
		tracks: tracks,
		pools:  pools,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Discover serves the blended feed. source selects spotify, youtube, or
// "all", which splits the limit 60/40 (ceil/floor) and shuffles the combined
// result so the two sources interleave. Only configuration failures (missing
// credentials, dead store) propagate; transient upstream errors already
// degraded to empty slices upstream.
func (s *DiscoverService) Discover(ctx context.Context, genres []string, limit, offset int, source string) ([]model.Card, error) {
	switch source {
	case model.SourceSpotify:
		return s.spotifyCards(ctx, genres, limit, offset)
	case model.SourceYouTube:
		return s.pools.Discover(ctx, limit, offset)
	}

	spotifyLimit := int(math.Ceil(float64(limit) * 0.6))
	youtubeLimit := limit - spotifyLimit

	fromSpotify, err := s.spotifyCards(ctx, genres, spotifyLimit, offset)
	if err != nil {
		return nil, err
	}
	fromYouTube, err := s.pools.Discover(ctx, youtubeLimit, offset)
	if err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, len(fromSpotify)+len(fromYouTube))
	cards = append(cards, fromSpotify...)
	cards = append(cards, fromYouTube...)
	s.mu.Lock()
	s.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	s.mu.Unlock()
	return cards, nil
}

// spotifyCards searches tracks for the genre selection and enriches them
// with audio features. Tracks whose features did not resolve keep nil
// feature fields instead of being dropped.
func (s *DiscoverService) spotifyCards(ctx context.Context, genres []string, limit, offset int) ([]model.Card, error) {
	tracks, err := s.tracks.SearchTracks(ctx, genres, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, nil
	}

	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	features, err := s.tracks.AudioFeatures(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, len(tracks))
	for _, t := range tracks {
		var f *spotify.AudioFeatures
		if af, ok := features[t.ID]; ok {
			f = &af
		}
		cards = append(cards, TrackCard(t, f))
	}
	return cards, nil
}
