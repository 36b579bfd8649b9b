package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/9000fm/diggeart/internal/cache"
	"github.com/9000fm/diggeart/internal/classify"
	"github.com/9000fm/diggeart/internal/model"
)

const (
	generalPoolKey = "yt-discover-pool-v3"
	mixesPoolKey   = "yt-mixes-pool"
	samplesPoolKey = "yt-samples-pool"

	generalUploadsPerChannel = 20
	mixUploadsPerChannel     = 10
	sampleUploadsPerChannel  = 8

	// Upstream fan-out is bounded to this many channels in flight at once.
	channelBatchSize = 10

	mixLabeledChannelCount = 8
	mixOtherChannelCount   = 4
	sampleChannelCount     = 12
)

// PoolService builds and serves the three cached candidate pools. Each pool
// is assembled from approved channels' uploads, filtered, shuffled once and
// cached as a single unit; its order stays fixed until the cache entry
// expires, which is what keeps wraparound pagination stable.
type PoolService struct {
	fetch UploadFetcher
	store ReviewStore
	cache *cache.Store

	mu  sync.Mutex
	rng *rand.Rand

	onBuild func(pool string, size int)
}

func NewPoolService(fetch UploadFetcher, store ReviewStore, c *cache.Store) *PoolService {
	return &PoolService{
		fetch: fetch,
		store: store,
		cache: c,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ObserveBuild registers a callback invoked after every pool build with the
// pool key and resulting size. Used to wire Prometheus without importing it
// here.
func (s *PoolService) ObserveBuild(fn func(pool string, size int)) {
	s.onBuild = fn
}

// Discover returns a wraparound page of the general pool. The pool is only
// rebuilt when the cache is cold or the cached pool is empty; a
// non-empty-but-stale pool is served as-is until its TTL expires. An empty
// pool counts as cold so a build that found nothing does not pin the feed
// empty for the full TTL.
func (s *PoolService) Discover(ctx context.Context, limit, offset int) ([]model.Card, error) {
	pool, ok := cache.GetAs[[]model.Card](s.cache, generalPoolKey)
	if !ok || len(pool) == 0 {
		channels, err := s.approvedChannels(ctx)
		if err != nil {
			return nil, err
		}
		videos := s.fetchUploads(ctx, channels, generalUploadsPerChannel)
		pool = s.buildPool(generalPoolKey, videos, classify.EligibleDiscover)
	}
	return Paginate(pool, offset, limit), nil
}

// Mixes returns up to limit cards from the mixes pool. The pool is rebuilt
// when missing or when it holds fewer cards than the request asks for, so it
// can grow to satisfy larger requests. Sustained large limits therefore
// re-fetch more than strictly necessary; that tradeoff is accepted.
func (s *PoolService) Mixes(ctx context.Context, limit int) ([]model.Card, error) {
	pool, ok := cache.GetAs[[]model.Card](s.cache, mixesPoolKey)
	if !ok || len(pool) < limit {
		channels, err := s.approvedChannels(ctx)
		if err != nil {
			return nil, err
		}
		videos := s.fetchUploads(ctx, s.mixChannels(channels), mixUploadsPerChannel)
		pool = s.buildPool(mixesPoolKey, videos, classify.EligibleMix)
	}
	return headOf(pool, limit), nil
}

// Samples returns up to limit cards from the samples pool. Only channels
// carrying a sample-friendly label contribute; when none exist the pool is
// empty, with no fallback to the general pool.
func (s *PoolService) Samples(ctx context.Context, limit int) ([]model.Card, error) {
	pool, ok := cache.GetAs[[]model.Card](s.cache, samplesPoolKey)
	if !ok || len(pool) < limit {
		channels, err := s.approvedChannels(ctx)
		if err != nil {
			return nil, err
		}
		labeled := channels[:0:0]
		for _, ch := range channels {
			if classify.HasSampleLabel(ch.Labels) {
				labeled = append(labeled, ch)
			}
		}
		if len(labeled) == 0 {
			return nil, nil
		}
		videos := s.fetchUploads(ctx, s.sampleChannels(labeled, sampleChannelCount), sampleUploadsPerChannel)
		pool = s.buildPool(samplesPoolKey, videos, classify.EligibleSample)
	}
	return headOf(pool, limit), nil
}

// PoolSizes reports the current size of each cached pool, zero when cold.
func (s *PoolService) PoolSizes() map[string]int {
	sizes := make(map[string]int, 3)
	for name, key := range map[string]string{
		"discover": generalPoolKey,
		"mixes":    mixesPoolKey,
		"samples":  samplesPoolKey,
	} {
		if pool, ok := cache.GetAs[[]model.Card](s.cache, key); ok {
			sizes[name] = len(pool)
		} else {
			sizes[name] = 0
		}
	}
	return sizes
}

func (s *PoolService) approvedChannels(ctx context.Context) ([]model.Channel, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	approved := channels[:0:0]
	for _, ch := range channels {
		if ch.Status == model.StatusApproved {
			approved = append(approved, ch)
		}
	}
	return approved, nil
}

// mixChannels picks the channel subset for the mixes pool: up to 8 channels
// whose labels match the DJ/set/live/mix pattern plus up to 4 others, so the
// pool leans toward actual mix content while still surfacing generalists.
func (s *PoolService) mixChannels(channels []model.Channel) []model.Channel {
	var labeled, other []model.Channel
	for _, ch := range channels {
		if classify.HasMixLabel(ch.Labels) {
			labeled = append(labeled, ch)
		} else {
			other = append(other, ch)
		}
	}
	picked := s.sampleChannels(labeled, mixLabeledChannelCount)
	return append(picked, s.sampleChannels(other, mixOtherChannelCount)...)
}

// sampleChannels returns up to n channels drawn uniformly without
// replacement.
func (s *PoolService) sampleChannels(channels []model.Channel, n int) []model.Channel {
	out := make([]model.Channel, len(channels))
	copy(out, channels)
	s.mu.Lock()
	s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	s.mu.Unlock()
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// fetchUploads gathers uploads for every channel, channelBatchSize channels
// in flight at a time. Individual channel failures already degrade to empty
// slices inside the fetcher, so the join never aborts.
func (s *PoolService) fetchUploads(ctx context.Context, channels []model.Channel, perChannel int) []model.Video {
	results := make([][]model.Video, len(channels))
	for start := 0; start < len(channels); start += channelBatchSize {
		end := min(start+channelBatchSize, len(channels))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.fetch.ChannelUploads(ctx, channels[i].ID, perChannel, true, false)
			}(i)
		}
		wg.Wait()
	}

	var videos []model.Video
	for _, r := range results {
		videos = append(videos, r...)
	}
	return videos
}

// buildPool filters, maps, shuffles once and caches under key, then reports
// the build.
func (s *PoolService) buildPool(key string, videos []model.Video, eligible func(model.Video) bool) []model.Card {
	pool := make([]model.Card, 0, len(videos))
	for _, v := range videos {
		if eligible(v) {
			pool = append(pool, VideoCard(v))
		}
	}
	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	s.mu.Unlock()

	s.cache.Set(key, pool, 0)
	if s.onBuild != nil {
		s.onBuild(key, len(pool))
	}
	return pool
}

// Paginate slices limit cards starting at offset with index wraparound, so
// an exhausted pool cycles instead of running out. An empty pool yields an
// empty result.
func Paginate(pool []model.Card, offset, limit int) []model.Card {
	if len(pool) == 0 || limit <= 0 {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	out := make([]model.Card, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, pool[(offset+i)%len(pool)])
	}
	return out
}

func headOf(pool []model.Card, limit int) []model.Card {
	if limit < 0 {
		limit = 0
	}
	if len(pool) > limit {
		return pool[:limit]
	}
	return pool
}
