package service

import (
	"context"

	"github.com/9000fm/diggeart/internal/cache"
	"github.com/9000fm/diggeart/internal/model"
)

// StatsService summarizes review progress and pool health for the operator
// dashboard.
type StatsService struct {
	store ReviewStore
	pools *PoolService
	cache *cache.Store
}

func NewStatsService(store ReviewStore, pools *PoolService, c *cache.Store) *StatsService {
	return &StatsService{store: store, pools: pools, cache: c}
}

// Stats counts channels per review status plus the flag sets, and reports
// the size of each cached pool. Unsubscribed channels count toward rejected
// as well; an unsubscribe is a reject plus an external-action flag.
func (s *StatsService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	out := &model.StatsResponse{
		TotalChannels: len(channels),
		PoolSizes:     s.pools.PoolSizes(),
		CacheEntries:  s.cache.Len(),
	}
	for _, ch := range channels {
		switch ch.Status {
		case model.StatusUnreviewed:
			out.Unreviewed++
		case model.StatusApproved:
			out.Approved++
		case model.StatusRejected:
			out.Rejected++
		case model.StatusUnsubscribed:
			out.Unsubscribed++
			out.Rejected++
		}
		if ch.Starred {
			out.Starred++
		}
		if ch.Skipped {
			out.Skipped++
		}
	}
	return out, nil
}
