package service

import (
	"context"
	"log"
	"time"

	"github.com/9000fm/diggeart/internal/genres"
	"github.com/9000fm/diggeart/internal/model"
)

const (
	maxEnrichBatch = 20
	// Discogs and MusicBrainz both rate-limit anonymous-ish clients hard;
	// space consecutive channel lookups out.
	enrichThrottle = 300 * time.Millisecond
)

// GenreLookup is the slice of the genre clients the enricher needs.
type GenreLookup interface {
	DiscogsArtist(ctx context.Context, name string) (*genres.Lookup, error)
	MusicBrainzArtist(ctx context.Context, name string) (*genres.Lookup, error)
}

// EnrichService annotates approved channels with genre data from Discogs
// and MusicBrainz, persisted as suggested labels for the reviewer UI.
type EnrichService struct {
	store  GenreStore
	lookup GenreLookup
}

func NewEnrichService(store GenreStore, lookup GenreLookup) *EnrichService {
	return &EnrichService{store: store, lookup: lookup}
}

// EnrichResult reports one batch run.
type EnrichResult struct {
	Enriched int      `json:"enriched"`
	Failed   []string `json:"failed"`
}

// EnrichBatch annotates up to limit approved channels that have no genre
// data yet. source selects "discogs", "musicbrainz" or "both". Per-channel
// lookup failures are logged and skipped; the batch always completes.
func (s *EnrichService) EnrichBatch(ctx context.Context, limit int, source string) (*EnrichResult, error) {
	if limit <= 0 || limit > maxEnrichBatch {
		limit = maxEnrichBatch
	}
	channels, err := s.store.ListUnenriched(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := &EnrichResult{}
	for i, ch := range channels {
		if i > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(enrichThrottle):
			}
		}

		info := model.GenreInfo{FetchedAt: time.Now()}
		found := false
		if source == "discogs" || source == "both" {
			if lu, err := s.lookup.DiscogsArtist(ctx, ch.Name); err != nil {
				log.Printf("enrich: discogs %q: %v", ch.Name, err)
			} else if lu != nil {
				info.DiscogsGenres = lu.Genres
				info.DiscogsStyles = lu.Styles
				found = true
			}
		}
		if source == "musicbrainz" || source == "both" {
			if lu, err := s.lookup.MusicBrainzArtist(ctx, ch.Name); err != nil {
				log.Printf("enrich: musicbrainz %q: %v", ch.Name, err)
			} else if lu != nil {
				info.MBGenres = lu.Genres
				info.MBTags = lu.Tags
				found = true
			}
		}
		if !found {
			result.Failed = append(result.Failed, ch.ID)
			continue
		}

		if err := s.store.SaveGenres(ctx, ch.ID, info); err != nil {
			log.Printf("enrich: save %s: %v", ch.ID, err)
			result.Failed = append(result.Failed, ch.ID)
			continue
		}
		result.Enriched++
	}
	return result, nil
}
