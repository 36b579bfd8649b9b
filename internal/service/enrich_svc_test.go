package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/9000fm/diggeart/internal/genres"
)

type stubGenreLookup struct {
	discogs map[string]*genres.Lookup
	mb      map[string]*genres.Lookup
}

func (s *stubGenreLookup) DiscogsArtist(ctx context.Context, name string) (*genres.Lookup, error) {
	lu, ok := s.discogs[name]
	if !ok {
		return nil, fmt.Errorf("stub: no discogs match for %q", name)
	}
	return lu, nil
}

func (s *stubGenreLookup) MusicBrainzArtist(ctx context.Context, name string) (*genres.Lookup, error) {
	lu, ok := s.mb[name]
	if !ok {
		return nil, fmt.Errorf("stub: no musicbrainz match for %q", name)
	}
	return lu, nil
}

func TestEnrichBatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	approvedChannel(store, "UCaaa", "Good Artist", nil)
	approvedChannel(store, "UCbbb", "Unknown Artist", nil)
	addUnreviewed(store, "UCccc") // unreviewed channels are never enriched

	lookup := &stubGenreLookup{
		discogs: map[string]*genres.Lookup{
			"Good Artist": {Genres: []string{"Electronic"}, Styles: []string{"Dub Techno"}},
		},
		mb: map[string]*genres.Lookup{
			"Good Artist": {Genres: []string{"electronic"}, Tags: []string{"dub"}},
		},
	}
	svc := NewEnrichService(store, lookup)

	result, err := svc.EnrichBatch(ctx, 10, "both")
	if err != nil {
		t.Fatal(err)
	}
	if result.Enriched != 1 {
		t.Errorf("enriched: got %d, want 1", result.Enriched)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "UCbbb" {
		t.Errorf("failed: got %v", result.Failed)
	}

	info, ok := store.genres["UCaaa"]
	if !ok {
		t.Fatal("genre info was not persisted")
	}
	if len(info.DiscogsStyles) != 1 || info.DiscogsStyles[0] != "Dub Techno" {
		t.Errorf("discogs styles: got %v", info.DiscogsStyles)
	}
	if len(info.MBTags) != 1 || info.MBTags[0] != "dub" {
		t.Errorf("musicbrainz tags: got %v", info.MBTags)
	}

	// Enriched channels drop out of the next batch.
	result, err = svc.EnrichBatch(ctx, 10, "both")
	if err != nil {
		t.Fatal(err)
	}
	if result.Enriched != 0 {
		t.Errorf("second run enriched: got %d, want 0", result.Enriched)
	}
}

func TestEnrichBatchSingleSource(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	approvedChannel(store, "UCaaa", "Good Artist", nil)

	lookup := &stubGenreLookup{
		discogs: map[string]*genres.Lookup{
			"Good Artist": {Genres: []string{"Jazz"}},
		},
		mb: map[string]*genres.Lookup{},
	}
	svc := NewEnrichService(store, lookup)

	result, err := svc.EnrichBatch(ctx, 10, "discogs")
	if err != nil {
		t.Fatal(err)
	}
	if result.Enriched != 1 {
		t.Fatalf("enriched: got %d, want 1", result.Enriched)
	}
	info := store.genres["UCaaa"]
	if len(info.MBGenres) != 0 || len(info.MBTags) != 0 {
		t.Errorf("musicbrainz fields must stay empty for a discogs-only run, got %+v", info)
	}
}
