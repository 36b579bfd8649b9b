package service

import (
	"context"
	"fmt"
	"time"

	"github.com/9000fm/diggeart/internal/model"
)

// memStore is an in-memory ReviewStore/GenreStore with the same semantics
// as the pgx-backed repository.
type memStore struct {
	order    []string
	channels map[string]*model.Channel
	genres   map[string]model.GenreInfo
}

func newMemStore() *memStore {
	return &memStore{
		channels: make(map[string]*model.Channel),
		genres:   make(map[string]model.GenreInfo),
	}
}

func (m *memStore) ListChannels(ctx context.Context) ([]model.Channel, error) {
	out := make([]model.Channel, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.channels[id])
	}
	return out, nil
}

func (m *memStore) GetChannel(ctx context.Context, channelID string) (*model.Channel, error) {
	ch, ok := m.channels[channelID]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

func (m *memStore) AddChannel(ctx context.Context, ch model.Channel) error {
	if _, ok := m.channels[ch.ID]; ok {
		return nil
	}
	cp := ch
	cp.AddedAt = time.Now()
	m.channels[ch.ID] = &cp
	m.order = append(m.order, ch.ID)
	return nil
}

func (m *memStore) RemoveChannel(ctx context.Context, channelID string) error {
	delete(m.channels, channelID)
	for i, id := range m.order {
		if id == channelID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) SetStatus(ctx context.Context, channelID string, status model.ReviewStatus, labels []string) error {
	ch, ok := m.channels[channelID]
	if !ok {
		return fmt.Errorf("memStore: unknown channel %s", channelID)
	}
	ch.Status = status
	ch.Skipped = false
	if status == model.StatusUnreviewed {
		ch.Labels = nil
		ch.ReviewedAt = nil
		return nil
	}
	if len(labels) > 0 {
		ch.Labels = labels
	}
	now := time.Now()
	ch.ReviewedAt = &now
	return nil
}

func (m *memStore) SetSkipped(ctx context.Context, channelID string, skipped bool) error {
	ch, ok := m.channels[channelID]
	if !ok {
		return fmt.Errorf("memStore: unknown channel %s", channelID)
	}
	ch.Skipped = skipped
	return nil
}

func (m *memStore) SetStarred(ctx context.Context, channelID string, starred bool) error {
	ch, ok := m.channels[channelID]
	if !ok {
		return fmt.Errorf("memStore: unknown channel %s", channelID)
	}
	ch.Starred = starred
	return nil
}

func (m *memStore) ClearSkips(ctx context.Context) error {
	for _, ch := range m.channels {
		ch.Skipped = false
	}
	return nil
}

func (m *memStore) ListUnenriched(ctx context.Context, limit int) ([]model.Channel, error) {
	var out []model.Channel
	for _, id := range m.order {
		ch := m.channels[id]
		if ch.Status != model.StatusApproved {
			continue
		}
		if _, ok := m.genres[id]; ok {
			continue
		}
		out = append(out, *ch)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) SaveGenres(ctx context.Context, channelID string, info model.GenreInfo) error {
	m.genres[channelID] = info
	return nil
}

// stubFetcher serves canned uploads per channel and counts calls.
type stubFetcher struct {
	uploads map[string][]model.Video
	calls   int
}

func (f *stubFetcher) ChannelUploads(ctx context.Context, channelID string, maxResults int, withDetails, skipCache bool) []model.Video {
	f.calls++
	vids := f.uploads[channelID]
	if len(vids) > maxResults {
		vids = vids[:maxResults]
	}
	return vids
}

// stubResolver resolves handles out of a fixed table.
type stubResolver struct {
	handles map[string]string // handle -> channel id
	names   map[string]string // channel id -> name
}

func (r *stubResolver) ResolveHandle(ctx context.Context, handle string) (string, string, error) {
	id, ok := r.handles[handle]
	if !ok {
		return "", "", fmt.Errorf("stubResolver: unknown handle %q", handle)
	}
	return id, r.names[id], nil
}

func (r *stubResolver) ChannelName(ctx context.Context, channelID string) (string, error) {
	name, ok := r.names[channelID]
	if !ok {
		return "", fmt.Errorf("stubResolver: unknown channel %q", channelID)
	}
	return name, nil
}

func durPtr(d int) *int { return &d }

func viewsPtr(v int64) *int64 { return &v }

func approvedChannel(store *memStore, id, name string, labels []string) {
	_ = store.AddChannel(context.Background(), model.Channel{ID: id, Name: name, Status: model.StatusUnreviewed})
	_ = store.SetStatus(context.Background(), id, model.StatusApproved, labels)
}
