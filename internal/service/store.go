package service

import (
	"context"

	"github.com/9000fm/diggeart/internal/model"
)

// ReviewStore is the persisted channel review state: one record per channel
// carrying its status plus the orthogonal starred and skipped flags.
// Implemented by repository.ReviewRepo.
type ReviewStore interface {
	ListChannels(ctx context.Context) ([]model.Channel, error)
	GetChannel(ctx context.Context, channelID string) (*model.Channel, error)
	AddChannel(ctx context.Context, ch model.Channel) error
	RemoveChannel(ctx context.Context, channelID string) error
	SetStatus(ctx context.Context, channelID string, status model.ReviewStatus, labels []string) error
	SetSkipped(ctx context.Context, channelID string, skipped bool) error
	SetStarred(ctx context.Context, channelID string, starred bool) error
	ClearSkips(ctx context.Context) error
}

// GenreStore persists genre annotations keyed by channel. Also implemented
// by repository.ReviewRepo.
type GenreStore interface {
	ListUnenriched(ctx context.Context, limit int) ([]model.Channel, error)
	SaveGenres(ctx context.Context, channelID string, info model.GenreInfo) error
}

// UploadFetcher yields a channel's recent uploads with isolated failure:
// implementations never return an error, they log and yield an empty slice.
type UploadFetcher interface {
	ChannelUploads(ctx context.Context, channelID string, maxResults int, withDetails, skipCache bool) []model.Video
}
