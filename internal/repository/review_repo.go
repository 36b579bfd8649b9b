package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/9000fm/diggeart/internal/model"
)

// ReviewRepo is the persisted channel review store. Each channel is one row
// carrying its review status plus the orthogonal starred/skipped flags, so
// contradictory multi-set membership cannot be represented.
type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// EnsureSchema creates the tables the review store needs.
func (r *ReviewRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS channels (
			channel_id   TEXT PRIMARY KEY,
			channel_name TEXT NOT NULL DEFAULT '',
			labels       TEXT[] NOT NULL DEFAULT '{}',
			status       TEXT NOT NULL DEFAULT 'unreviewed',
			starred      BOOLEAN NOT NULL DEFAULT FALSE,
			skipped      BOOLEAN NOT NULL DEFAULT FALSE,
			added_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			reviewed_at  TIMESTAMPTZ
		)`)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS channel_genres (
			channel_id     TEXT PRIMARY KEY REFERENCES channels(channel_id) ON DELETE CASCADE,
			discogs_genres TEXT[] NOT NULL DEFAULT '{}',
			discogs_styles TEXT[] NOT NULL DEFAULT '{}',
			mb_genres      TEXT[] NOT NULL DEFAULT '{}',
			mb_tags        TEXT[] NOT NULL DEFAULT '{}',
			fetched_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

const channelColumns = `channel_id, channel_name, labels, status, starred, skipped, added_at, reviewed_at`

// ListChannels returns all channels in stable review order: insertion order,
// with the id as tiebreaker. The curator's "next" query depends on this
// order being deterministic across requests.
func (r *ReviewRepo) ListChannels(ctx context.Context) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+channelColumns+`
		FROM channels
		ORDER BY added_at ASC, channel_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Labels, &ch.Status,
			&ch.Starred, &ch.Skipped, &ch.AddedAt, &ch.ReviewedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// GetChannel returns a single channel by id, or nil when unknown.
func (r *ReviewRepo) GetChannel(ctx context.Context, channelID string) (*model.Channel, error) {
	var ch model.Channel
	err := r.pool.QueryRow(ctx, `
		SELECT `+channelColumns+`
		FROM channels
		WHERE channel_id = $1`, channelID).
		Scan(&ch.ID, &ch.Name, &ch.Labels, &ch.Status,
			&ch.Starred, &ch.Skipped, &ch.AddedAt, &ch.ReviewedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// AddChannel registers a channel. Re-adding an existing id is a no-op so
// imports stay idempotent.
func (r *ReviewRepo) AddChannel(ctx context.Context, ch model.Channel) error {
	labels := ch.Labels
	if labels == nil {
		labels = []string{}
	}
	status := ch.Status
	if status == "" {
		status = model.StatusUnreviewed
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO channels (channel_id, channel_name, labels, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (channel_id) DO NOTHING`,
		ch.ID, ch.Name, labels, status)
	return err
}

// RemoveChannel purges a channel entirely; its genre annotations cascade.
func (r *ReviewRepo) RemoveChannel(ctx context.Context, channelID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE channel_id = $1`, channelID)
	return err
}

// SetStatus moves a channel to the given review status. Any status change
// clears the skip flag (a decision implicitly un-skips). Restoring
// unreviewed (undo) also clears labels and the review timestamp; labels are
// otherwise replaced only when non-empty ones are supplied.
func (r *ReviewRepo) SetStatus(ctx context.Context, channelID string, status model.ReviewStatus, labels []string) error {
	if status == model.StatusUnreviewed {
		_, err := r.pool.Exec(ctx, `
			UPDATE channels
			SET status = $2, labels = '{}', skipped = FALSE, reviewed_at = NULL
			WHERE channel_id = $1`, channelID, status)
		return err
	}
	if len(labels) > 0 {
		_, err := r.pool.Exec(ctx, `
			UPDATE channels
			SET status = $2, labels = $3, skipped = FALSE, reviewed_at = NOW()
			WHERE channel_id = $1`, channelID, status, labels)
		return err
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE channels
		SET status = $2, skipped = FALSE, reviewed_at = NOW()
		WHERE channel_id = $1`, channelID, status)
	return err
}

// SetSkipped sets or clears the skip flag on one channel.
func (r *ReviewRepo) SetSkipped(ctx context.Context, channelID string, skipped bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE channels SET skipped = $2 WHERE channel_id = $1`, channelID, skipped)
	return err
}

// SetStarred sets or clears the star flag on one channel.
func (r *ReviewRepo) SetStarred(ctx context.Context, channelID string, starred bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE channels SET starred = $2 WHERE channel_id = $1`, channelID, starred)
	return err
}

// ClearSkips un-skips every skipped channel so review can continue.
func (r *ReviewRepo) ClearSkips(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE channels SET skipped = FALSE WHERE skipped`)
	return err
}

// ListUnenriched returns approved channels that have no genre annotations
// yet, in review order, capped at limit.
func (r *ReviewRepo) ListUnenriched(ctx context.Context, limit int) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+channelColumns+`
		FROM channels c
		LEFT JOIN channel_genres g USING (channel_id)
		WHERE c.status = 'approved' AND g.channel_id IS NULL
		ORDER BY c.added_at ASC, c.channel_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Labels, &ch.Status,
			&ch.Starred, &ch.Skipped, &ch.AddedAt, &ch.ReviewedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// SaveGenres upserts a channel's genre annotations.
func (r *ReviewRepo) SaveGenres(ctx context.Context, channelID string, info model.GenreInfo) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO channel_genres (channel_id, discogs_genres, discogs_styles, mb_genres, mb_tags, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (channel_id) DO UPDATE
		SET discogs_genres = EXCLUDED.discogs_genres,
		    discogs_styles = EXCLUDED.discogs_styles,
		    mb_genres = EXCLUDED.mb_genres,
		    mb_tags = EXCLUDED.mb_tags,
		    fetched_at = EXCLUDED.fetched_at`,
		channelID, orEmpty(info.DiscogsGenres), orEmpty(info.DiscogsStyles),
		orEmpty(info.MBGenres), orEmpty(info.MBTags), info.FetchedAt)
	return err
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
