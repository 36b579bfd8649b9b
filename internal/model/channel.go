package model

import "time"

// ReviewStatus is a channel's position in the curator workflow. A channel
// holds exactly one status at a time; contradictory multi-set membership is
// impossible by construction.
type ReviewStatus string

const (
	StatusUnreviewed   ReviewStatus = "unreviewed"
	StatusApproved     ReviewStatus = "approved"
	StatusRejected     ReviewStatus = "rejected"
	StatusUnsubscribed ReviewStatus = "unsubscribed"
)

// ValidStatus reports whether s is one of the four review statuses.
func ValidStatus(s ReviewStatus) bool {
	switch s {
	case StatusUnreviewed, StatusApproved, StatusRejected, StatusUnsubscribed:
		return true
	}
	return false
}

// Channel is a content source subject to human review before its uploads
// enter any pool. Starred and Skipped are orthogonal to the review status:
// any channel may be starred, and an unreviewed channel may be skipped
// without deciding it.
type Channel struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Labels     []string     `json:"labels,omitempty"`
	Status     ReviewStatus `json:"status"`
	Starred    bool         `json:"starred"`
	Skipped    bool         `json:"skipped"`
	AddedAt    time.Time    `json:"-"`
	ReviewedAt *time.Time   `json:"-"`
}

// Rejected reports whether the channel has been rejected. Unsubscribing is a
// reject plus a flag for external action, so unsubscribed channels count.
func (c *Channel) Rejected() bool {
	return c.Status == StatusRejected || c.Status == StatusUnsubscribed
}

// Reviewed reports whether a decision has been recorded for the channel.
func (c *Channel) Reviewed() bool {
	return c.Status != StatusUnreviewed
}

// ChannelRef is the minimal channel identity used in list payloads.
type ChannelRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreInfo holds the genre annotations collected for a channel from the
// external lookup services.
type GenreInfo struct {
	DiscogsGenres []string  `json:"discogsGenres"`
	DiscogsStyles []string  `json:"discogsStyles"`
	MBGenres      []string  `json:"mbGenres"`
	MBTags        []string  `json:"mbTags"`
	FetchedAt     time.Time `json:"fetchedAt"`
}
