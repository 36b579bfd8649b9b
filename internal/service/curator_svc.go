package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/9000fm/diggeart/internal/model"
)

const (
	uploadSampleFetch  = 50
	uploadSampleTop    = 3
	uploadSampleRandom = 6
)

// ChannelResolver is the slice of the YouTube client the curator needs for
// imports.
type ChannelResolver interface {
	ResolveHandle(ctx context.Context, handle string) (id, name string, err error)
	ChannelName(ctx context.Context, channelID string) (string, error)
}

// CuratorService drives the channel review workflow: serve the next
// unreviewed channel with a ranked upload sample, record decisions, and
// support undo. Review state lives in the store, one row per channel; the
// session view is recomputed from it on every request.
type CuratorService struct {
	store    ReviewStore
	fetch    UploadFetcher
	resolver ChannelResolver

	mu  sync.Mutex
	rng *rand.Rand
}

func NewCuratorService(store ReviewStore, fetch UploadFetcher, resolver ChannelResolver) *CuratorService {
	return &CuratorService{
		store:    store,
		fetch:    fetch,
		resolver: resolver,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ReviewCounts is the session progress summary attached to every curator
// payload.
type ReviewCounts struct {
	Total     int `json:"total"`
	Reviewed  int `json:"reviewed"`
	Remaining int `json:"remaining"`
	Skipped   int `json:"skipped"`
	Starred   int `json:"starred"`
}

// ReviewNext is the curator payload: the channel under review plus its
// upload sample, or Done when no unskipped unreviewed channel remains.
type ReviewNext struct {
	Done            bool               `json:"done"`
	Channel         *model.Channel     `json:"channel,omitempty"`
	UploadSample    []model.SampleCard `json:"uploadSample,omitempty"`
	Counts          ReviewCounts       `json:"counts"`
	StarredChannels []model.ChannelRef `json:"starredChannels"`
}

// Next returns the first unreviewed, unskipped channel in stable added
// order, with its upload sample. Done is signalled even while skipped
// unreviewed channels remain; the reviewer clears skips explicitly to
// continue.
func (s *CuratorService) Next(ctx context.Context) (*ReviewNext, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	out := &ReviewNext{Counts: countChannels(channels), StarredChannels: starredRefs(channels)}
	for i := range channels {
		ch := &channels[i]
		if ch.Reviewed() || ch.Skipped {
			continue
		}
		out.Channel = ch
		out.UploadSample = s.UploadSample(ctx, ch.ID, false)
		return out, nil
	}
	out.Done = true
	return out, nil
}

// Rescan re-serves the given channel with a freshly fetched sample,
// bypassing the upload cache.
func (s *CuratorService) Rescan(ctx context.Context, channelID string) (*ReviewNext, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	ch, err := s.store.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, fmt.Errorf("curator: unknown channel %s", channelID)
	}
	return &ReviewNext{
		Channel:         ch,
		UploadSample:    s.UploadSample(ctx, channelID, true),
		Counts:          countChannels(channels),
		StarredChannels: starredRefs(channels),
	}, nil
}

// UploadSample returns the channel's review sample: its 3 most-viewed recent
// uploads tagged as top, plus 6 drawn uniformly from the rest. The reviewer
// sees both the channel's best work and a random taste of its breadth.
func (s *CuratorService) UploadSample(ctx context.Context, channelID string, skipCache bool) []model.SampleCard {
	fetched := s.fetch.ChannelUploads(ctx, channelID, uploadSampleFetch, true, skipCache)
	if len(fetched) == 0 {
		return nil
	}

	// The fetcher hands back its cached slice; sort a copy so the cached
	// order stays untouched.
	videos := make([]model.Video, len(fetched))
	copy(videos, fetched)
	sort.SliceStable(videos, func(i, j int) bool {
		return viewsOf(videos[i]) > viewsOf(videos[j])
	})

	top := min(uploadSampleTop, len(videos))
	sample := make([]model.SampleCard, 0, top+uploadSampleRandom)
	for _, v := range videos[:top] {
		sample = append(sample, model.SampleCard{Card: VideoCard(v), IsTopViewed: true})
	}

	rest := videos[top:]
	s.mu.Lock()
	s.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	s.mu.Unlock()
	for _, v := range rest[:min(uploadSampleRandom, len(rest))] {
		sample = append(sample, model.SampleCard{Card: VideoCard(v), IsTopViewed: false})
	}
	return sample
}

func viewsOf(v model.Video) int64 {
	if v.ViewCount == nil {
		return -1
	}
	return *v.ViewCount
}

// Decide records a review decision. approve/reject/unsubscribe move the
// channel into that status; skip only sets the skip flag. Repeat decisions
// are idempotent, labels stick only on approve, and any decision clears the
// skip flag. Unknown channels are created first so a decision can arrive
// before an import.
func (s *CuratorService) Decide(ctx context.Context, channelID, channelName, decision string, labels []string) error {
	switch decision {
	case "skip", "approve", "reject", "unsubscribe":
	default:
		return fmt.Errorf("curator: unknown decision %q", decision)
	}

	if err := s.store.AddChannel(ctx, model.Channel{
		ID:     channelID,
		Name:   channelName,
		Status: model.StatusUnreviewed,
	}); err != nil {
		return err
	}

	switch decision {
	case "skip":
		return s.store.SetSkipped(ctx, channelID, true)
	case "approve":
		return s.store.SetStatus(ctx, channelID, model.StatusApproved, labels)
	case "reject":
		return s.store.SetStatus(ctx, channelID, model.StatusRejected, nil)
	case "unsubscribe":
		return s.store.SetStatus(ctx, channelID, model.StatusUnsubscribed, nil)
	}
	return nil
}

// Undo restores a channel to unreviewed, dropping its labels and review
// timestamp so a later Next can serve it again.
func (s *CuratorService) Undo(ctx context.Context, channelID string) error {
	return s.store.SetStatus(ctx, channelID, model.StatusUnreviewed, nil)
}

// ToggleStar flips the star flag and returns the new state plus the updated
// starred count.
func (s *CuratorService) ToggleStar(ctx context.Context, channelID string) (bool, int, error) {
	ch, err := s.store.GetChannel(ctx, channelID)
	if err != nil {
		return false, 0, err
	}
	if ch == nil {
		return false, 0, fmt.Errorf("curator: unknown channel %s", channelID)
	}
	starred := !ch.Starred
	if err := s.store.SetStarred(ctx, channelID, starred); err != nil {
		return false, 0, err
	}

	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return false, 0, err
	}
	count := 0
	for _, c := range channels {
		if c.Starred {
			count++
		}
	}
	return starred, count, nil
}

// ClearSkips unskips every channel so Next resumes over previously skipped
// ones.
func (s *CuratorService) ClearSkips(ctx context.Context) error {
	return s.store.ClearSkips(ctx)
}

// Remove purges a channel's row entirely.
func (s *CuratorService) Remove(ctx context.Context, channelID string) error {
	return s.store.RemoveChannel(ctx, channelID)
}

// ImportReport summarizes one import call.
type ImportReport struct {
	Added         int      `json:"added"`
	Failed        []string `json:"failed"`
	TotalChannels int      `json:"totalChannels"`
}

var channelIDRe = regexp.MustCompile(`^UC[\w-]{22}$`)

// ParseChannelInput turns one pasted line into either a raw channel id or a
// handle that still needs resolution. Accepted forms: a bare UC… id, an
// @handle, and youtube.com URLs with /channel/, /@, /c/ or /user/ paths.
func ParseChannelInput(line string) (channelID, handle string, err error) {
	s := strings.TrimSpace(line)
	switch {
	case s == "":
		return "", "", fmt.Errorf("empty input")
	case channelIDRe.MatchString(s):
		return s, "", nil
	case strings.HasPrefix(s, "@"):
		return "", strings.TrimPrefix(s, "@"), nil
	}

	if i := strings.Index(s, "youtube.com/"); i >= 0 {
		path := strings.Trim(s[i+len("youtube.com/"):], "/")
		if q := strings.IndexAny(path, "?#"); q >= 0 {
			path = path[:q]
		}
		parts := strings.SplitN(path, "/", 2)
		switch {
		case parts[0] == "channel" && len(parts) == 2 && channelIDRe.MatchString(parts[1]):
			return parts[1], "", nil
		case strings.HasPrefix(parts[0], "@"):
			return "", strings.TrimPrefix(parts[0], "@"), nil
		case (parts[0] == "c" || parts[0] == "user") && len(parts) == 2 && parts[1] != "":
			return "", parts[1], nil
		}
	}
	return "", "", fmt.Errorf("unrecognized channel reference %q", s)
}

// Import adds channels from newline-separated pasted input. Handles and
// custom URLs are resolved through the YouTube API; already-known ids are
// skipped silently. Lines that cannot be parsed or resolved land in the
// failure list without aborting the rest.
func (s *CuratorService) Import(ctx context.Context, input string) (*ImportReport, error) {
	report := &ImportReport{Failed: []string{}}
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, handle, err := ParseChannelInput(line)
		if err != nil {
			report.Failed = append(report.Failed, strings.TrimSpace(line))
			continue
		}

		var name string
		if id == "" {
			id, name, err = s.resolver.ResolveHandle(ctx, handle)
			if err != nil {
				log.Printf("curator: resolve %q: %v", handle, err)
				report.Failed = append(report.Failed, strings.TrimSpace(line))
				continue
			}
		} else {
			if name, err = s.resolver.ChannelName(ctx, id); err != nil {
				log.Printf("curator: channel name for %s: %v", id, err)
				name = id
			}
		}

		existing, err := s.store.GetChannel(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		if err := s.store.AddChannel(ctx, model.Channel{
			ID:     id,
			Name:   name,
			Status: model.StatusUnreviewed,
		}); err != nil {
			return nil, err
		}
		report.Added++
	}

	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}
	report.TotalChannels = len(channels)
	return report, nil
}

func countChannels(channels []model.Channel) ReviewCounts {
	counts := ReviewCounts{Total: len(channels)}
	for _, ch := range channels {
		if ch.Reviewed() {
			counts.Reviewed++
		}
		if ch.Skipped {
			counts.Skipped++
		}
		if ch.Starred {
			counts.Starred++
		}
	}
	counts.Remaining = counts.Total - counts.Reviewed
	return counts
}

func starredRefs(channels []model.Channel) []model.ChannelRef {
	refs := []model.ChannelRef{}
	for _, ch := range channels {
		if ch.Starred {
			refs = append(refs, model.ChannelRef{ID: ch.ID, Name: ch.Name})
		}
	}
	return refs
}
