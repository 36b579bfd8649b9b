// Package genres looks up genre metadata for channel names on Discogs and
// MusicBrainz. Discogs styles are the most useful signal for electronic
// music; MusicBrainz tags fill in the gaps. Both lookups are best-effort
// annotators, never on a serving path.
package genres

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	discogsAPI     = "https://api.discogs.com"
	musicBrainzAPI = "https://musicbrainz.org/ws/2"

	userAgent = "diggeart/1.0 +https://github.com/9000fm/diggeart"
)

type Client struct {
	http         *resty.Client
	discogsToken string
}

func NewClient(discogsToken string) *Client {
	return &Client{
		http:         resty.New().SetTimeout(10 * time.Second).SetHeader("User-Agent", userAgent),
		discogsToken: discogsToken,
	}
}

// Lookup is the result of one artist lookup on either service.
type Lookup struct {
	Genres []string
	Styles []string
	Tags   []string
}

type discogsSearchResponse struct {
	Results []struct {
		ID    int      `json:"id"`
		Title string   `json:"title"`
		Genre []string `json:"genre"`
		Style []string `json:"style"`
	} `json:"results"`
}

// DiscogsArtist searches Discogs for an artist and collects the genres and
// styles of their releases. Returns nil without error when nothing matched.
func (c *Client) DiscogsArtist(ctx context.Context, name string) (*Lookup, error) {
	req := c.http.R().SetContext(ctx)
	if c.discogsToken != "" {
		req.SetHeader("Authorization", "Discogs token="+c.discogsToken)
	}

	var artists discogsSearchResponse
	resp, err := req.
		SetQueryParams(map[string]string{
			"q":        name,
			"type":     "artist",
			"per_page": "1",
		}).
		SetResult(&artists).
		Get(discogsAPI + "/database/search")
	if err != nil {
		return nil, fmt.Errorf("discogs: search %q: %w", name, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("discogs: search %q: status %d", name, resp.StatusCode())
	}
	if len(artists.Results) == 0 {
		return nil, nil
	}

	// Search results carry genre/style per release; the artist endpoint does
	// not, so collect them from a release search instead.
	req = c.http.R().SetContext(ctx)
	if c.discogsToken != "" {
		req.SetHeader("Authorization", "Discogs token="+c.discogsToken)
	}
	var releases discogsSearchResponse
	resp, err = req.
		SetQueryParams(map[string]string{
			"artist":   name,
			"type":     "release",
			"per_page": "15",
		}).
		SetResult(&releases).
		Get(discogsAPI + "/database/search")
	if err != nil || !resp.IsSuccess() {
		return &Lookup{}, nil
	}

	genreSet := make(map[string]struct{})
	styleSet := make(map[string]struct{})
	for _, rel := range releases.Results {
		for _, g := range rel.Genre {
			genreSet[g] = struct{}{}
		}
		for _, s := range rel.Style {
			styleSet[s] = struct{}{}
		}
	}
	return &Lookup{Genres: keys(genreSet), Styles: keys(styleSet)}, nil
}

type mbSearchResponse struct {
	Artists []struct {
		Name   string `json:"name"`
		Genres []struct {
			Name string `json:"name"`
		} `json:"genres"`
		Tags []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"tags"`
	} `json:"artists"`
}

// maxMBTags bounds how many tags we keep per artist.
const maxMBTags = 10

// MusicBrainzArtist searches MusicBrainz for an artist and returns its
// genres and top tags. Returns nil without error when nothing matched.
// MusicBrainz allows roughly one request per second; callers throttle.
func (c *Client) MusicBrainzArtist(ctx context.Context, name string) (*Lookup, error) {
	var out mbSearchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query": "artist:" + name,
			"fmt":   "json",
			"limit": "1",
		}).
		SetResult(&out).
		Get(musicBrainzAPI + "/artist")
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: search %q: %w", name, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("musicbrainz: search %q: status %d", name, resp.StatusCode())
	}
	if len(out.Artists) == 0 {
		return nil, nil
	}

	artist := out.Artists[0]
	lookup := &Lookup{}
	for _, g := range artist.Genres {
		lookup.Genres = append(lookup.Genres, g.Name)
	}
	for _, t := range artist.Tags {
		if len(lookup.Tags) >= maxMBTags {
			break
		}
		lookup.Tags = append(lookup.Tags, t.Name)
	}
	return lookup, nil
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
