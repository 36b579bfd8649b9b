// Package spotify is a client-credentials Spotify Web API client covering
// track search and audio-feature enrichment.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	accountsURL = "https://accounts.spotify.com/api/token"
	apiBase     = "https://api.spotify.com/v1"

	maxSearchLimit = 50
)

// ErrMissingCredentials flags a request attempted without a configured
// client ID/secret. Configuration failures surface to the request boundary;
// upstream transient errors degrade to empty results instead.
var ErrMissingCredentials = errors.New("spotify: client credentials are not configured")

type Client struct {
	http         *resty.Client
	clientID     string
	clientSecret string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		http:         resty.New().SetBaseURL(apiBase).SetTimeout(15 * time.Second),
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached client-credentials token, refreshing it a
// minute before the upstream expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", ErrMissingCredentials
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	var out tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&out).
		Post(accountsURL)
	if err != nil {
		return "", fmt.Errorf("spotify: token: %w", err)
	}
	if !resp.IsSuccess() || out.AccessToken == "" {
		return "", fmt.Errorf("spotify: token: status %d", resp.StatusCode())
	}

	c.token = out.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(out.ExpiresIn-60) * time.Second)
	return c.token, nil
}

// Track is a Spotify track as returned by the search endpoint.
type Track struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string  `json:"name"`
		Images []Image `json:"images"`
	} `json:"album"`
	PreviewURL   *string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	URI        string `json:"uri"`
	Popularity int    `json:"popularity"`
}

type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AudioFeatures is the per-track feature vector from /audio-features.
type AudioFeatures struct {
	ID           string  `json:"id"`
	Tempo        float64 `json:"tempo"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Valence      float64 `json:"valence"`
	Key          int     `json:"key"`
}

// genreSearchQueries maps curated genre combinations to hand-tuned search
// strings that pull better results than the raw genre names.
var genreSearchQueries = map[string]string{
	"electronic,house,techno": "house techno electronic",
	"house,deep-house":        "deep house",
	"techno,minimal-techno":   "techno minimal",
	"electro,detroit-techno":  "electro detroit techno",
	"breakbeat,drum-and-bass": "breakbeat drum and bass",
	"ambient,idm":             "ambient idm",
	"dub,dub-techno":          "dub techno",
	"disco,funk":              "disco funk",
}

// SearchQuery maps a genre selection to the search string used against
// /search. Unknown combinations fall back to the genre names with hyphens
// replaced by spaces.
func SearchQuery(genres []string) string {
	if q, ok := genreSearchQueries[strings.Join(genres, ",")]; ok {
		return q
	}
	parts := make([]string, len(genres))
	for i, g := range genres {
		parts[i] = strings.ReplaceAll(g, "-", " ")
	}
	return strings.Join(parts, " ")
}

type searchResponse struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}

// SearchTracks searches tracks for the given genres. Transient upstream
// failures are logged and yield an empty slice; only missing credentials
// propagate as an error.
func (c *Client) SearchTracks(ctx context.Context, genres []string, limit, offset int) ([]Track, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"q":      SearchQuery(genres),
			"type":   "track",
			"limit":  strconv.Itoa(min(limit, maxSearchLimit)),
			"offset": strconv.Itoa(offset),
		}).
		SetResult(&out).
		Get("/search")
	if err != nil {
		log.Printf("spotify: search: %v", err)
		return nil, nil
	}
	if !resp.IsSuccess() {
		log.Printf("spotify: search: status %d", resp.StatusCode())
		return nil, nil
	}
	return out.Tracks.Items, nil
}

type audioFeaturesResponse struct {
	AudioFeatures []*AudioFeatures `json:"audio_features"`
}

// AudioFeatures batch-fetches features for the given track ids. Tracks the
// upstream cannot resolve are simply absent from the result map.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) (map[string]AudioFeatures, error) {
	features := make(map[string]AudioFeatures, len(trackIDs))
	if len(trackIDs) == 0 {
		return features, nil
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var out audioFeaturesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("ids", strings.Join(trackIDs, ",")).
		SetResult(&out).
		Get("/audio-features")
	if err != nil {
		log.Printf("spotify: audio features: %v", err)
		return features, nil
	}
	if !resp.IsSuccess() {
		log.Printf("spotify: audio features: status %d", resp.StatusCode())
		return features, nil
	}

	for _, f := range out.AudioFeatures {
		if f != nil {
			features[f.ID] = *f
		}
	}
	return features, nil
}
