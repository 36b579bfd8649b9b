package service

import (
	"testing"

	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/spotify"
)

func TestParseVideoTitle(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		channel    string
		wantName   string
		wantArtist string
	}{
		{"hyphen split", "Burial - Archangel", "hyperdubrecords", "Archangel", "Burial"},
		{"en dash split", "Actress – Hubble", "Ninja Tune", "Hubble", "Actress"},
		{"em dash split", "Moodymann — Shades of Jae", "KDJ", "Shades of Jae", "Moodymann"},
		{"strips official qualifier", "Four Tet - Baby (Official Video)", "Four Tet", "Baby", "Four Tet"},
		{"strips bracket qualifier", "Overmono - So U Kno [Official Audio]", "XL", "So U Kno", "Overmono"},
		{"strips trailing pipe", "Skee Mask - Rev8617 | Ilian Tape", "Ilian Tape", "Rev8617", "Skee Mask"},
		{"no separator falls back to channel", "Sunset Rollercoaster Full Session", "KEXP", "Sunset Rollercoaster Full Session", "KEXP"},
		{"hyphen without spaces stays whole", "Drum-and-bass essentials", "UKF", "Drum-and-bass essentials", "UKF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, artist := ParseVideoTitle(tt.title, tt.channel)
			if name != tt.wantName {
				t.Errorf("name: got %q, want %q", name, tt.wantName)
			}
			if artist != tt.wantArtist {
				t.Errorf("artist: got %q, want %q", artist, tt.wantArtist)
			}
		})
	}
}

func TestVideoCard(t *testing.T) {
	card := VideoCard(model.Video{
		ID:           "abc123xyz00",
		Title:        "Omar S - The Shit Baby",
		ChannelTitle: "FXHE Records",
		Thumbnail:    "https://i.ytimg.com/vi/abc123xyz00/hqdefault.jpg",
		Duration:     durPtr(412),
		ViewCount:    viewsPtr(90210),
	})

	if card.ID != "yt-abc123xyz00" {
		t.Errorf("id: got %q, want source-prefixed id", card.ID)
	}
	if card.Source != model.SourceYouTube {
		t.Errorf("source: got %q", card.Source)
	}
	if card.Name != "The Shit Baby" || card.Artist != "Omar S" {
		t.Errorf("parsed title: got %q / %q", card.Name, card.Artist)
	}
	if card.Album != "FXHE Records" {
		t.Errorf("album: got %q", card.Album)
	}
	if card.Image != "https://i.ytimg.com/vi/abc123xyz00/sddefault.jpg" {
		t.Errorf("image: got %q", card.Image)
	}
	if card.YouTubeURL == nil || *card.YouTubeURL != "https://www.youtube.com/watch?v=abc123xyz00" {
		t.Errorf("youtubeUrl: got %v", card.YouTubeURL)
	}
	if card.VideoID == nil || *card.VideoID != "abc123xyz00" {
		t.Errorf("videoId: got %v", card.VideoID)
	}
	if card.Duration == nil || *card.Duration != 412 {
		t.Errorf("duration: got %v", card.Duration)
	}
	if card.ViewCount == nil || *card.ViewCount != 90210 {
		t.Errorf("viewCount: got %v", card.ViewCount)
	}
	// Spotify-only fields stay null
	if card.BPM != nil || card.Energy != nil || card.PreviewURL != nil || card.URI != nil {
		t.Error("spotify-only fields must be nil on a youtube card")
	}
}

func trackFixture() spotify.Track {
	var tr spotify.Track
	tr.ID = "5FVd6KXrgO9B3JPmC8OPst"
	tr.Name = "Do I Wanna Know?"
	tr.Artists = []struct {
		Name string `json:"name"`
	}{{Name: "Arctic Monkeys"}}
	tr.Album.Name = "AM"
	tr.Album.Images = []spotify.Image{
		{URL: "https://img/640", Width: 640, Height: 640},
		{URL: "https://img/64", Width: 64, Height: 64},
	}
	tr.ExternalURLs.Spotify = "https://open.spotify.com/track/5FVd6KXrgO9B3JPmC8OPst"
	tr.URI = "spotify:track:5FVd6KXrgO9B3JPmC8OPst"
	return tr
}

func TestTrackCardWithFeatures(t *testing.T) {
	card := TrackCard(trackFixture(), &spotify.AudioFeatures{
		Tempo:        124.6,
		Energy:       0.847,
		Danceability: 0.548,
		Valence:      0.421,
		Key:          5,
	})

	if card.Source != model.SourceSpotify {
		t.Errorf("source: got %q", card.Source)
	}
	if card.Artist != "Arctic Monkeys" {
		t.Errorf("artist: got %q", card.Artist)
	}
	if card.Image != "https://img/640" || card.ImageSmall != "https://img/64" {
		t.Errorf("images: got %q / %q", card.Image, card.ImageSmall)
	}
	if card.BPM == nil || *card.BPM != 125 {
		t.Errorf("bpm: got %v, want 125", card.BPM)
	}
	if card.Energy == nil || *card.Energy != 85 {
		t.Errorf("energy: got %v, want 85", card.Energy)
	}
	if card.Danceability == nil || *card.Danceability != 55 {
		t.Errorf("danceability: got %v, want 55", card.Danceability)
	}
	if card.Valence == nil || *card.Valence != 42 {
		t.Errorf("valence: got %v, want 42", card.Valence)
	}
	if card.Key == nil || *card.Key != 5 {
		t.Errorf("key: got %v, want 5", card.Key)
	}
}

func TestTrackCardWithoutFeatures(t *testing.T) {
	card := TrackCard(trackFixture(), nil)

	if card.BPM != nil || card.Energy != nil || card.Danceability != nil || card.Valence != nil || card.Key != nil {
		t.Error("feature fields must stay nil when features did not resolve")
	}
	if card.SpotifyURL == nil || *card.SpotifyURL == "" {
		t.Error("spotifyUrl must still be set")
	}
}
