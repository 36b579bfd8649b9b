package service

import (
	"math"
	"regexp"
	"strings"

	"github.com/9000fm/diggeart/internal/model"
	"github.com/9000fm/diggeart/internal/spotify"
)

var (
	// Bracketed qualifiers like "(Official Video)" or "[HD]" carry no
	// information once the card shows a thumbnail.
	qualifierRe = regexp.MustCompile(`(?i)\s*[\[(](?:official|music|lyric|audio|video|hd|hq|4k|visualizer|remastered|remaster|full|original)[\s\w]*[\])]`)
	// Everything after a pipe is channel branding.
	trailingPipeRe = regexp.MustCompile(`\s*\|\s*.*$`)
)

var titleSeparators = []string{" — ", " – ", " - "}

// ParseVideoTitle splits an "Artist - Track" style upload title into track
// name and artist, stripping the usual qualifiers first. Titles without a
// separator keep the whole title as the name and fall back to the channel
// name as artist.
func ParseVideoTitle(title, channelName string) (name, artist string) {
	cleaned := qualifierRe.ReplaceAllString(title, "")
	cleaned = trailingPipeRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	for _, sep := range titleSeparators {
		idx := strings.Index(cleaned, sep)
		if idx <= 0 {
			continue
		}
		artist = strings.TrimSpace(cleaned[:idx])
		name = strings.TrimSpace(cleaned[idx+len(sep):])
		if name == "" {
			name = cleaned
		}
		return name, artist
	}

	if cleaned == "" {
		cleaned = title
	}
	return cleaned, channelName
}

// VideoCard maps a raw upload to the unified card schema. The id is
// source-prefixed so cards stay globally unique across both sources.
func VideoCard(v model.Video) model.Card {
	name, artist := ParseVideoTitle(v.Title, v.ChannelTitle)
	videoID := v.ID
	watchURL := "https://www.youtube.com/watch?v=" + v.ID
	return model.Card{
		ID:         "yt-" + v.ID,
		Name:       name,
		Artist:     artist,
		Album:      v.ChannelTitle,
		Image:      "https://i.ytimg.com/vi/" + v.ID + "/sddefault.jpg",
		ImageSmall: v.Thumbnail,
		YouTubeURL: &watchURL,
		VideoID:    &videoID,
		Source:     model.SourceYouTube,
		Duration:   v.Duration,
		ViewCount:  v.ViewCount,
	}
}

// TrackCard maps a Spotify track, plus its audio features when resolved, to
// the unified card schema. A track with nil features is still a valid card;
// its feature fields stay null.
func TrackCard(t spotify.Track, f *spotify.AudioFeatures) model.Card {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	var image, imageSmall string
	if n := len(t.Album.Images); n > 0 {
		image = t.Album.Images[0].URL
		imageSmall = t.Album.Images[n-1].URL
	}

	spotifyURL := t.ExternalURLs.Spotify
	uri := t.URI
	card := model.Card{
		ID:         t.ID,
		Name:       t.Name,
		Artist:     strings.Join(artists, ", "),
		Album:      t.Album.Name,
		Image:      image,
		ImageSmall: imageSmall,
		PreviewURL: t.PreviewURL,
		SpotifyURL: &spotifyURL,
		URI:        &uri,
		Source:     model.SourceSpotify,
	}

	if f != nil {
		bpm := int(math.Round(f.Tempo))
		energy := int(math.Round(f.Energy * 100))
		danceability := int(math.Round(f.Danceability * 100))
		valence := int(math.Round(f.Valence * 100))
		key := f.Key
		card.BPM = &bpm
		card.Energy = &energy
		card.Danceability = &danceability
		card.Valence = &valence
		card.Key = &key
	}
	return card
}
