package model

// Card sources. The source field is a closed two-value enum on the wire.
const (
	SourceSpotify = "spotify"
	SourceYouTube = "youtube"
)

// Card is the unified display record for a playable item, regardless of
// whether it came from Spotify or a curated YouTube channel. IDs are globally
// unique across sources: YouTube video IDs are prefixed with "yt-".
// Optional fields are pointers so they serialize as JSON null, never omitted.
type Card struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Artist       string  `json:"artist"`
	Album        string  `json:"album"`
	Image        string  `json:"image"`
	ImageSmall   string  `json:"imageSmall"`
	PreviewURL   *string `json:"previewUrl"`
	SpotifyURL   *string `json:"spotifyUrl"`
	YouTubeURL   *string `json:"youtubeUrl"`
	VideoID      *string `json:"videoId"`
	URI          *string `json:"uri"`
	Source       string  `json:"source"`
	BPM          *int    `json:"bpm"`
	Energy       *int    `json:"energy"`
	Danceability *int    `json:"danceability"`
	Valence      *int    `json:"valence"`
	Key          *int    `json:"key"`
	Duration     *int    `json:"duration"`
	ViewCount    *int64  `json:"viewCount"`
}

// SampleCard is a card in a curator upload sample, tagged with whether it is
// one of the channel's top-viewed uploads.
type SampleCard struct {
	Card
	IsTopViewed bool `json:"isTopViewed"`
}

var keyNames = [12]string{"C", "C♯/D♭", "D", "D♯/E♭", "E", "F", "F♯/G♭", "G", "G♯/A♭", "A", "A♯/B♭", "B"}

// KeyName maps a pitch-class integer (the card's key field, 0 = C) to its
// note name. Out-of-range values yield an empty string.
func KeyName(key int) string {
	if key < 0 || key >= len(keyNames) {
		return ""
	}
	return keyNames[key]
}
