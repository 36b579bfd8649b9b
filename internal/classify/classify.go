// Package classify holds the pure content-classification predicates that
// decide which uploads are music and which pool, if any, a video belongs in.
package classify

import (
	"regexp"
	"strings"

	"github.com/9000fm/diggeart/internal/model"
)

// nonMusicKeywords is the denylist of phrases that indicate non-music
// content. Matching is a case-insensitive substring check; any hit flags
// the title.
var nonMusicKeywords = []string{
	// tutorials & education
	"tutorial", "how to", "how-to", "walkthrough", "explained",
	"lesson", "masterclass", "course", "learn to",
	"piano lesson", "music theory", "chord progression", "beginner", "practice",
	// production / DAW content
	"fl studio", "ableton", "logic pro", "bitwig", "pro tools",
	"making a beat", "beat making", "beatmaking", "sound design tutorial",
	"preset pack", "sample pack review", "plugin review",
	// gear & reviews
	"gear review", "unboxing", "studio tour", "setup tour",
	"vs comparison", "synth review", "midi controller",
	// covers & non-original
	"cover)", "cover]", "(cover", "[cover",
	"piano cover", "guitar cover", "drum cover", "vocal cover",
	"acoustic cover", "ukulele cover",
	// reactions & commentary
	"reaction", "reacting to", "first time hearing",
	"review:", "album review", "track review",
	// vlogs & non-music
	"vlog", "q&a", "q & a", "behind the scenes",
	"day in the life", "studio vlog",
}

// IsNonMusic reports whether a title indicates non-music content.
func IsNonMusic(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range nonMusicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// shortTitleThreshold guards the bare "shorts" match: long titles that merely
// mention shorts are not flagged.
const shortTitleThreshold = 80

// IsShortForm reports whether a title marks a YouTube Short.
func IsShortForm(title string) bool {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "#shorts") || strings.Contains(lower, "#short") {
		return true
	}
	return strings.Contains(lower, "shorts") && len(title) < shortTitleThreshold
}

// IsVertical reports whether a video's thumbnail is portrait-oriented.
func IsVertical(width, height int) bool {
	return height > width
}

// IsPlaceholder matches the stub titles YouTube substitutes for private or
// deleted uploads.
func IsPlaceholder(title string) bool {
	return title == "Private video" || title == "Deleted video"
}

// Duration bounds, in seconds.
const (
	minDiscoverDuration = 180
	minMixDuration      = 2400
	minSampleDuration   = 30
	maxSampleDuration   = 900
)

// EligibleDiscover reports whether a video qualifies for the general
// discovery pool: full-length, landscape, music content of at least 3 min.
func EligibleDiscover(v model.Video) bool {
	if IsPlaceholder(v.Title) || IsShortForm(v.Title) {
		return false
	}
	if IsVertical(v.Width, v.Height) || IsNonMusic(v.Title) {
		return false
	}
	return v.Duration != nil && *v.Duration >= minDiscoverDuration
}

// EligibleMix reports whether a video qualifies for the mixes pool.
// The non-music and vertical checks are deliberately skipped here: long-form
// DJ sets and live recordings are the entire point of the pool.
func EligibleMix(v model.Video) bool {
	if IsPlaceholder(v.Title) || IsShortForm(v.Title) {
		return false
	}
	return v.Duration != nil && *v.Duration >= minMixDuration
}

// EligibleSample reports whether a video's content qualifies for the samples
// pool. The owning channel must additionally carry a sample-friendly label,
// which is checked at pool-build time via HasSampleLabel.
func EligibleSample(v model.Video) bool {
	if IsPlaceholder(v.Title) || IsShortForm(v.Title) {
		return false
	}
	if IsVertical(v.Width, v.Height) || IsNonMusic(v.Title) {
		return false
	}
	return v.Duration != nil && *v.Duration >= minSampleDuration && *v.Duration < maxSampleDuration
}

// SampleLabels is the fixed set of channel labels whose content suits the
// short-form samples pool.
var SampleLabels = []string{
	"EBM", "Hip Hop", "Jazz", "Reggae", "Pop", "World",
	"Experimental", "Samples", "Ambient", "Funk", "Disco",
}

// HasSampleLabel reports whether any of a channel's labels is in
// SampleLabels (case-insensitive).
func HasSampleLabel(labels []string) bool {
	for _, l := range labels {
		for _, sl := range SampleLabels {
			if strings.EqualFold(l, sl) {
				return true
			}
		}
	}
	return false
}

var mixLabelRe = regexp.MustCompile(`(?i)dj|set|live|mix`)

// HasMixLabel reports whether a channel's labels suggest long-form mix
// content (DJ sets, live sets, mixes).
func HasMixLabel(labels []string) bool {
	for _, l := range labels {
		if mixLabelRe.MatchString(l) {
			return true
		}
	}
	return false
}
