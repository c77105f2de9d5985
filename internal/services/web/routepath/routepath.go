// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"

	APIPrefix   = "/api/"
	Assets      = "/api/assets"
	AssetPrefix = "/api/asset/"
	ThumbPrefix = "/api/thumb/"
	SoundPrefix = "/api/sfx/"

	SoundExt = ".wav"
)

// Mux patterns for the routes above.
const (
	RootPattern       = "GET /{$}"
	ItemPattern       = "GET /{id}"
	HealthPattern     = "GET " + Health
	StaticPattern     = "GET " + StaticPrefix
	AssetsPattern     = "GET " + Assets
	AssetsItemPattern = "GET " + Assets + "/{id}"
	AssetPattern      = "GET " + AssetPrefix + "{path...}"
	ThumbPattern      = "GET " + ThumbPrefix + "{path...}"
	SoundPattern      = "GET " + SoundPrefix + "{cue}"
)

// Wildcard and query names used by the patterns.
const (
	IDWildcard     = "id"
	PathWildcard   = "path"
	SoundWildcard  = "cue"
	ThumbSizeParam = "size"
)

// Item returns the desktop route that deep-links to an archive item.
func Item(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return Root
	}
	return Root + escapeSegment(id)
}

// AssetItem returns the JSON route for one archive item.
func AssetItem(id string) string {
	return Assets + "/" + escapeSegment(id)
}

// Sound returns the route serving a synthesized sound cue.
func Sound(cue string) string {
	return SoundPrefix + escapeSegment(cue) + SoundExt
}

// SoundCue extracts the cue name from a sound route segment.
func SoundCue(segment string) (string, bool) {
	name, ok := strings.CutSuffix(segment, SoundExt)
	if !ok || strings.TrimSpace(name) == "" {
		return "", false
	}
	return name, true
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
