// Package archive discovers dossier and gallery folders under an asset root
// and resolves asset paths for serving.
//
// A folder with a descriptor file becomes a character dossier, a folder with
// images and no descriptor becomes a gallery, and anything else is ignored.
// Every listing ends with a locked placeholder entry.
package archive

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Kind classifies a listed archive entry.
type Kind string

const (
	KindCharacter Kind = "CHARACTER"
	KindGallery   Kind = "GALLERY"
	KindLocked    Kind = "LOCKED"
)

// AssetURLPrefix is the route prefix under which asset bytes are served.
const AssetURLPrefix = "/api/asset/"

const (
	defaultAssignment = "Unknown Assignment"

	lockedID   = "locked_1"
	lockedName = "COMMAND_ONLY"
	lockedSub  = "ENCRYPTED // NO ACCESS"
)

var (
	// ErrNotFound reports a missing item or asset file.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPath reports a request path that cannot be mapped under the asset root.
	ErrInvalidPath = errors.New("invalid asset path")
)

// Item is one entry in the archive listing.
type Item struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"type"`
	Name   string `json:"name"`
	Sub    string `json:"sub"`
	Img    string `json:"img,omitempty"`
	Locked bool   `json:"locked"`

	Stats Stats `json:"stats,omitempty"`
	Tabs  []Tab `json:"tabs,omitempty"`

	GalleryImages []GalleryImage `json:"galleryImages,omitempty"`
}

// MarshalJSON always writes stats and tabs for characters, even when empty.
func (i Item) MarshalJSON() ([]byte, error) {
	type wire Item
	if i.Kind != KindCharacter {
		return json.Marshal(wire(i))
	}
	stats, tabs := i.Stats, i.Tabs
	if stats == nil {
		stats = Stats{}
	}
	if tabs == nil {
		tabs = []Tab{}
	}
	return json.Marshal(struct {
		wire
		Stats Stats `json:"stats"`
		Tabs  []Tab `json:"tabs"`
	}{wire: wire(i), Stats: stats, Tabs: tabs})
}

// Tab is one titled section of a dossier.
type Tab struct {
	Title   string     `json:"title" yaml:"title"`
	Content TabContent `json:"content" yaml:"content"`
}

// TabContent holds the paragraphs of a dossier tab.
type TabContent struct {
	Description []string `json:"description" yaml:"description"`
}

// GalleryImage references one image inside a gallery folder.
type GalleryImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Browsable reports whether the item can be opened.
func (i Item) Browsable() bool {
	return !i.Locked && (i.Kind == KindCharacter || i.Kind == KindGallery)
}

// FileLabel is the short identifier shown on the item's folder card. A
// "File ID" stat wins; otherwise the label is derived from kind and position.
func (i Item) FileLabel(index int) string {
	if label, ok := i.Stats.Get("File ID"); ok && label != "" {
		return label
	}
	if i.Kind == KindGallery {
		return "LOG-IMG" + strconv.Itoa(index)
	}
	return "DIR-0" + strconv.Itoa(index)
}

// AssetURL builds the serving URL for a file inside a folder.
func AssetURL(folder, file string) string {
	return AssetURLPrefix + url.PathEscape(folder) + "/" + url.PathEscape(file)
}

// GalleryName derives a gallery display name from its folder name.
func GalleryName(folder string) string {
	return strings.ReplaceAll(folder, "_", " ")
}

func lockedPlaceholder() Item {
	return Item{
		ID:     lockedID,
		Kind:   KindLocked,
		Name:   lockedName,
		Sub:    lockedSub,
		Locked: true,
	}
}
