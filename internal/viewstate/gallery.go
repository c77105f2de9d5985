package viewstate

import "math"

const (
	zoomStep = 1.2
	minZoom  = 0.1
)

// Gallery is the slideshow position and zoom of an open gallery.
type Gallery struct {
	count int
	index int
	zoom  float64
}

// NewGallery starts a slideshow over count images.
func NewGallery(count int) Gallery {
	if count < 0 {
		count = 0
	}
	return Gallery{count: count, zoom: 1}
}

// Index returns the current image index.
func (g *Gallery) Index() int {
	return g.index
}

// Count returns the number of images.
func (g *Gallery) Count() int {
	return g.count
}

// Zoom returns the current zoom factor.
func (g *Gallery) Zoom() float64 {
	if g.zoom == 0 {
		return 1
	}
	return g.zoom
}

// ZoomPercent returns the zoom factor as a rounded percentage.
func (g *Gallery) ZoomPercent() int {
	return int(math.Round(g.Zoom() * 100))
}

// Next moves to the next image. It reports false at the last image.
func (g *Gallery) Next() bool {
	if g.index >= g.count-1 {
		return false
	}
	g.index++
	g.zoom = 1
	return true
}

// Prev moves to the previous image. It reports false at the first image.
func (g *Gallery) Prev() bool {
	if g.index <= 0 {
		return false
	}
	g.index--
	g.zoom = 1
	return true
}

// ZoomIn scales up by one step.
func (g *Gallery) ZoomIn() {
	g.zoom = g.Zoom() * zoomStep
}

// ZoomOut scales down by one step without going below the minimum.
func (g *Gallery) ZoomOut() {
	g.zoom = math.Max(g.Zoom()/zoomStep, minZoom)
}
