// Package thumbs renders and caches downscaled JPEG previews of archive
// images for folder cards and the gallery strip.
package thumbs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// Thumbnail size bounds in pixels.
const (
	DefaultSize = 320
	MinSize     = 32
	MaxSize     = 1024
)

const jpegQuality = 82

// ContentType is the media type of every rendered thumbnail.
const ContentType = "image/jpeg"

// ErrNotImage is returned for assets that cannot be thumbnailed.
var ErrNotImage = errors.New("asset is not a raster image")

// ParseSize reads a size query value, clamped to [MinSize, MaxSize].
func ParseSize(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultSize
	}
	return min(max(size, MinSize), MaxSize)
}

// Renderer produces thumbnails from archive assets.
type Renderer struct {
	store  *archive.Store
	cache  Cache
	logger *zap.Logger
	group  singleflight.Group
}

// NewRenderer builds a renderer over store. A nil cache disables caching.
func NewRenderer(store *archive.Store, cache Cache, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{store: store, cache: cache, logger: logger}
}

// Cache returns the cache backing the renderer.
func (r *Renderer) Cache() Cache {
	return r.cache
}

// Render returns the JPEG thumbnail for the asset at requestPath.
func (r *Renderer) Render(ctx context.Context, requestPath string, size int) ([]byte, archive.Asset, error) {
	f, asset, err := r.store.Open(ctx, requestPath)
	if err != nil {
		return nil, archive.Asset{}, err
	}
	defer f.Close()

	if !archive.IsImage(asset.Name) {
		return nil, asset, ErrNotImage
	}
	rel, ok := r.store.RelPath(asset.Path)
	if !ok {
		return nil, asset, archive.ErrNotFound
	}
	key := Key(rel, size, asset.ModTime)

	if r.cache != nil {
		data, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			r.logger.Warn("thumbnail cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return data, asset, nil
		}
	}

	out, err, _ := r.group.Do(key, func() (any, error) {
		data, err := encode(f, size)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			if err := r.cache.Set(ctx, key, data); err != nil {
				r.logger.Warn("thumbnail cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, asset, fmt.Errorf("render thumbnail %s: %w", rel, err)
	}
	return out.([]byte), asset, nil
}

// Invalidate drops cached thumbnails for the asset at the root-relative path.
func (r *Renderer) Invalidate(ctx context.Context, path string) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Invalidate(ctx, path)
}

func encode(src io.Reader, size int) ([]byte, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
