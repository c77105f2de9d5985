package thumbs

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newRenderer(t *testing.T, cache Cache) *Renderer {
	t.Helper()
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "crime_scene", "01.png"), 800, 400)
	require.NoError(t, os.WriteFile(filepath.Join(root, "crime_scene", "notes.txt"), []byte("n/a"), 0o644))

	store, err := archive.NewStore(root)
	require.NoError(t, err)
	return NewRenderer(store, cache, nil)
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"":      DefaultSize,
		"abc":   DefaultSize,
		"128":   128,
		"1":     MinSize,
		"-40":   MinSize,
		"99999": MaxSize,
		" 640 ": 640,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseSize(raw), "ParseSize(%q)", raw)
	}
}

func TestRenderFitsWithinBox(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nil)
	data, asset, err := r.Render(context.Background(), "crime_scene/01.png", 320)
	require.NoError(t, err)
	assert.Equal(t, "01.png", asset.Name)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())
}

func TestRenderUsesCache(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(16)
	r := newRenderer(t, cache)
	ctx := context.Background()

	first, _, err := r.Render(ctx, "/crime_scene/01.png", 64)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, _, err := r.Render(ctx, "crime_scene/01.png", 64)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	_, _, err = r.Render(ctx, "crime_scene/01.png", 128)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, r.Invalidate(ctx, "crime_scene/01.png"))
	assert.Equal(t, 0, cache.Len())
}

func TestRenderRejectsNonImagesAndMissingFiles(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, nil)
	ctx := context.Background()

	_, _, err := r.Render(ctx, "crime_scene/notes.txt", 64)
	assert.ErrorIs(t, err, ErrNotImage)

	_, _, err = r.Render(ctx, "crime_scene/missing.png", 64)
	assert.ErrorIs(t, err, archive.ErrNotFound)

	_, _, err = r.Render(ctx, "../../etc/passwd", 64)
	assert.True(t, errors.Is(err, archive.ErrNotFound))
}

func TestMemoryCacheEvictsOldest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := NewMemoryCache(2)
	mod := time.Unix(1700000000, 0)

	require.NoError(t, cache.Set(ctx, Key("a.png", 64, mod), []byte("a")))
	require.NoError(t, cache.Set(ctx, Key("b.png", 64, mod), []byte("b")))
	require.NoError(t, cache.Set(ctx, Key("c.png", 64, mod), []byte("c")))

	_, ok, err := cache.Get(ctx, Key("a.png", 64, mod))
	require.NoError(t, err)
	assert.False(t, ok)

	data, ok, err := cache.Get(ctx, Key("c.png", 64, mod))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), data)
	assert.Len(t, cache.byPath, 2)
}

func TestKeyIncludesModTime(t *testing.T) {
	t.Parallel()

	before := Key("/gallery/01.png", 320, time.Unix(10, 0))
	after := Key("gallery/01.png", 320, time.Unix(11, 0))
	assert.NotEqual(t, before, after)
	assert.Equal(t, "thumb:gallery/01.png:", prefixOf(before))
	assert.Equal(t, prefixOf(before), prefixOf(after))
}

func TestRedisCacheRoundTrip(t *testing.T) {
	url := os.Getenv("ARCHIVE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARCHIVE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	cache, err := NewRedisCache(ctx, url, "art-archive-test")
	require.NoError(t, err)
	defer cache.Close()

	key := Key("gallery/01.png", 64, time.Now())
	require.NoError(t, cache.Set(ctx, key, []byte("jpeg")))
	data, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg"), data)

	require.NoError(t, cache.Invalidate(ctx, "gallery/01.png"))
	_, ok, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisMatchPatternEscapesGlobSyntax(t *testing.T) {
	t.Parallel()

	cache := &RedisCache{prefix: "art"}
	assert.Equal(t, `art:thumb:gallery/01.png:*`, cache.matchPattern("gallery/01.png"))
	assert.Equal(t, `art:thumb:g\[1\]/\*\?\\x.png:*`, cache.matchPattern(`g[1]/*?\x.png`))
	assert.Equal(t, `thumb:a\*b:*`, (&RedisCache{}).matchPattern("/a*b/"))
}

func TestRedisInvalidateLeavesGlobSiblings(t *testing.T) {
	url := os.Getenv("ARCHIVE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARCHIVE_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	cache, err := NewRedisCache(ctx, url, "art-archive-test")
	require.NoError(t, err)
	defer cache.Close()

	target := Key("scans/[ab].png", 64, time.Now())
	sibling := Key("scans/a.png", 64, time.Now())
	require.NoError(t, cache.Set(ctx, target, []byte("t")))
	require.NoError(t, cache.Set(ctx, sibling, []byte("s")))

	require.NoError(t, cache.Invalidate(ctx, "scans/[ab].png"))
	_, ok, err := cache.Get(ctx, target)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = cache.Get(ctx, sibling)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, cache.Invalidate(ctx, "scans/a.png"))
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not-a-redis-url", "")
	require.Error(t, err)
}
