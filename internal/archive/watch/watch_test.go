package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(_ context.Context, paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

func (r *recorder) seen(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.paths, path)
}

func startWatcher(t *testing.T, root string) *recorder {
	t.Helper()
	store, err := archive.NewStore(root)
	require.NoError(t, err)

	rec := &recorder{}
	w, err := New(store, rec.record, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	select {
	case <-w.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never became ready")
	}
	return rec
}

func TestWatcherReportsFileChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "kovacs"), 0o755))
	rec := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "kovacs", "kovacs.png"), []byte("png"), 0o644))

	assert.Eventually(t, func() bool { return rec.seen("kovacs/kovacs.png") }, 3*time.Second, 10*time.Millisecond)
}

func TestWatcherFollowsNewFolders(t *testing.T) {
	root := t.TempDir()
	rec := startWatcher(t, root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "night_shift"), 0o755))
	assert.Eventually(t, func() bool { return rec.seen("night_shift") }, 3*time.Second, 10*time.Millisecond)

	// fsnotify registers the new folder asynchronously from the Create event.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(root, "night_shift", "01.png"), []byte("png"), 0o644)
		return rec.seen("night_shift/01.png")
	}, 3*time.Second, 50*time.Millisecond)
}

func TestWatcherToleratesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "absent")
	startWatcher(t, root)
}

func TestWatcherPicksUpRootCreatedLater(t *testing.T) {
	root := filepath.Join(t.TempDir(), "late")
	rec := startWatcher(t, root)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "kovacs"), 0o755))
	assert.Eventually(t, func() bool { return rec.seen("kovacs") }, 3*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(root, "kovacs", "kovacs.png"), []byte("png"), 0o644)
		return rec.seen("kovacs/kovacs.png")
	}, 3*time.Second, 50*time.Millisecond)
}

func TestNewValidatesArguments(t *testing.T) {
	store, err := archive.NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = New(nil, func(context.Context, []string) {})
	require.Error(t, err)
	_, err = New(store, nil)
	require.Error(t, err)
}
