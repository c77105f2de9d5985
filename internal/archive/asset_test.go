package archive

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestContentType(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"portrait.PNG":  "image/png",
		"photo.jpeg":    "image/jpeg",
		"scan.webp":     "image/webp",
		"dossier.json":  "application/json",
		"archive.xyz42": "application/octet-stream",
		"README":        "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equalf(t, want, ContentType(name), "ContentType(%q)", name)
	}
}

func TestCleanRequestPath(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"../../etc/passwd":  "etc/passwd",
		"/gallery/01.png":   "gallery/01.png",
		"gallery\\..\\x":    "gallery//x",
		"....":              "",
		"kovacs/portrait..": "kovacs/portrait",
	}
	for in, want := range cases {
		assert.Equalf(t, want, CleanRequestPath(in), "CleanRequestPath(%q)", in)
	}
}

func TestResolvePathStaysUnderRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	full, err := ResolvePath(root, "../gallery/01.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gallery", "01.png"), full)

	_, err = ResolvePath(root, "/")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestAssetURLEscapesSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/api/asset/night%20watch/frame%20%231.png", AssetURL("night watch", "frame #1.png"))
}

func TestStatsJSONRoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	var stats Stats
	require.NoError(t, json.Unmarshal([]byte(`{"Zeta": "1", "Alpha": 2.5, "Mid": null}`), &stats))
	assert.Equal(t, Stats{{"Zeta", "1"}, {"Alpha", "2.5"}, {"Mid", ""}}, stats)

	out, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":"1","Alpha":"2.5","Mid":""}`, string(out))

	value, ok := stats.Get("Alpha")
	assert.True(t, ok)
	assert.Equal(t, "2.5", value)
}

func TestStatsDuplicateKeyLastValueWins(t *testing.T) {
	t.Parallel()

	var fromJSON Stats
	require.NoError(t, json.Unmarshal([]byte(`{"Age": "1", "Rank": "x", "Age": 2}`), &fromJSON))
	assert.Equal(t, Stats{{"Age", "2"}, {"Rank", "x"}}, fromJSON)

	var fromYAML Stats
	require.NoError(t, yaml.Unmarshal([]byte("Age: 1\nRank: x\nAge: 2\n"), &fromYAML))
	assert.Equal(t, Stats{{"Age", "2"}, {"Rank", "x"}}, fromYAML)

	value, ok := fromJSON.Get("Age")
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestStatsRejectsNonObject(t *testing.T) {
	t.Parallel()

	var stats Stats
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &stats))
}

func TestItemJSONOmitsEmptyThumbnail(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(lockedPlaceholder())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"locked_1","type":"LOCKED","name":"COMMAND_ONLY","sub":"ENCRYPTED // NO ACCESS","locked":true}`, string(out))
}

func TestCharacterJSONAlwaysCarriesStatsAndTabs(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal([]Item{
		{ID: "ghost", Kind: KindCharacter, Name: "ghost", Sub: "Unknown Assignment"},
		{ID: "g", Kind: KindGallery, Name: "g", Sub: "1 IMAGE(S) // EVIDENTIARY"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"ghost","type":"CHARACTER","name":"ghost","sub":"Unknown Assignment","locked":false,"stats":{},"tabs":[]},
		{"id":"g","type":"GALLERY","name":"g","sub":"1 IMAGE(S) // EVIDENTIARY","locked":false}
	]`, string(out))

	var back []Item
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, Stats{}, back[0].Stats)
	assert.Equal(t, []Tab{}, back[0].Tabs)
}

func TestFileLabel(t *testing.T) {
	t.Parallel()

	withID := Item{Kind: KindCharacter, Stats: Stats{{Key: "File ID", Value: "NT-0042"}}}
	assert.Equal(t, "NT-0042", withID.FileLabel(3))
	assert.Equal(t, "DIR-02", Item{Kind: KindCharacter}.FileLabel(2))
	assert.Equal(t, "LOG-IMG1", Item{Kind: KindGallery}.FileLabel(1))
	assert.Equal(t, "DIR-05", lockedPlaceholder().FileLabel(5))
}
