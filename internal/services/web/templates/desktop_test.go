package templates

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	webi18n "github.com/cryals/art-archive/internal/services/web/i18n"
	"github.com/cryals/art-archive/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

func fixtureItems() []archive.Item {
	return []archive.Item{
		{
			ID:    "kovacs",
			Kind:  archive.KindCharacter,
			Name:  "Ivan Kovacs",
			Sub:   "Field Agent",
			Img:   "/api/asset/kovacs/portrait.png",
			Stats: archive.Stats{{Key: "Age", Value: "42"}, {Key: "File ID", Value: "NT-0042"}},
			Tabs: []archive.Tab{
				{Title: "Biography", Content: archive.TabContent{Description: []string{"Born on Mars.", "Joined in 2550."}}},
				{Title: "Field Notes", Content: archive.TabContent{Description: []string{"Prefers night shifts."}}},
			},
		},
		{
			ID:   "crime_scene",
			Kind: archive.KindGallery,
			Name: "crime scene",
			Sub:  "3 IMAGES",
			Img:  "/api/asset/crime_scene/01.png",
			GalleryImages: []archive.GalleryImage{
				{Name: "01.png", URL: "/api/asset/crime_scene/01.png"},
				{Name: "02.png", URL: "/api/asset/crime_scene/02.png"},
				{Name: "03.png", URL: "/api/asset/crime_scene/03.png"},
			},
		},
		{ID: "locked_1", Kind: archive.KindLocked, Name: "COMMAND_ONLY", Sub: "ENCRYPTED // NO ACCESS", Locked: true},
	}
}

func renderPage(t *testing.T, path string, tag language.Tag) *html.Node {
	t.Helper()

	items := fixtureItems()
	page := PageContext{
		Lang:        tag.String(),
		Loc:         webi18n.Printer(tag),
		CurrentPath: path,
		Languages:   webi18n.LanguageOptions(path, tag),
	}
	params := DesktopParams{
		Items:   items,
		Session: viewstate.Restore(path, items),
		Now:     time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, DesktopPage(page, params).Render(context.Background(), &buf))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && match(node) {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func byID(t *testing.T, doc *html.Node, id string) *html.Node {
	t.Helper()
	nodes := findAll(doc, func(n *html.Node) bool { return attr(n, "id") == id })
	require.Len(t, nodes, 1, "element #%s", id)
	return nodes[0]
}

func byClass(doc *html.Node, class string) []*html.Node {
	return findAll(doc, func(n *html.Node) bool {
		for _, field := range strings.Fields(attr(n, "class")) {
			if field == class {
				return true
			}
		}
		return false
	})
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func TestDesktopPageHome(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/", language.AmericanEnglish)

	htmlNode := findAll(doc, func(n *html.Node) bool { return n.Data == "html" })[0]
	assert.Equal(t, "en-US", attr(htmlNode, "lang"))
	title := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, title, 1)
	assert.Equal(t, "ART//ARCHIVE", text(title[0]))

	body := findAll(doc, func(n *html.Node) bool { return n.Data == "body" })[0]
	assert.Equal(t, "HOME", attr(body, "data-view"))
	assert.Equal(t, "BOOTING", attr(body, "data-phase"))
	assert.Equal(t, "false", attr(body, "data-deep-link"))

	assert.Equal(t, "ROOT DIRECTORY", text(byID(t, doc, "shell-title")))
	assert.Equal(t, "~/system/root_directory", text(byID(t, doc, "shell-path")))
	assert.Equal(t, "2026.03.14", text(byID(t, doc, "datecode")))
	assert.Equal(t, "09:26", text(byID(t, doc, "lock-clock")))
	assert.True(t, hasAttr(byID(t, doc, "shell-back"), "disabled"))

	home := byID(t, doc, "view-home")
	assert.False(t, hasAttr(home, "hidden"))
	assert.True(t, hasAttr(byID(t, doc, "view-dossier"), "hidden"))
	assert.True(t, hasAttr(byID(t, doc, "view-gallery"), "hidden"))

	cards := byClass(home, "folder")
	require.Len(t, cards, 3)
	assert.Equal(t, "a", cards[0].Data)
	assert.Equal(t, "/kovacs", attr(cards[0], "href"))
	assert.Equal(t, "NT-0042", text(byClass(cards[0], "folder-label")[0]))
	assert.Equal(t, "LOG-IMG1", text(byClass(cards[1], "folder-label")[0]))
	assert.Equal(t, "/api/thumb/crime_scene/01.png?size=320", attr(byClass(cards[1], "folder-thumb")[0], "src"))
	assert.Equal(t, "div", cards[2].Data)
	assert.Equal(t, "true", attr(cards[2], "aria-disabled"))

	boot := byClass(byID(t, doc, "boot-log"), "boot-caret")
	assert.Len(t, boot, len(viewstate.BootLog))

	var items []archive.Item
	require.NoError(t, json.Unmarshal([]byte(text(byID(t, doc, ItemsScriptID))), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "kovacs", items[0].ID)

	var strs map[string]string
	require.NoError(t, json.Unmarshal([]byte(text(byID(t, doc, StringsScriptID))), &strs))
	assert.Equal(t, "Verified", strs["dossier.verified"])
}

func TestDesktopPageDossierDeepLink(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/KOVACS", language.AmericanEnglish)

	body := findAll(doc, func(n *html.Node) bool { return n.Data == "body" })[0]
	assert.Equal(t, "DOSSIER", attr(body, "data-view"))
	assert.Equal(t, "true", attr(body, "data-deep-link"))
	assert.Equal(t, "kovacs", attr(body, "data-item"))

	assert.Equal(t, "~/system/ivan_kovacs", text(byID(t, doc, "shell-path")))
	assert.False(t, hasAttr(byID(t, doc, "shell-back"), "disabled"))
	assert.True(t, hasAttr(byID(t, doc, "view-home"), "hidden"))

	dossier := byID(t, doc, "view-dossier")
	assert.False(t, hasAttr(dossier, "hidden"))
	assert.Equal(t, "Verified", text(byClass(dossier, "badge-verified")[0]))
	assert.Len(t, findAll(dossier, func(n *html.Node) bool { return n.Data == "dt" }), 2)

	panels := byClass(dossier, "dossier-panel")
	require.Len(t, panels, 2)
	assert.False(t, hasAttr(panels[0], "hidden"))
	assert.True(t, hasAttr(panels[1], "hidden"))
	assert.Len(t, findAll(panels[0], func(n *html.Node) bool { return n.Data == "p" }), 2)

	tabs := byClass(dossier, "dossier-tab")
	require.Len(t, tabs, 2)
	assert.Equal(t, "true", attr(tabs[0], "aria-selected"))
	assert.Equal(t, "01 //Biography", text(tabs[0]))
}

func TestDesktopPageGalleryDeepLink(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/crime_scene", language.AmericanEnglish)

	gallery := byID(t, doc, "view-gallery")
	assert.False(t, hasAttr(gallery, "hidden"))
	assert.Equal(t, "3", attr(gallery, "data-count"))
	assert.Equal(t, "1 / 3", text(byID(t, doc, "gallery-position")))
	assert.Equal(t, "100%", text(byID(t, doc, "gallery-zoom")))
	assert.Equal(t, "/api/asset/crime_scene/01.png", attr(byID(t, doc, "gallery-image"), "src"))

	thumbs := byClass(gallery, "gallery-thumb")
	require.Len(t, thumbs, 3)
	assert.Equal(t, "true", attr(thumbs[0], "aria-current"))
}

func TestDesktopPageUnknownAndLockedFallBackHome(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/missing", "/locked_1"} {
		doc := renderPage(t, path, language.AmericanEnglish)
		body := findAll(doc, func(n *html.Node) bool { return n.Data == "body" })[0]
		assert.Equal(t, "HOME", attr(body, "data-view"), path)
		assert.Equal(t, "true", attr(body, "data-deep-link"), path)
		assert.Empty(t, attr(body, "data-item"), path)
	}
}

func TestDesktopPageRussian(t *testing.T) {
	t.Parallel()

	doc := renderPage(t, "/", language.Russian)

	htmlNode := findAll(doc, func(n *html.Node) bool { return n.Data == "html" })[0]
	assert.Equal(t, "ru", attr(htmlNode, "lang"))
	assert.Equal(t, "КОРНЕВОЙ КАТАЛОГ", text(byID(t, doc, "shell-title")))

	active := byClass(doc, "active")
	require.Len(t, active, 1)
	assert.Equal(t, "ru", attr(active[0], "hreflang"))
}

func TestThumbURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/api/thumb/a/b.png?size=96", ThumbURL("/api/asset/a/b.png", 96))
	assert.Equal(t, "https://cdn/x.png", ThumbURL("https://cdn/x.png", 96))
}

func TestShellPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~/system/root_directory", ShellPath("ROOT DIRECTORY"))
	assert.Equal(t, "~/system/crime_scene", ShellPath(" crime scene "))
}

func TestDesktopPageEscapesArchiveText(t *testing.T) {
	t.Parallel()

	hostile := `"><script>alert(1)</script>`
	items := []archive.Item{{
		ID:    "evil",
		Kind:  archive.KindCharacter,
		Name:  hostile,
		Sub:   "<b>sub</b>",
		Img:   `/api/asset/evil/a".png`,
		Stats: archive.Stats{{Key: "<i>k</i>", Value: hostile}},
		Tabs:  []archive.Tab{{Title: "<u>t</u>", Content: archive.TabContent{Description: []string{hostile}}}},
	}}
	params := DesktopParams{Items: items, Session: viewstate.Restore("/evil", items)}

	var buf bytes.Buffer
	require.NoError(t, DesktopPage(PageContext{Lang: "en-US"}, params).Render(context.Background(), &buf))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)

	scripts := findAll(doc, func(n *html.Node) bool { return n.Data == "script" })
	for _, script := range scripts {
		assert.NotEqual(t, "alert(1)", text(script))
	}
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Data == "b" || n.Data == "i" || n.Data == "u" }))

	dossier := byID(t, doc, "view-dossier")
	assert.Equal(t, hostile, text(byClass(dossier, "dossier-name")[0]))
	assert.Equal(t, "<b>sub</b>", text(byClass(dossier, "dossier-sub")[0]))
	portrait := findAll(byClass(dossier, "dossier-portrait")[0], func(n *html.Node) bool { return n.Data == "img" })
	require.Len(t, portrait, 1)
	assert.Equal(t, `/api/asset/evil/a".png`, attr(portrait[0], "src"))
	assert.Equal(t, hostile, attr(portrait[0], "alt"))
	body := findAll(doc, func(n *html.Node) bool { return n.Data == "body" })[0]
	assert.Equal(t, "evil", attr(body, "data-item"))
	assert.Equal(t, "<u>t</u>", text(findAll(dossier, func(n *html.Node) bool { return n.Data == "h2" })[0]))
}

func TestFolderCardRendersStandalone(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FolderCard(4, fixtureItems()[2]).Render(context.Background(), &buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<div class="folder folder-locked" data-id="locked_1" aria-disabled="true">`), out)
	assert.Contains(t, out, "COMMAND_ONLY")

	buf.Reset()
	require.NoError(t, FolderCard(0, fixtureItems()[0]).Render(context.Background(), &buf))
	assert.True(t, strings.HasPrefix(buf.String(), `<a class="folder folder-character" href="/kovacs"`), buf.String())
}
