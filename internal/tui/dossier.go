package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/cryals/art-archive/internal/archive"
)

// DefaultMarkdownStyle is the glamour style used for dossier pages.
const DefaultMarkdownStyle = "dark"

// DossierMarkdown renders a character item as markdown: header, a stats
// table, then the selected tab. A negative tab renders every tab.
func DossierMarkdown(item archive.Item, tab int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", item.Name)
	if item.Sub != "" {
		fmt.Fprintf(&b, "_%s_\n\n", item.Sub)
	}

	if len(item.Stats) > 0 {
		b.WriteString("| FIELD | VALUE |\n| --- | --- |\n")
		for _, stat := range item.Stats {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(stat.Key), escapeCell(stat.Value))
		}
		b.WriteString("\n")
	}

	for idx, section := range item.Tabs {
		if tab >= 0 && idx != tab {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		for _, paragraph := range section.Content.Description {
			b.WriteString(strings.TrimSpace(paragraph))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// RenderDossier renders DossierMarkdown for a terminal of the given width.
func RenderDossier(item archive.Item, tab, width int, style string) (string, error) {
	renderer, err := newRenderer(width, style)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(DossierMarkdown(item, tab))
	if err != nil {
		return "", fmt.Errorf("render dossier: %w", err)
	}
	return out, nil
}

func newRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = DefaultMarkdownStyle
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("build markdown renderer: %w", err)
	}
	return renderer, nil
}

func escapeCell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.ReplaceAll(value, "\n", " ")
}
