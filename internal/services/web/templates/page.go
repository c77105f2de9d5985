package templates

import (
	"strings"

	webi18n "github.com/cryals/art-archive/internal/services/web/i18n"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang        string
	Loc         Localizer
	CurrentPath string
	AppName     string
	Languages   []webi18n.LanguageOption
}

// appName falls back to the catalog name when the page did not set one.
func (p PageContext) appName() string {
	if name := strings.TrimSpace(p.AppName); name != "" {
		return name
	}
	return T(p.Loc, "core.app_name")
}

// ShellPath is the prompt path shown for a view title.
func ShellPath(title string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	return "~/system/" + slug
}
