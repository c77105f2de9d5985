package templates

import (
	"strconv"
	"strings"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/services/web/routepath"
	"github.com/cryals/art-archive/internal/viewstate"
)

// Element ids shared with the desktop client script.
const (
	ItemsScriptID   = "archive-items"
	BootScriptID    = "archive-boot"
	StringsScriptID = "archive-strings"
)

const (
	logoURL        = "/api/asset/Logs/ntlogo.svg"
	cardThumbSize  = 320
	stripThumbSize = 96
	dateCodeLayout = "2006.01.02"
	clockLayout    = "15:04"
)

// clientStringKeys are the catalog keys handed to the client script.
var clientStringKeys = []string{
	"desktop.home.title",
	"desktop.home.empty",
	"desktop.shell.back",
	"desktop.dossier.verified",
	"desktop.dossier.no_image",
	"desktop.gallery.resolution",
	"desktop.gallery.zoom",
	"desktop.gallery.prev",
	"desktop.gallery.next",
	"desktop.gallery.zoom_in",
	"desktop.gallery.zoom_out",
	"desktop.gallery.close",
}

// DesktopParams is the view model for the desktop page.
type DesktopParams struct {
	Items   []archive.Item
	Session *viewstate.Session
	BootLog []string
	Now     time.Time
}

// ThumbURL maps an asset URL to its thumbnail URL at size.
func ThumbURL(assetURL string, size int) string {
	if !strings.HasPrefix(assetURL, archive.AssetURLPrefix) {
		return assetURL
	}
	return routepath.ThumbPrefix + strings.TrimPrefix(assetURL, archive.AssetURLPrefix) + "?" + routepath.ThumbSizeParam + "=" + strconv.Itoa(size)
}

// ViewTitle is the shell title for the session's current view.
func ViewTitle(loc Localizer, nav *viewstate.Controller) string {
	if item, ok := nav.Item(); ok {
		return item.Name
	}
	return T(loc, "desktop.home.title")
}

// desktopView is the per-render state shared by the shell components.
type desktopView struct {
	Session *viewstate.Session
	Nav     *viewstate.Controller
	Item    archive.Item
	Title   string
	BootLog []string
	Now     time.Time
}

func newDesktopView(page PageContext, params DesktopParams) desktopView {
	session := params.Session
	if session == nil {
		session = viewstate.NewSession(nil, false)
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	bootLog := params.BootLog
	if len(bootLog) == 0 {
		bootLog = viewstate.BootLog
	}
	item, _ := session.Nav.Item()
	return desktopView{
		Session: session,
		Nav:     session.Nav,
		Item:    item,
		Title:   ViewTitle(page.Loc, session.Nav),
		BootLog: bootLog,
		Now:     now,
	}
}

func lockDate(now time.Time) string {
	return strings.ToUpper(now.Format("Monday, January 2, 2006"))
}

func folderKindClass(item archive.Item) string {
	return "folder-" + strings.ToLower(string(item.Kind))
}

func folderIcon(item archive.Item) string {
	switch {
	case !item.Browsable():
		return "\U0001F512"
	case item.Kind == archive.KindGallery:
		return "\U0001F4F7"
	default:
		return "\U0001F4C1"
	}
}

func tabIndexLabel(idx int) string {
	return "0" + strconv.Itoa(idx+1) + " //"
}

func dossierRef(item archive.Item) string {
	return strings.ToUpper(item.ID)
}

func currentImage(item archive.Item, gallery *viewstate.Gallery) (archive.GalleryImage, bool) {
	if gallery.Count() == 0 || gallery.Index() >= len(item.GalleryImages) {
		return archive.GalleryImage{}, false
	}
	return item.GalleryImages[gallery.Index()], true
}

func clientStrings(loc Localizer) map[string]string {
	out := make(map[string]string, len(clientStringKeys))
	for _, key := range clientStringKeys {
		out[strings.TrimPrefix(key, "desktop.")] = T(loc, key)
	}
	return out
}

func itemsOrEmpty(items []archive.Item) []archive.Item {
	if items == nil {
		return []archive.Item{}
	}
	return items
}
