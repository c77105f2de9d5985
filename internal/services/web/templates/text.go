package templates

import (
	"sync"

	platformi18n "github.com/cryals/art-archive/internal/platform/i18n"
	webi18n "github.com/cryals/art-archive/internal/services/web/i18n"
	"golang.org/x/text/message"
)

// Localizer renders catalog keys for the desktop shell.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var (
	fallbackOnce    sync.Once
	fallbackPrinter *message.Printer
)

// T renders key with loc. Pages built without a localizer read the
// default-locale catalog.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		fallbackOnce.Do(func() {
			fallbackPrinter = webi18n.Printer(platformi18n.DefaultTag())
		})
		loc = fallbackPrinter
	}
	return loc.Sprintf(key, args...)
}
