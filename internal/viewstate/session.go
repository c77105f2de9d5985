package viewstate

import "github.com/cryals/art-archive/internal/archive"

// Phase is the desktop session lifecycle stage.
type Phase int

const (
	PhaseBooting Phase = iota
	PhaseLocked
	PhaseUnlocked
)

func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "BOOTING"
	case PhaseLocked:
		return "LOCKED"
	case PhaseUnlocked:
		return "UNLOCKED"
	default:
		return "UNKNOWN"
	}
}

// BootLog is the sequence of lines printed while the desktop boots.
var BootLog = []string{
	"INITIALIZING KERNEL...",
	"LOADING DRIVERS [OK]",
	"MOUNTING FILE SYSTEM...",
	"CHECKING INTEGRITY... [VERIFIED]",
	"CONNECTING TO NANOTRASEN NET...",
	"ESTABLISHING SECURE TUNNEL [KC-14]",
	"DECRYPTING USER PROFILE...",
	"ACCESS GRANTED.",
}

// Session pairs the lifecycle phase with the navigation controller.
type Session struct {
	phase    Phase
	deepLink bool
	Nav      *Controller
}

// NewSession starts a booting session. A deep-linked session skips the lock
// screen once booting completes.
func NewSession(nav *Controller, deepLink bool) *Session {
	if nav == nil {
		nav = &Controller{}
	}
	return &Session{phase: PhaseBooting, deepLink: deepLink, Nav: nav}
}

// Restore rebuilds a session from an address-bar path. Any item id in the path
// marks the session deep-linked, including ids that are unknown or locked and
// leave the controller on HOME.
func Restore(path string, items []archive.Item) *Session {
	nav, _ := FromPath(path, items)
	return NewSession(nav, IDFromPath(path) != "")
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// BootComplete leaves the booting phase.
func (s *Session) BootComplete() {
	if s.phase != PhaseBooting {
		return
	}
	if s.deepLink {
		s.phase = PhaseUnlocked
		return
	}
	s.phase = PhaseLocked
}

// Unlock dismisses the lock screen. It reports whether the phase changed.
func (s *Session) Unlock() bool {
	if s.phase != PhaseLocked {
		return false
	}
	s.phase = PhaseUnlocked
	return true
}

// DeepLink reports whether the session started from an item address.
func (s *Session) DeepLink() bool {
	return s.deepLink
}
