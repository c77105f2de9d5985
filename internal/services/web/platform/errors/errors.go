// Package errors classifies web failures so handlers answer with one status
// mapping for archive lookups, locked entries and backend outages.
package errors

import (
	stderrors "errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/viewstate"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown     Kind = "unknown"
	KindNotFound    Kind = "not_found"
	KindLocked      Kind = "locked"
	KindUnavailable Kind = "unavailable"
)

// Error is a typed web failure with an optional catalog key for its message.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e Error) Unwrap() error {
	return e.Err
}

// EK builds a typed Error carrying a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap classifies cause under kind with a public message.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Err: cause}
}

// LocalizationKey returns the catalog key of a typed error, if any.
func LocalizationKey(err error) string {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// KindOf classifies err. Typed errors keep their kind; archive and view
// sentinels map to the matching kind; everything else is unknown.
func KindOf(err error) Kind {
	var appErr Error
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &appErr) && appErr.Kind != KindUnknown && appErr.Kind != "":
		return appErr.Kind
	case stderrors.Is(err, viewstate.ErrLocked):
		return KindLocked
	case stderrors.Is(err, archive.ErrNotFound),
		stderrors.Is(err, archive.ErrInvalidPath),
		stderrors.Is(err, fs.ErrNotExist):
		return KindNotFound
	default:
		return KindUnknown
	}
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case "":
		return http.StatusOK
	case KindNotFound:
		return http.StatusNotFound
	case KindLocked:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
