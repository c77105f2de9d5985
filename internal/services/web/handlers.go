package web

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/sfx"
	webi18n "github.com/cryals/art-archive/internal/services/web/i18n"
	apperrors "github.com/cryals/art-archive/internal/services/web/platform/errors"
	"github.com/cryals/art-archive/internal/services/web/platform/httpx"
	"github.com/cryals/art-archive/internal/services/web/routepath"
	webtemplates "github.com/cryals/art-archive/internal/services/web/templates"
	"github.com/cryals/art-archive/internal/services/web/thumbs"
	"github.com/cryals/art-archive/internal/viewstate"
	"go.uber.org/zap"
)

const (
	fileNotFound  = "File not found"
	soundMIMEType = "audio/wav"
)

// handleDesktop renders the desktop shell. Item paths restore the deep-linked
// view; unknown ids fall back to the folder grid.
func (h *handler) handleDesktop(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list assets", zap.Error(err), zap.String("request_id", httpx.RequestIDFrom(r)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	printer, tag := webi18n.Localize(w, r)
	page := webtemplates.PageContext{
		Lang:        tag.String(),
		Loc:         printer,
		CurrentPath: r.URL.Path,
		AppName:     h.appName,
		Languages:   webi18n.LanguageOptions(r.URL.Path, tag),
	}
	params := webtemplates.DesktopParams{
		Items:   items,
		Session: viewstate.Restore(r.URL.Path, items),
		BootLog: viewstate.BootLog,
		Now:     h.now(),
	}
	templ.Handler(webtemplates.DesktopPage(page, params)).ServeHTTP(w, r)
}

func (h *handler) handleListAssets(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.writeAPIError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "asset listing unavailable", err))
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, items); err != nil {
		h.logger.Warn("write asset listing", zap.Error(err))
	}
}

func (h *handler) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.Find(r.Context(), r.PathValue(routepath.IDWildcard))
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			h.writeAPIError(w, r, apperrors.EK(apperrors.KindNotFound, "desktop.error.not_found", "asset not found"))
			return
		}
		h.writeAPIError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "asset listing unavailable", err))
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, item); err != nil {
		h.logger.Warn("write asset", zap.Error(err))
	}
}

// handleServeAsset streams a file from the asset root with a long-lived cache
// header. Conditional and range requests are handled by http.ServeContent.
func (h *handler) handleServeAsset(w http.ResponseWriter, r *http.Request) {
	f, asset, err := h.store.Open(r.Context(), r.PathValue(routepath.PathWildcard))
	if err != nil {
		h.writeFileError(w, r, err)
		return
	}
	defer f.Close()

	httpx.ServeImmutable(w, r, asset.Name, asset.ContentType, asset.ModTime, f)
}

func (h *handler) handleThumb(w http.ResponseWriter, r *http.Request) {
	size := thumbs.ParseSize(r.URL.Query().Get(routepath.ThumbSizeParam))
	data, asset, err := h.thumbs.Render(r.Context(), r.PathValue(routepath.PathWildcard), size)
	if err != nil {
		h.writeFileError(w, r, err)
		return
	}

	httpx.ServeImmutable(w, r, asset.Name, thumbs.ContentType, asset.ModTime, bytes.NewReader(data))
}

func (h *handler) handleSound(w http.ResponseWriter, r *http.Request) {
	name, ok := routepath.SoundCue(r.PathValue(routepath.SoundWildcard))
	if !ok {
		http.Error(w, fileNotFound, http.StatusNotFound)
		return
	}
	data, err := h.sound(name)
	if err != nil {
		http.Error(w, fileNotFound, http.StatusNotFound)
		return
	}

	httpx.ServeImmutable(w, r, name+routepath.SoundExt, soundMIMEType, time.Time{}, bytes.NewReader(data))
}

// sound renders a cue once and reuses the bytes afterwards.
func (h *handler) sound(name string) ([]byte, error) {
	cue, err := sfx.Lookup(name)
	if err != nil {
		return nil, err
	}
	if cached, ok := h.sounds.Load(cue.Name); ok {
		return cached.([]byte), nil
	}
	data, err := sfx.Render(cue)
	if err != nil {
		return nil, err
	}
	h.sounds.Store(cue.Name, data)
	return data, nil
}

// writeFileError maps asset lookup failures to the plain-text file responses.
func (h *handler) writeFileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, archive.ErrNotFound) || errors.Is(err, thumbs.ErrNotImage) {
		http.Error(w, fileNotFound, http.StatusNotFound)
		return
	}
	h.logger.Error("serve asset",
		zap.String("path", r.URL.Path),
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.Error(err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// writeAPIError writes a JSON error body with a localized public message.
func (h *handler) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if key := apperrors.LocalizationKey(err); key != "" {
		printer, _ := webi18n.Localize(w, r)
		message = printer.Sprintf(key)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("api request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	if writeErr := httpx.WriteJSONError(w, status, message); writeErr != nil {
		h.logger.Warn("write api error", zap.Error(writeErr))
	}
}
