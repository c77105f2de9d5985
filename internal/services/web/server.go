package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/branding"
	"github.com/cryals/art-archive/internal/platform/discovery"
	"github.com/cryals/art-archive/internal/platform/timeouts"
	"github.com/cryals/art-archive/internal/services/web/platform/httpx"
	"github.com/cryals/art-archive/internal/services/web/platform/observability"
	"github.com/cryals/art-archive/internal/services/web/routepath"
	"github.com/cryals/art-archive/internal/services/web/static"
	"github.com/cryals/art-archive/internal/services/web/thumbs"
	"go.uber.org/zap"
)

// defaultThumbEntries bounds the in-memory thumbnail cache.
const defaultThumbEntries = 512

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr  string
	AssetsDir string
	AppName   string
	// ThumbCache stores rendered thumbnails. Nil uses a bounded in-memory cache.
	ThumbCache thumbs.Cache
	Logger     *zap.Logger
	// Now overrides the clock used for the shell date code.
	Now func() time.Time
}

// Server hosts the archive desktop HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	handler    *handler
	logger     *zap.Logger
}

type handler struct {
	appName string
	store   *archive.Store
	thumbs  *thumbs.Renderer
	logger  *zap.Logger
	now     func() time.Time
	sounds  sync.Map
}

func newHandler(config Config) (*handler, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := archive.NewStore(config.AssetsDir, archive.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open asset store: %w", err)
	}
	cache := config.ThumbCache
	if cache == nil {
		cache = thumbs.NewMemoryCache(defaultThumbEntries)
	}
	appName := strings.TrimSpace(config.AppName)
	if appName == "" {
		appName = branding.AppName
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &handler{
		appName: appName,
		store:   store,
		thumbs:  thumbs.NewRenderer(store, cache, logger),
		logger:  logger,
		now:     now,
	}, nil
}

// routes registers the desktop and API routes behind the shared middleware.
func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPattern, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))

	mux.HandleFunc(routepath.RootPattern, h.handleDesktop)
	mux.HandleFunc(routepath.ItemPattern, h.handleDesktop)
	mux.HandleFunc(routepath.AssetsPattern, h.handleListAssets)
	mux.HandleFunc(routepath.AssetsItemPattern, h.handleGetAsset)
	mux.HandleFunc(routepath.AssetPattern, h.handleServeAsset)
	mux.HandleFunc(routepath.ThumbPattern, h.handleThumb)
	mux.HandleFunc(routepath.SoundPattern, h.handleSound)

	mux.HandleFunc(routepath.HealthPattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return httpx.Chain(mux,
		httpx.RecoverPanic(h.logger),
		httpx.RequestID(),
		observability.RequestLogger(h.logger),
		observability.Trace(),
	)
}

// NewHandler creates the HTTP handler for the archive desktop.
func NewHandler(config Config) (http.Handler, error) {
	h, err := newHandler(config)
	if err != nil {
		return nil, err
	}
	return h.routes(), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := discovery.OrDefaultHTTPAddr(config.HTTPAddr, discovery.ServiceWeb)
	h, err := newHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           h.routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		handler:    h,
		logger:     h.logger,
	}, nil
}

// Store returns the asset store the server reads from.
func (s *Server) Store() *archive.Store {
	return s.handler.store
}

// InvalidateThumbs drops cached thumbnails for root-relative asset paths.
// Its signature matches the asset watcher's change callback.
func (s *Server) InvalidateThumbs(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.handler.thumbs.Invalidate(ctx, path); err != nil {
			s.logger.Warn("invalidate thumbnails", zap.String("path", path), zap.Error(err))
			continue
		}
		s.logger.Info("asset changed", zap.String("path", path))
	}
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", zap.String("addr", s.httpAddr), zap.String("assets", s.handler.store.Root()))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the thumbnail cache when it holds external resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	closer, ok := s.handler.thumbs.Cache().(interface{ Close() error })
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		s.logger.Warn("close thumbnail cache", zap.Error(err))
	}
}
