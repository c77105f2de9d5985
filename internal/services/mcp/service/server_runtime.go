package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cryals/art-archive/internal/archive/watch"
	"github.com/cryals/art-archive/internal/platform/discovery"
	"github.com/cryals/art-archive/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// mcpEndpoint is the path serving the streamable HTTP transport.
const mcpEndpoint = "/mcp"

// Run is the service entrypoint for MCP and blocks until context cancellation.
// Startup can choose stdio for local tools and HTTP for remote integrations.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(cfg.AssetsDir, logger)
	if err != nil {
		return err
	}

	// The watcher follows the session: stdio ends when the client hangs up.
	sessionCtx, endSession := context.WithCancel(ctx)
	defer endSession()
	g, gctx := errgroup.WithContext(sessionCtx)
	if cfg.Watch {
		watcher, err := watch.New(server.Store(), server.AssetsChanged, watch.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("build asset watcher: %w", err)
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	g.Go(func() error {
		defer endSession()
		if cfg.Transport == TransportHTTP {
			return server.serveHTTP(gctx, cfg.HTTPAddr)
		}
		return server.serveWithTransport(gctx, &mcp.StdioTransport{})
	})

	return g.Wait()
}

// httpHandler mounts the streamable MCP transport next to a health route.
func (s *Server) httpHandler() http.Handler {
	mux := http.NewServeMux()
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	mux.Handle(mcpEndpoint, streamable)
	mux.HandleFunc("GET /up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// serveHTTP runs the streamable transport until the context ends.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	addr = discovery.OrDefaultHTTPAddr(addr, discovery.ServiceMCP)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("mcp listening", zap.String("addr", addr), zap.String("endpoint", mcpEndpoint))
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
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
