package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/branding"
	"github.com/cryals/art-archive/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	AssetsDir string
	Transport TransportKind
	HTTPAddr  string
	// Watch follows the asset root and notifies resource subscribers on change.
	Watch  bool
	Logger *zap.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     *archive.Store
	logger    *zap.Logger
}

// New creates a configured MCP server reading from the asset root.
func New(assetsDir string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := archive.NewStore(assetsDir, archive.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open asset store: %w", err)
	}
	return newServer(store, logger), nil
}

// newServer creates MCP tool/resource bindings over store.
func newServer(store *archive.Store, logger *zap.Logger) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   branding.Tagline,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	mcp.AddTool(mcpServer, domain.ListAssetsTool(), domain.ListAssetsHandler(store))
	mcp.AddTool(mcpServer, domain.GetAssetTool(), domain.GetAssetHandler(store))
	mcpServer.AddResource(domain.AssetsResource(), domain.AssetsResourceHandler(store))

	return &Server{mcpServer: mcpServer, store: store, logger: logger}
}

// Store returns the asset store the handlers read from.
func (s *Server) Store() *archive.Store {
	return s.store
}

// notifyResource pushes a resource update to subscribed sessions.
func (s *Server) notifyResource(ctx context.Context, uri string) {
	if strings.TrimSpace(uri) == "" {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
		s.logger.Warn("mcp resource updated notify failed", zap.String("uri", uri), zap.Error(err))
	}
}

// AssetsChanged notifies listing subscribers after files under the root change.
// Its signature matches the asset watcher's change callback.
func (s *Server) AssetsChanged(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}
	s.logger.Info("asset listing changed", zap.Strings("paths", paths))
	domain.NotifyResourceUpdates(ctx, s.notifyResource, domain.AssetsResourceURI)
}

// completionHandler answers completion/complete with no values; the server
// exposes no prompts or resource templates.
func completionHandler(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// resourceSubscribeHandler accepts subscriptions to the listing resource.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	if req.Params.URI != domain.AssetsResourceURI {
		return fmt.Errorf("resource %q does not support subscriptions", req.Params.URI)
	}
	return nil
}

// resourceUnsubscribeHandler accepts unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// serveWithTransport runs the MCP session loop until the peer disconnects or
// the context ends.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
