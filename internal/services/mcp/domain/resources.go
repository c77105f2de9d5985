package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AssetsResourceURI addresses the archive listing resource.
const AssetsResourceURI = "archive://assets"

// ResourceUpdateNotifier pushes resource update notifications for URIs.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// AssetsResource defines the MCP resource for the archive listing.
func AssetsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "assets",
		Title:       "Archive listing",
		Description: "Readable listing of every archive entry, in the same shape as the HTTP API",
		MIMEType:    "application/json",
		URI:         AssetsResourceURI,
	}
}

// AssetsResourceHandler returns the archive listing as JSON.
func AssetsResourceHandler(source AssetSource) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if source == nil {
			return nil, fmt.Errorf("asset source is not configured")
		}
		uri := AssetsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != AssetsResourceURI {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		items, err := source.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list assets: %w", err)
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal asset listing: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// NotifyResourceUpdates sends one notification per distinct non-empty URI.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	seen := make(map[string]struct{}, len(uris))
	for _, uri := range uris {
		uri = strings.TrimSpace(uri)
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		notify(ctx, uri)
	}
}
