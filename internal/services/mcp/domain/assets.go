package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AssetSource reads the archive listing.
type AssetSource interface {
	List(ctx context.Context) ([]archive.Item, error)
	Find(ctx context.Context, id string) (archive.Item, error)
}

// ListAssetsInput represents the MCP tool input for listing archive entries.
type ListAssetsInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"optional filter: CHARACTER, GALLERY or LOCKED"`
}

// AssetSummary is one listed archive entry.
type AssetSummary struct {
	ID        string `json:"id" jsonschema:"folder identifier"`
	Kind      string `json:"kind" jsonschema:"CHARACTER, GALLERY or LOCKED"`
	Name      string `json:"name" jsonschema:"display name"`
	Sub       string `json:"sub" jsonschema:"subtitle shown under the name"`
	Thumbnail string `json:"thumbnail,omitempty" jsonschema:"asset URL of the cover image"`
}

// ListAssetsResult represents the MCP tool output for listing archive entries.
type ListAssetsResult struct {
	Assets []AssetSummary `json:"assets" jsonschema:"archive entries in listing order"`
}

// GetAssetInput represents the MCP tool input for reading one entry.
type GetAssetInput struct {
	ID string `json:"id" jsonschema:"folder identifier, matched case-insensitively"`
}

// StatEntry is one dossier statistic.
type StatEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TabEntry is one dossier section.
type TabEntry struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// ImageEntry is one gallery image.
type ImageEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GetAssetResult represents the MCP tool output for one archive entry.
type GetAssetResult struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Name      string       `json:"name"`
	Sub       string       `json:"sub"`
	Thumbnail string       `json:"thumbnail,omitempty"`
	Locked    bool         `json:"locked"`
	Stats     []StatEntry  `json:"stats" jsonschema:"dossier statistics in descriptor order"`
	Tabs      []TabEntry   `json:"tabs" jsonschema:"dossier sections"`
	Images    []ImageEntry `json:"images" jsonschema:"gallery images in display order"`
}

// ListAssetsTool defines the MCP tool schema for listing archive entries.
func ListAssetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_assets",
		Description: "Lists dossiers, galleries and the locked entry found under the asset root",
	}
}

// GetAssetTool defines the MCP tool schema for reading one archive entry.
func GetAssetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_asset",
		Description: "Returns one archive entry with its stats, tabs and gallery images",
	}
}

// ListAssetsHandler executes a listing request.
func ListAssetsHandler(source AssetSource) mcp.ToolHandlerFor[ListAssetsInput, ListAssetsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListAssetsInput) (*mcp.CallToolResult, ListAssetsResult, error) {
		if source == nil {
			return nil, ListAssetsResult{}, fmt.Errorf("asset source is not configured")
		}
		kind, err := parseKind(input.Kind)
		if err != nil {
			return nil, ListAssetsResult{}, err
		}

		items, err := source.List(ctx)
		if err != nil {
			return nil, ListAssetsResult{}, fmt.Errorf("list assets: %w", err)
		}

		result := ListAssetsResult{Assets: make([]AssetSummary, 0, len(items))}
		for _, item := range items {
			if kind != "" && item.Kind != kind {
				continue
			}
			result.Assets = append(result.Assets, summarize(item))
		}
		return nil, result, nil
	}
}

// GetAssetHandler executes a single entry lookup.
func GetAssetHandler(source AssetSource) mcp.ToolHandlerFor[GetAssetInput, GetAssetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetAssetInput) (*mcp.CallToolResult, GetAssetResult, error) {
		if source == nil {
			return nil, GetAssetResult{}, fmt.Errorf("asset source is not configured")
		}
		id := strings.TrimSpace(input.ID)
		if id == "" {
			return nil, GetAssetResult{}, fmt.Errorf("id is required")
		}

		item, err := source.Find(ctx, id)
		if err != nil {
			if errors.Is(err, archive.ErrNotFound) {
				return nil, GetAssetResult{}, fmt.Errorf("asset %q: %w", id, err)
			}
			return nil, GetAssetResult{}, fmt.Errorf("find asset: %w", err)
		}
		return nil, detail(item), nil
	}
}

func parseKind(raw string) (archive.Kind, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	switch archive.Kind(raw) {
	case "":
		return "", nil
	case archive.KindCharacter, archive.KindGallery, archive.KindLocked:
		return archive.Kind(raw), nil
	default:
		return "", fmt.Errorf("kind %q is not supported", raw)
	}
}

func summarize(item archive.Item) AssetSummary {
	return AssetSummary{
		ID:        item.ID,
		Kind:      string(item.Kind),
		Name:      item.Name,
		Sub:       item.Sub,
		Thumbnail: item.Img,
	}
}

func detail(item archive.Item) GetAssetResult {
	result := GetAssetResult{
		ID:        item.ID,
		Kind:      string(item.Kind),
		Name:      item.Name,
		Sub:       item.Sub,
		Thumbnail: item.Img,
		Locked:    item.Locked,
		Stats:     make([]StatEntry, 0, len(item.Stats)),
		Tabs:      make([]TabEntry, 0, len(item.Tabs)),
		Images:    make([]ImageEntry, 0, len(item.GalleryImages)),
	}
	for _, stat := range item.Stats {
		result.Stats = append(result.Stats, StatEntry{Key: stat.Key, Value: stat.Value})
	}
	for _, tab := range item.Tabs {
		paragraphs := tab.Content.Description
		if paragraphs == nil {
			paragraphs = []string{}
		}
		result.Tabs = append(result.Tabs, TabEntry{Title: tab.Title, Paragraphs: paragraphs})
	}
	for _, image := range item.GalleryImages {
		result.Images = append(result.Images, ImageEntry{Name: image.Name, URL: image.URL})
	}
	return result
}
