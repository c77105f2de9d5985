package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultContentType = "application/octet-stream"

// extensionTypes pins the types the archive serves most so responses do not
// depend on the host's mime tables.
var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
	".json": "application/json",
	".yaml": "application/yaml",
	".yml":  "application/yaml",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// ContentType resolves a MIME type from the file extension of name.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return defaultContentType
	}
	if contentType, ok := extensionTypes[ext]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return defaultContentType
}

// CleanRequestPath strips traversal sequences and surrounding slashes from a
// request path.
func CleanRequestPath(requestPath string) string {
	cleaned := strings.ReplaceAll(requestPath, "..", "")
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	return strings.Trim(cleaned, "/")
}

// ResolvePath maps a request path to an absolute file path under root.
func ResolvePath(root, requestPath string) (string, error) {
	cleaned := CleanRequestPath(requestPath)
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(root, filepath.FromSlash(cleaned))
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}

// Asset describes an opened asset file.
type Asset struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// Open resolves requestPath under the root and opens it for reading. Missing
// files, directories and rejected paths all report ErrNotFound.
func (s *Store) Open(ctx context.Context, requestPath string) (*os.File, Asset, error) {
	_, span := s.tracer.Start(ctx, "archive.Open", trace.WithAttributes(attribute.String("archive.request_path", requestPath)))
	defer span.End()

	full, err := ResolvePath(s.root, requestPath)
	if err != nil {
		return nil, Asset{}, fmt.Errorf("%w: %s", ErrNotFound, err)
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Asset{}, ErrNotFound
		}
		return nil, Asset{}, fmt.Errorf("stat asset: %w", err)
	}
	if info.IsDir() {
		return nil, Asset{}, ErrNotFound
	}
	file, err := os.Open(full)
	if err != nil {
		return nil, Asset{}, fmt.Errorf("open asset: %w", err)
	}
	asset := Asset{
		Path:        full,
		Name:        info.Name(),
		ContentType: ContentType(info.Name()),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
	}
	span.SetAttributes(attribute.String("archive.content_type", asset.ContentType), attribute.Int64("archive.size", asset.Size))
	return file, asset, nil
}

// RelPath returns the slash-separated path of full relative to the root.
func (s *Store) RelPath(full string) (string, bool) {
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
