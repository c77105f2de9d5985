package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	platformotel "github.com/cryals/art-archive/internal/platform/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Store reads the archive from an asset root on disk.
//
// Store holds no cached state: every List call rescans the root, so folders
// added or edited on disk show up on the next request.
type Store struct {
	root   string
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for skipped entries.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore builds a store rooted at root.
func NewStore(root string, opts ...Option) (*Store, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("asset root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset root: %w", err)
	}
	s := &Store{
		root:   abs,
		logger: zap.NewNop(),
		tracer: platformotel.Tracer("archive"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ListAssets scans root once and returns its listing.
func ListAssets(ctx context.Context, root string, opts ...Option) ([]Item, error) {
	store, err := NewStore(root, opts...)
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

// Root returns the absolute asset root.
func (s *Store) Root() string {
	return s.root
}

// List scans the immediate subdirectories of the root and classifies them.
// The locked placeholder is always the last entry, even when the root is missing.
func (s *Store) List(ctx context.Context) ([]Item, error) {
	_, span := s.tracer.Start(ctx, "archive.List", trace.WithAttributes(attribute.String("archive.root", s.root)))
	defer span.End()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("asset root missing", zap.String("root", s.root))
			return []Item{lockedPlaceholder()}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "read asset root")
		return nil, fmt.Errorf("read asset root: %w", err)
	}

	items := make([]Item, 0, len(entries)+1)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		item, ok := s.classify(entry.Name())
		if ok {
			items = append(items, item)
		}
	}
	items = append(items, lockedPlaceholder())

	span.SetAttributes(attribute.Int("archive.items", len(items)))
	return items, nil
}

// Find returns the item whose id matches id case-insensitively.
func (s *Store) Find(ctx context.Context, id string) (Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, ErrNotFound
	}
	items, err := s.List(ctx)
	if err != nil {
		return Item{}, err
	}
	if item, ok := FindItem(items, id); ok {
		return item, nil
	}
	return Item{}, ErrNotFound
}

// FindItem looks up id in items case-insensitively.
func FindItem(items []Item, id string) (Item, bool) {
	for _, item := range items {
		if strings.EqualFold(item.ID, id) {
			return item, true
		}
	}
	return Item{}, false
}

func (s *Store) classify(folder string) (Item, bool) {
	dir := filepath.Join(s.root, folder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Warn("skip unreadable folder", zap.String("folder", folder), zap.Error(err))
		return Item{}, false
	}

	names := make([]string, 0, len(entries))
	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
		if IsImage(entry.Name()) {
			images = append(images, entry.Name())
		}
	}

	if descriptor := pickDescriptor(names); descriptor != "" {
		desc, err := readDescriptor(filepath.Join(dir, descriptor))
		if err != nil {
			s.logger.Error("skip character with bad descriptor",
				zap.String("folder", folder),
				zap.String("descriptor", descriptor),
				zap.Error(err),
			)
			return Item{}, false
		}
		return characterItem(folder, desc, images), true
	}
	if len(images) > 0 {
		return galleryItem(folder, images), true
	}
	return Item{}, false
}
