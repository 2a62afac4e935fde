package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aha-designer/backend/internal/domain"
	"go.uber.org/zap"
)

// Store keeps workspace graphs as files below a single root directory
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates a file store rooted at root. The directory is created on
// first save.
func NewStore(root string, logger *zap.Logger) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Store{root: abs, logger: logger.Named("workspace")}, nil
}

// Root returns the absolute workspace root
func (s *Store) Root() string {
	return s.root
}

// Save writes graph to path, creating parent directories, and returns the
// absolute path written
func (s *Store) Save(ctx context.Context, path string, graph []byte) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create workspace directory: %w", err)
	}

	// readers never see a partially written graph
	tmp, err := os.CreateTemp(filepath.Dir(full), ".aha-*.tmp")
	if err != nil {
		return "", fmt.Errorf("write workspace file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(graph); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write workspace file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write workspace file: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("write workspace file: %w", err)
	}

	s.logger.Info("workspace saved", zap.String("path", full), zap.Int("bytes", len(graph)))
	return full, nil
}

// Load reads the graph stored at path
func (s *Store) Load(ctx context.Context, path string) ([]byte, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read workspace file: %w", err)
	}
	return data, nil
}

// resolve maps a caller path onto the root. Relative paths are taken from
// the root; absolute ones must already lie inside it.
func (s *Store) resolve(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("%w: workspace path is empty", domain.ErrInvalidRequest)
	}

	rel := trimmed
	if filepath.IsAbs(trimmed) {
		r, err := filepath.Rel(s.root, filepath.Clean(trimmed))
		if err != nil {
			return "", fmt.Errorf("%w: workspace path %q is outside the workspace root", domain.ErrInvalidRequest, path)
		}
		rel = r
	}

	if !filepath.IsLocal(rel) || filepath.Clean(rel) == "." {
		return "", fmt.Errorf("%w: workspace path %q is outside the workspace root", domain.ErrInvalidRequest, path)
	}
	return filepath.Join(s.root, rel), nil
}
