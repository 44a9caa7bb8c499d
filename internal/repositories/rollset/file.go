package rollset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KirkDiggler/dicegraph/internal/common/atomicfile"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

// FileExtension is the extension of roll set files
const FileExtension = ".dicegraph"

// ErrEmptyName is returned when a name has no usable characters
var ErrEmptyName = errors.New("roll set name must contain letters or digits")

// FileConfig holds configuration for the file-backed roll set repository
type FileConfig struct {
	// Dir is the directory holding one file per roll set
	Dir string
}

// fileRepository implements the Repository interface on the local filesystem
type fileRepository struct {
	dir string
}

// NewFile creates a file-backed roll set repository, creating Dir if needed
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Dir == "" {
		return nil, errors.New("directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create roll set directory: %w", err)
	}

	return &fileRepository{
		dir: cfg.Dir,
	}, nil
}

// SaveRollSet writes a roll set to <dir>/<key>.dicegraph, replacing it atomically
func (r *fileRepository) SaveRollSet(ctx context.Context, input *SaveRollSetInput) error {
	if input == nil || input.Set == nil {
		return errors.New("input and roll set cannot be nil")
	}

	path, err := r.path(input.Name)
	if err != nil {
		return err
	}

	if err := atomicfile.WriteFile(path, encode(input.Set), 0o644); err != nil {
		return fmt.Errorf("failed to save roll set: %w", err)
	}

	slog.DebugContext(ctx, "saved roll set",
		"name", input.Name,
		"path", path,
		"total", input.Set.Total)

	return nil
}

// GetRollSet reads a roll set file
func (r *fileRepository) GetRollSet(ctx context.Context, input *GetRollSetInput) (*models.RollSet, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	path, err := r.path(input.Name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrNotFound, input.Name)
		}
		return nil, fmt.Errorf("failed to read roll set: %w", err)
	}

	set, err := decode(data)
	if err != nil {
		slog.WarnContext(ctx, "corrupt roll set file", "path", path, "error", err)
		return nil, fmt.Errorf("%s: %w", input.Name, err)
	}

	return set, nil
}

// ListRollSets returns the keys of all roll set files in sorted order
func (r *fileRepository) ListRollSets(ctx context.Context) (*ListRollSetsOutput, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ListRollSetsOutput{Names: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to list roll sets: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileExtension) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), FileExtension))
	}
	sort.Strings(names)

	return &ListRollSetsOutput{
		Names: names,
	}, nil
}

// DeleteRollSet removes a roll set file
func (r *fileRepository) DeleteRollSet(ctx context.Context, input *DeleteRollSetInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	path, err := r.path(input.Name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", models.ErrNotFound, input.Name)
		}
		return fmt.Errorf("failed to delete roll set: %w", err)
	}

	return nil
}

// DeleteAll removes every roll set file in the directory
func (r *fileRepository) DeleteAll(ctx context.Context) (*DeleteAllOutput, error) {
	list, err := r.ListRollSets(ctx)
	if err != nil {
		return nil, err
	}

	deleted := 0
	for _, name := range list.Names {
		if err := os.Remove(filepath.Join(r.dir, name+FileExtension)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return &DeleteAllOutput{Deleted: deleted}, fmt.Errorf("failed to delete %s: %w", name, err)
		}
		deleted++
	}

	slog.InfoContext(ctx, "deleted roll sets", "dir", r.dir, "count", deleted)

	return &DeleteAllOutput{
		Deleted: deleted,
	}, nil
}

func (r *fileRepository) path(name string) (string, error) {
	key := Key(name)
	if key == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyName, name)
	}
	return filepath.Join(r.dir, key+FileExtension), nil
}
