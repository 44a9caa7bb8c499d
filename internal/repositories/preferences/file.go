package preferences

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KirkDiggler/dicegraph/internal/common/atomicfile"
	"github.com/KirkDiggler/dicegraph/internal/models"
)

// Config holds configuration for the file-backed preferences repository
type Config struct {
	// Path of the preferences file
	Path string
}

type fileRepository struct {
	path string
}

// NewFile creates a preferences repository stored in a single JSON file
func NewFile(cfg *Config) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("preferences path cannot be empty")
	}

	return &fileRepository{
		path: cfg.Path,
	}, nil
}

// LoadPreferences reads the preferences file. A missing file yields the defaults.
// Non-string JSON values (true, 6, 0.05) are accepted and kept in their text form.
func (r *fileRepository) LoadPreferences(ctx context.Context) (*models.Preferences, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewPreferences(nil), nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var raw map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: preferences: %v", models.ErrCorruptData, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case string:
			values[k] = tv
		case bool:
			values[k] = strconv.FormatBool(tv)
		case json.Number:
			values[k] = tv.String()
		case nil:
			values[k] = ""
		default:
			return nil, fmt.Errorf("%w: preference %q has unsupported type %T", models.ErrCorruptData, k, v)
		}
	}

	return models.NewPreferences(values), nil
}

// SavePreferences writes all preferences as a JSON object of strings
func (r *fileRepository) SavePreferences(ctx context.Context, input *SavePreferencesInput) error {
	if input == nil || input.Preferences == nil {
		return errors.New("input and preferences cannot be nil")
	}

	data, err := json.MarshalIndent(input.Preferences.Values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	if err := atomicfile.WriteFile(r.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}
