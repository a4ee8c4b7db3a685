package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

const stateFileMode os.FileMode = 0o644

type fileLastMealRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileLastMealRepository stores the last meal as {"lastMealPosted": ...}
// in a JSON file. The file is created with a null value when missing.
func NewFileLastMealRepository(path string) (domain.LastMealRepository, error) {
	r := &fileLastMealRepository{path: path}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Info("creating state file", slog.String("path", path))
		if err := r.write(domain.PersistedState{}); err != nil {
			return nil, fmt.Errorf("failed to create state file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat state file: %w", err)
	}

	return r, nil
}

func (r *fileLastMealRepository) GetLastMeal(ctx context.Context) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state domain.PersistedState
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStateData, err)
	}

	return state.LastMealPosted, nil
}

func (r *fileLastMealRepository) SaveLastMeal(ctx context.Context, meal string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.write(domain.PersistedState{LastMealPosted: &meal})
}

// write replaces the whole file through a temp file and rename.
func (r *fileLastMealRepository) write(state domain.PersistedState) error {
	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	f, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(stateFileMode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, r.path)
}
