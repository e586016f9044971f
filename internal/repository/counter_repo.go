package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"surveylab/internal/model"
)

const lockRetryDelay = 10 * time.Millisecond

// CounterRepo persists one tally as a JSON object of category -> count.
// The file lock only excludes other processes; callers in the same process
// must serialize their own calls.
type CounterRepo interface {
	// Load returns the stored tally. A missing or corrupt file yields zero
	// counts for every known category.
	Load(ctx context.Context) (model.Tally, error)
	// Update runs fn on the current tally and writes the result back while
	// holding the file lock. Nothing is written if fn returns an error.
	Update(ctx context.Context, fn func(model.Tally) error) (model.Tally, error)
	Path() string
}

type counterRepo struct {
	path       string
	categories []string
	lock       *flock.Flock
	logger     *slog.Logger
}

// NewCounterRepo creates a counter stored at path with the given categories
func NewCounterRepo(path string, categories []string, logger *slog.Logger) CounterRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &counterRepo{
		path:       path,
		categories: categories,
		lock:       flock.New(path + ".lock"),
		logger:     logger,
	}
}

func (r *counterRepo) Path() string {
	return r.path
}

func (r *counterRepo) Load(ctx context.Context) (model.Tally, error) {
	if err := r.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer r.lock.Unlock()

	return r.read()
}

func (r *counterRepo) Update(ctx context.Context, fn func(model.Tally) error) (model.Tally, error) {
	if err := r.acquire(ctx, true); err != nil {
		return nil, err
	}
	defer r.lock.Unlock()

	tally, err := r.read()
	if err != nil {
		return nil, err
	}
	if err := fn(tally); err != nil {
		return nil, err
	}
	if err := r.write(tally); err != nil {
		return nil, err
	}
	return tally, nil
}

func (r *counterRepo) acquire(ctx context.Context, exclusive bool) error {
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = r.lock.TryLockContext(ctx, lockRetryDelay)
	} else {
		ok, err = r.lock.TryRLockContext(ctx, lockRetryDelay)
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", r.path, err)
	}
	if !ok {
		return fmt.Errorf("lock %s: not acquired", r.path)
	}
	return nil
}

// read must be called with the lock held
func (r *counterRepo) read() (model.Tally, error) {
	tally := r.zero()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tally, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read counter %s: %w", r.path, err)
	}

	var stored map[string]int
	if err := json.Unmarshal(data, &stored); err != nil {
		r.logger.Warn("counter file corrupt, resetting", "path", r.path, "error", err)
		return tally, nil
	}
	for _, c := range r.categories {
		tally[c] = stored[c]
	}
	return tally, nil
}

// write replaces the counter file atomically
func (r *counterRepo) write(tally model.Tally) error {
	data, err := json.Marshal(tally)
	if err != nil {
		return fmt.Errorf("encode counter: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write counter %s: %w", r.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write counter %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write counter %s: %w", r.path, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace counter %s: %w", r.path, err)
	}
	return nil
}

func (r *counterRepo) zero() model.Tally {
	tally := make(model.Tally, len(r.categories))
	for _, c := range r.categories {
		tally[c] = 0
	}
	return tally
}
