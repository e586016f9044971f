package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"surveylab/internal/model"
)

// ResponseFileTimeFormat is the timestamp prefix of every response file name
const ResponseFileTimeFormat = "2006-01-02_15-04-05"

// ResponseRepo appends response records as individual JSON files
type ResponseRepo interface {
	// Save writes rec to a new file named after at and ip and returns its name.
	// Existing files are never overwritten.
	Save(ctx context.Context, rec model.Response, at time.Time, ip string) (string, error)
	Load(ctx context.Context, name string) (model.Response, error)
	Count(ctx context.Context) (int, error)
}

type responseRepo struct {
	dir string
}

// NewResponseRepo creates a response repository writing into dir
func NewResponseRepo(dir string) ResponseRepo {
	return &responseRepo{dir: dir}
}

func (r *responseRepo) Save(ctx context.Context, rec model.Response, at time.Time, ip string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode response: %w", err)
	}

	base := at.Format(ResponseFileTimeFormat)
	if s := sanitizeAddr(ip); s != "" {
		base += "_" + s
	}

	name := base + ".json"
	f, err := os.OpenFile(filepath.Join(r.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		// same second, same client
		name = base + "_" + uuid.New().String()[:8] + ".json"
		f, err = os.OpenFile(filepath.Join(r.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("create response file: %w", err)
	}

	// a partial record must not be left behind for Count and Load
	if _, err := writeRecord(f, data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write response file %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close response file %s: %w", name, err)
	}
	return name, nil
}

// writeRecord is replaced in tests to simulate a full disk
var writeRecord = func(f *os.File, data []byte) (int, error) {
	return f.Write(data)
}

func (r *responseRepo) Load(ctx context.Context, name string) (model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid response name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return nil, err
	}
	var rec model.Response
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode response %s: %w", name, err)
	}
	return rec, nil
}

func (r *responseRepo) Count(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			n++
		}
	}
	return n, ctx.Err()
}

// sanitizeAddr keeps an address usable as part of a file name on every platform
func sanitizeAddr(addr string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '.':
			return r
		case r == ':' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, addr)
}
