package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"surveylab/internal/model"
)

// QuestionFile is the outcome of loading one file from the pool
type QuestionFile struct {
	Name     string
	Question model.Question
	Err      error // nil when the file parsed and validated
}

// QuestionRepo reads the question pool from a directory of JSON files
type QuestionRepo interface {
	// List returns every valid question. Malformed files are logged and skipped.
	List(ctx context.Context) ([]model.Question, error)
	// Scan returns every .json file in the pool with its load result
	Scan(ctx context.Context) ([]QuestionFile, error)
	Dir() string
}

type questionRepo struct {
	dir    string
	logger *slog.Logger
}

// NewQuestionRepo creates a question repository rooted at dir
func NewQuestionRepo(dir string, logger *slog.Logger) QuestionRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &questionRepo{dir: dir, logger: logger}
}

func (r *questionRepo) Dir() string {
	return r.dir
}

func (r *questionRepo) List(ctx context.Context) ([]model.Question, error) {
	files, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(files))
	for _, f := range files {
		if f.Err != nil {
			r.logger.Warn("skipping question file", "file", f.Name, "error", f.Err)
			continue
		}
		questions = append(questions, f.Question)
	}
	return questions, nil
}

func (r *questionRepo) Scan(ctx context.Context) ([]QuestionFile, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read question pool %s: %w", r.dir, err)
	}

	var files []QuestionFile
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		q, err := r.load(e.Name())
		files = append(files, QuestionFile{Name: e.Name(), Question: q, Err: err})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (r *questionRepo) load(name string) (model.Question, error) {
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return model.Question{}, err
	}

	var q model.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return model.Question{}, fmt.Errorf("decode: %w", err)
	}
	if err := q.Validate(); err != nil {
		return model.Question{}, err
	}
	q.Source = name
	return q, nil
}
