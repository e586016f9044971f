package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveylab/internal/model"
)

func writeJSONFile(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func sampleQuestion(id string) model.Question {
	return model.Question{
		ID:   id,
		Text: "passage " + id,
		Q1_1: "a", Q1_2: "b", Q1_3: "c", Q1_4: "d", Q1_5: "e",
		Q2: "f", Q3: "g", Q4: "h", Q5: "i",
	}
}

func TestQuestionRepo_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeJSONFile(t, filepath.Join(dir, "a.json"), sampleQuestion("00000001"))
	writeJSONFile(t, filepath.Join(dir, "b.json"), sampleQuestion("00000010"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	writeJSONFile(t, filepath.Join(dir, "badid.json"), sampleQuestion("2"))
	writeJSONFile(t, filepath.Join(dir, "partial.json"), map[string]string{"id": "00000100", "text": "x"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	var logs bytes.Buffer
	repo := NewQuestionRepo(dir, slog.New(slog.NewTextHandler(&logs, nil)))

	questions, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "00000001", questions[0].ID)
	assert.Equal(t, "a.json", questions[0].Source)
	assert.Equal(t, "00000010", questions[1].ID)

	assert.Contains(t, logs.String(), "broken.json")
	assert.Contains(t, logs.String(), "badid.json")
	assert.Contains(t, logs.String(), "partial.json")

	files, err := repo.Scan(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 5)
}

func TestQuestionRepo_EmptyAndMissingDir(t *testing.T) {
	repo := NewQuestionRepo(t.TempDir(), nil)
	questions, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, questions)

	repo = NewQuestionRepo(filepath.Join(t.TempDir(), "absent"), nil)
	_, err = repo.List(context.Background())
	assert.Error(t, err)
}

func TestResponseRepo_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	repo := NewResponseRepo(dir)
	at := time.Date(2024, 3, 31, 13, 45, 30, 0, time.Local)

	rec := model.Response{"q1_1": "a", "id": "00000001", "ip": "10.0.0.1", "timestamp": at.Format(time.RFC3339)}
	name, err := repo.Save(context.Background(), rec, at, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31_13-45-30_10.0.0.1.json", name)

	got, err := repo.Load(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResponseRepo_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	repo := NewResponseRepo(dir)
	at := time.Date(2024, 3, 31, 13, 45, 30, 0, time.UTC)

	first, err := repo.Save(context.Background(), model.Response{"n": "1"}, at, "::1")
	require.NoError(t, err)
	second, err := repo.Save(context.Background(), model.Response{"n": "2"}, at, "::1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "2024-03-31_13-45-30_--1.json", first)

	a, err := repo.Load(context.Background(), first)
	require.NoError(t, err)
	b, err := repo.Load(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "1", a["n"])
	assert.Equal(t, "2", b["n"])
}

func TestResponseRepo_UnwritableDirFails(t *testing.T) {
	repo := NewResponseRepo(filepath.Join(t.TempDir(), "missing"))
	_, err := repo.Save(context.Background(), model.Response{"a": "b"}, time.Now(), "1.2.3.4")
	assert.Error(t, err)
}

func TestResponseRepo_FailedWriteLeavesNoFile(t *testing.T) {
	orig := writeRecord
	t.Cleanup(func() { writeRecord = orig })
	writeRecord = func(f *os.File, data []byte) (int, error) {
		n, _ := f.Write(data[:len(data)/2])
		return n, errors.New("no space left on device")
	}

	dir := t.TempDir()
	repo := NewResponseRepo(dir)
	_, err := repo.Save(context.Background(), model.Response{"q2": "a long answer"}, time.Now(), "10.0.0.1")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestResponseRepo_LoadRejectsPaths(t *testing.T) {
	repo := NewResponseRepo(t.TempDir())
	_, err := repo.Load(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestCounterRepo_MissingFileStartsAtZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	repo := NewCounterRepo(path, model.YesNoCategories(), nil)

	tally, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Tally{"yes": 0, "no": 0}, tally)

	tally, err = repo.Update(context.Background(), func(t model.Tally) error {
		t["yes"]++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.Tally{"yes": 1, "no": 0}, tally)

	var stored map[string]int
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, map[string]int{"yes": 1, "no": 0}, stored)
}

func TestCounterRepo_CorruptFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "star_feedback.json")
	require.NoError(t, os.WriteFile(path, []byte("[[["), 0o644))

	var logs bytes.Buffer
	repo := NewCounterRepo(path, model.StarCategories(), slog.New(slog.NewTextHandler(&logs, nil)))

	tally, err := repo.Update(context.Background(), func(t model.Tally) error {
		t["4"]++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, model.Tally{"1": 0, "2": 0, "3": 0, "4": 1, "5": 0}, tally)
	assert.Contains(t, logs.String(), "corrupt")
}

func TestCounterRepo_FillsMissingCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"yes": 7, "maybe": 3}`), 0o644))

	tally, err := NewCounterRepo(path, model.YesNoCategories(), nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Tally{"yes": 7, "no": 0}, tally)
}

func TestCounterRepo_UpdateErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	repo := NewCounterRepo(path, model.YesNoCategories(), nil)

	rejected := errors.New("rejected")
	_, err := repo.Update(context.Background(), func(model.Tally) error { return rejected })
	assert.ErrorIs(t, err, rejected)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCounterRepo_WriteFailurePropagates(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "feedback.json")
	repo := NewCounterRepo(path, model.YesNoCategories(), nil)

	// take the lock file first so only the data write fails
	_, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err = repo.Update(context.Background(), func(t model.Tally) error {
		t["no"]++
		return nil
	})
	assert.Error(t, err)
}
