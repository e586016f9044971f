package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveylab/internal/config"
	"surveylab/internal/llm"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Storage.QuestionsDir = filepath.Join(root, "json")
	cfg.Storage.ResultsDir = filepath.Join(root, "data", "post")
	cfg.Storage.FeedbackFile = filepath.Join(root, "data", "counters", "feedback.json")
	cfg.Storage.StarFeedbackFile = filepath.Join(root, "data", "counters", "star_feedback.json")
	return cfg
}

func TestNew_PreparesStorage(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a.Router())

	assert.DirExists(t, cfg.Storage.ResultsDir)
	assert.FileExists(t, cfg.Storage.FeedbackFile)
	assert.FileExists(t, cfg.Storage.StarFeedbackFile)

	totals, err := a.Feedback.StarTotals(context.Background())
	require.NoError(t, err)
	assert.Len(t, totals, 5)
}

func TestNew_ResetsCorruptCounter(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Storage.FeedbackFile), 0o755))
	require.NoError(t, os.WriteFile(cfg.Storage.FeedbackFile, []byte("{not json"), 0o644))

	a, err := NewWithGenerator(context.Background(), cfg, llm.Disabled{}, nil)
	require.NoError(t, err)

	totals, err := a.Feedback.YesNoTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, totals["yes"])
	assert.Equal(t, 0, totals["no"])
}

func TestRouter_TextDisabledWithoutKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.APIKey = ""

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sample-text", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
