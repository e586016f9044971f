package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveylab/internal/llm"
	"surveylab/internal/model"
	"surveylab/internal/repository"
	"surveylab/internal/service"
)

func newTestServer(t *testing.T, ids ...string) *httptest.Server {
	t.Helper()
	questions := t.TempDir()
	for _, id := range ids {
		q := model.Question{
			ID: id, Text: "passage " + id,
			Q1_1: "a", Q1_2: "b", Q1_3: "c", Q1_4: "d", Q1_5: "e",
			Q2: "f", Q3: "g", Q4: "h", Q5: "i",
		}
		data, err := json.Marshal(q)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(questions, id+".json"), data, 0o644))
	}
	store := t.TempDir()

	feedback := service.NewFeedbackService(
		repository.NewCounterRepo(filepath.Join(store, "feedback.json"), model.YesNoCategories(), nil),
		repository.NewCounterRepo(filepath.Join(store, "star_feedback.json"), model.StarCategories(), nil),
	)
	require.NoError(t, feedback.Init(context.Background()))
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	router := NewRouter(&Container{
		PageService:     service.NewPageService(repository.NewQuestionRepo(questions, nil)),
		ResponseService: service.NewResponseService(repository.NewResponseRepo(store), logger),
		FeedbackService: feedback,
		TextService:     service.NewTextService(llm.NewMock(llm.MockResponse{Text: "gist"}), time.Second),
		CORSOrigins:     []string{"*"},
		Logger:          logger,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRouter_RootRedirects(t *testing.T) {
	srv := newTestServer(t)

	resp, err := noRedirect().Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/page", resp.Header.Get("Location"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/post")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// walks a one-question-per-slot pool until the completion page
func TestRouter_FullWalkthrough(t *testing.T) {
	ids := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		ids = append(ids, model.Mask(1<<i).String())
	}
	srv := newTestServer(t, ids...)
	client := noRedirect()

	page := model.StartMask
	seen := map[string]bool{}
	for step := 0; step < 8; step++ {
		resp, err := client.Get(srv.URL + "/page?page=" + page)
		require.NoError(t, err)
		var body bytes.Buffer
		_, err = body.ReadFrom(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		html := body.String()
		start := strings.Index(html, "<title>") + len("<title>")
		id := html[start : start+model.MaskWidth]
		require.False(t, seen[id], "question %s served twice", id)
		seen[id] = true

		resp, err = client.PostForm(srv.URL+"/post", url.Values{"id": {id}, "page": {page}})
		require.NoError(t, err)
		var res model.SubmitResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		page = res.NextPage
	}
	assert.Equal(t, model.TerminalMask, page)

	resp, err := client.Get(srv.URL + "/page?page=" + page)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "Survey complete")
}

func TestRouter_FeedbackAndText(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/star-feedback", "application/json", strings.NewReader(`{"rating":4}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/star-feedback")
	require.NoError(t, err)
	var stars map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stars))
	resp.Body.Close()
	assert.Equal(t, 1, stars["4"])

	resp, err = http.Post(srv.URL+"/api/summarize", "application/json", strings.NewReader(`{"data":{"text":"passage"}}`))
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, "gist", out["result"])
}

func TestRouter_StaticAssets(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/static/js/survey.js")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
