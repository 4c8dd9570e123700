package app

import (
	"ap_quiz_backend/internal/config"
	"ap_quiz_backend/internal/repository"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *repository.MemoryResultRepository) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: "test"},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			ExpireTime: time.Hour,
			CookieName: "quiz_session",
			Store:      "memory",
		},
		Results: config.ResultsConfig{Backend: "memory"},
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Events:  config.EventsConfig{Exchange: "quiz-events"},
	}

	results := repository.NewMemoryResultRepository()
	a := NewAppWithRepositories(cfg, results, repository.NewMemorySessionRepository())
	t.Cleanup(func() { a.Close(context.Background()) })
	return a, results
}

func TestApp_CloseStopsSessionJanitor(t *testing.T) {
	a, _ := newTestApp(t)
	require.NotNil(t, a.janitor)
	_, ok := a.janitor.(*repository.MemorySessionRepository)
	assert.True(t, ok)

	a.Close(context.Background())
	assert.NoError(t, a.janitor.Close())
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	a, _ := newTestApp(t)

	for _, path := range []string{"/", "/api/health", "/api/results/summary", "/metrics", "/swagger/doc.json", "/worksheet"} {
		w := serve(a, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := serve(a, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

var hiddenQuestion = regexp.MustCompile(`name="question(\d)" value="([^"]*)"`)

func TestQuizFlow(t *testing.T) {
	a, results := newTestApp(t)

	form := serve(a, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, form.Code)
	cookies := form.Result().Cookies()
	require.NotEmpty(t, cookies)

	values := url.Values{"name": {"Ada"}}
	for _, m := range hiddenQuestion.FindAllStringSubmatch(form.Body.String(), -1) {
		values.Set("question"+m[1], m[2])
		values.Set("answer"+m[1], "not a number")
	}

	req := httptest.NewRequest(http.MethodPost, "/anyname", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := serve(a, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	records, err := results.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 5)

	w = serve(a, httptest.NewRequest(http.MethodGet, "/results", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Correct: 0 | Incorrect: 5")

	w = serve(a, httptest.NewRequest(http.MethodGet, "/uploads/barplot.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
