package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/modernize"
	"github.com/drpaneas/repolens/internal/profile"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	err    error
	owner  string
	repo   string
	useLLM bool
}

func (f *fakeAnalyzer) Analyze(_ context.Context, owner, repo string, useLLM bool) (*analyzer.Report, error) {
	f.owner, f.repo, f.useLLM = owner, repo, useLLM
	if f.err != nil {
		return nil, f.err
	}
	return &analyzer.Report{RepoInfo: ghcrawl.RepoInfo{Owner: owner, Name: repo, FullName: owner + "/" + repo}}, nil
}

func (f *fakeAnalyzer) Narrate(_ context.Context, r *analyzer.Report) string {
	return "narrative for " + r.FullName
}

type fakeAdvisor struct{}

func (fakeAdvisor) Analyze(_ context.Context, owner, repo string) *modernize.Report {
	return &modernize.Report{
		Found:           true,
		Packages:        []string{"flask"},
		Recommendations: []modernize.Recommendation{{Package: "flask", Suggestion: modernize.Suggest("flask")}},
		Narrative:       "modernize " + owner + "/" + repo,
	}
}

type fakeProfiles struct {
	err      error
	username string
}

func (f *fakeProfiles) Analyze(_ context.Context, username string) (*profile.Report, error) {
	f.username = username
	if f.err != nil {
		return nil, f.err
	}
	return &profile.Report{UserProfile: ghcrawl.UserProfile{Login: username}}, nil
}

func (f *fakeProfiles) Narrate(_ context.Context, r *profile.Report) string {
	return "## Strengths\nConsistent work by " + r.Login + ".\n\n## Career Advice\nShip more."
}

func newTestServer(t *testing.T, a RepoAnalyzer, burst int) http.Handler {
	t.Helper()
	return newServer(t, a, &fakeProfiles{}, burst)
}

func newServer(t *testing.T, a RepoAnalyzer, p ProfileAnalyzer, burst int) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, a, fakeAdvisor{}, p, Options{RateLimit: 1, RateBurst: burst, CORSOrigins: []string{"*"}}).Handler()
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:12345"
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 5)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAnalyze(t *testing.T) {
	a := &fakeAnalyzer{}
	h := newTestServer(t, a, 5)

	w := post(h, "/github/analyze", `{"link":"https://github.com/octo/lens","use_llm_scoring":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "octo", a.owner)
	assert.Equal(t, "lens", a.repo)
	assert.True(t, a.useLLM)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "octo/lens", body["full_name"])
	assert.Equal(t, "narrative for octo/lens", body["narrative"])
}

func TestAnalyze_BadRequests(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 10)
	for _, body := range []string{`{}`, `not json`, `{"link":"github.com/octo"}`} {
		t.Run(body, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, post(h, "/github/analyze", body).Code)
		})
	}
}

func TestAnalyze_RepoUnavailable(t *testing.T) {
	a := &fakeAnalyzer{err: fmt.Errorf("%w: octo/gone", analyzer.ErrRepoUnavailable)}
	h := newTestServer(t, a, 5)
	assert.Equal(t, http.StatusNotFound, post(h, "/github/analyze", `{"link":"github.com/octo/gone"}`).Code)
}

func TestModernize(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 5)
	w := post(h, "/github/modernize", `{"link":"github.com/octo/lens"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var r modernize.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.True(t, r.Found)
	assert.Equal(t, "modernize octo/lens", r.Narrative)
	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, "flask", r.Recommendations[0].Package)
}

func TestRequest2(t *testing.T) {
	a := &fakeAnalyzer{}
	h := newTestServer(t, a, 5)
	w := post(h, "/github/request2", `{"link":"github.com/octo/lens"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, a.useLLM)
	assert.JSONEq(t, `{"ai_report":"narrative for octo/lens","reco":"modernize octo/lens"}`, w.Body.String())
}

func TestProfile(t *testing.T) {
	p := &fakeProfiles{}
	h := newServer(t, &fakeAnalyzer{}, p, 5)
	w := post(h, "/github/profile", `{"link":"https://github.com/octo"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "octo", p.username)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "octo", body["username"])
	assert.Contains(t, body["ai_analysis"], "Consistent work by octo.")
}

func TestProfile_Errors(t *testing.T) {
	h := newServer(t, &fakeAnalyzer{}, &fakeProfiles{}, 10)
	assert.Equal(t, http.StatusBadRequest, post(h, "/github/profile", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "/github/profile", `{"link":"https://gitlab.com/octo"}`).Code)

	gone := &fakeProfiles{err: fmt.Errorf("%w: ghost", profile.ErrProfileUnavailable)}
	h = newServer(t, &fakeAnalyzer{}, gone, 5)
	assert.Equal(t, http.StatusNotFound, post(h, "/github/profile", `{"link":"github.com/ghost"}`).Code)
}

func TestRequest_ReturnsSections(t *testing.T) {
	h := newServer(t, &fakeAnalyzer{}, &fakeProfiles{}, 5)
	w := post(h, "/github/request", `{"link":"github.com/octo"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"Strengths": "## Strengths\nConsistent work by octo.",
		"Career Advice": "## Career Advice\nShip more."
	}`, w.Body.String())
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 2)
	var codes []int
	for range 4 {
		codes = append(codes, post(h, "/github/modernize", `{"link":"github.com/octo/lens"}`).Code)
	}
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 1)

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/t", nil)
		req.RemoteAddr = ip
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, ip)
	}
}

func TestHealthzIsNotRateLimited(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 1)
	for range 3 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, &fakeAnalyzer{}, 5)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
