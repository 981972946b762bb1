package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-radar/internal/ai"
	"github.com/spigell/resume-radar/internal/analysis"
	"github.com/spigell/resume-radar/internal/naukri"
	"github.com/spigell/resume-radar/internal/profile"
	"github.com/spigell/resume-radar/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	req analysis.Request
	res *analysis.Result
	err error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req analysis.Request) (*analysis.Result, error) {
	f.req = req
	return f.res, f.err
}

type fakeSearcher struct {
	query naukri.SearchQuery
	jobs  []profile.JobListing
}

func (f *fakeSearcher) Search(_ context.Context, q naukri.SearchQuery) []profile.JobListing {
	f.query = q
	return f.jobs
}

type fakeCoach struct {
	chat    ai.ChatContext
	message string
	err     error
}

func (f *fakeCoach) Reply(_ context.Context, chat ai.ChatContext, message string) (string, error) {
	f.chat = chat
	f.message = message
	if f.err != nil {
		return "", f.err
	}
	return "Go get it, " + chat.Name, nil
}

func newTestServer(deps Deps) *Server {
	if deps.Analyzer == nil {
		deps.Analyzer = &fakeAnalyzer{}
	}
	if deps.Jobs == nil {
		deps.Jobs = &fakeSearcher{jobs: []profile.JobListing{}}
	}
	return New(Config{}, deps)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(Deps{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyze(t *testing.T) {
	p := &profile.CandidateProfile{PredictedRole: "Java Developer"}
	p.Normalize()
	p.Jobs = []profile.JobListing{}
	analyzer := &fakeAnalyzer{res: &analysis.Result{Profile: p}}

	req := uploadRequest(t, "file", []byte("%PDF-1.4"))
	req.Header.Set(UserIDHeader, " google-1 ")

	rec := do(t, newTestServer(Deps{Analyzer: analyzer}), req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, []byte("%PDF-1.4"), analyzer.req.Document)
	require.Equal(t, "resume.pdf", analyzer.req.Filename)
	require.Equal(t, "google-1", analyzer.req.UserID)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Java Developer", body["predicted_role"])
	require.Equal(t, []any{}, body["jobs"])
	require.NotContains(t, body, "Stages")
}

func TestAnalyzeFailure(t *testing.T) {
	cause := &analysis.FailedError{Stage: analysis.StageInfer, Err: &ai.OracleError{Stage: ai.StageGenerate, Err: errors.New("quota exceeded")}}
	analyzer := &fakeAnalyzer{err: cause}

	rec := do(t, newTestServer(Deps{Analyzer: analyzer}), uploadRequest(t, "file", []byte("x")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["detail"], "quota exceeded")
}

func TestAnalyzeRequiresFile(t *testing.T) {
	analyzer := &fakeAnalyzer{}

	rec := do(t, newTestServer(Deps{Analyzer: analyzer}), uploadRequest(t, "resume", []byte("x")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "detail")
	require.Nil(t, analyzer.req.Document)
}

func TestSearchJobs(t *testing.T) {
	searcher := &fakeSearcher{jobs: []profile.JobListing{{Title: "Go Developer", MatchScore: 90}}}
	s := newTestServer(Deps{Jobs: searcher})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/jobs/search?keyword=Go+Developer&location=Pune&skills=Go,+Kubernetes,,", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, naukri.SearchQuery{
		Keyword:    "Go Developer",
		Location:   "Pune",
		Experience: "0",
		Skills:     []string{"Go", "Kubernetes"},
	}, searcher.query)

	var body struct {
		Jobs []profile.JobListing `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Jobs, 1)
	require.Equal(t, 90, body.Jobs[0].MatchScore)
}

func TestSearchJobsValidation(t *testing.T) {
	rec := do(t, newTestServer(Deps{}), httptest.NewRequest(http.MethodGet, "/api/jobs/search?keyword=Go", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchJobsEmpty(t *testing.T) {
	rec := do(t, newTestServer(Deps{}), httptest.NewRequest(http.MethodGet, "/api/jobs/search?keyword=Go&location=Pune&experience=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"jobs": []}`, rec.Body.String())
}

func TestGetProfile(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Put(context.Background(), store.Record{UserID: "google-1", Profile: json.RawMessage(`{"predicted_role":"SRE"}`)}))
	s := newTestServer(Deps{Profiles: mem})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/profile/google-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"predicted_role":"SRE"}`, rec.Body.String())

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/profile/google-2", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

type recordReader store.Record

func (r recordReader) Get(_ context.Context, userID string) (store.Record, error) {
	if userID != r.UserID {
		return store.Record{}, store.ErrNotFound
	}
	return store.Record(r), nil
}

func TestGetProfileWithoutPayload(t *testing.T) {
	s := newTestServer(Deps{Profiles: recordReader{UserID: "google-1"}})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/profile/google-1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), store.ErrNotFound.Error())
}

func TestChat(t *testing.T) {
	coach := &fakeCoach{}
	s := newTestServer(Deps{Coach: coach})

	body := `{"message": "I'm nervous", "context": {"name": "Meera", "role": "Data Engineer", "skills": ["Spark"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"response": "Go get it, Meera"}`, rec.Body.String())
	require.Equal(t, "I'm nervous", coach.message)
	require.Equal(t, []string{"Spark"}, coach.chat.Skills)
}

func TestChatErrors(t *testing.T) {
	s := newTestServer(Deps{Coach: &fakeCoach{err: errors.New("model overloaded")}})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"context": {}}`))
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, http.StatusBadRequest, do(t, s, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, s, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "model overloaded")
}

func TestChatDisabledWithoutCoach(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "hi"}`))
	require.Equal(t, http.StatusNotFound, do(t, newTestServer(Deps{}), req).Code)
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	rec := do(t, newTestServer(Deps{}), req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), UserIDHeader)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, Deps{Analyzer: &fakeAnalyzer{}, Jobs: &fakeSearcher{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	require.NoError(t, <-done)
}
