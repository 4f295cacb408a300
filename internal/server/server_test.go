package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-rag/internal/config"
	"lesson-rag/internal/models"
)

type call struct {
	key  models.LessonKey
	text string
}

type countingService struct {
	queries  []call
	rewrites []call
	result   string
	err      error
	panicMsg string
}

func (s *countingService) Query(_ context.Context, key models.LessonKey, q string) (string, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.queries = append(s.queries, call{key, q})
	return s.result, s.err
}

func (s *countingService) Rewrite(_ context.Context, key models.LessonKey, style string) (string, error) {
	s.rewrites = append(s.rewrites, call{key, style})
	return s.result, s.err
}

func newTestServer(svc Service) http.Handler {
	return New(&config.ServerConfig{Mode: "test"}, svc).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	out := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHello(t *testing.T) {
	rec, body := do(t, newTestServer(&countingService{}), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"result": "Hello, World!"}, body)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestAsk(t *testing.T) {
	svc := &countingService{result: "A stack is LIFO."}
	rec, body := do(t, newTestServer(svc), http.MethodPost, "/ask",
		`{"query":"what is a stack?","id":1,"course":"dsa"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"result": "A stack is LIFO."}, body)
	require.Len(t, svc.queries, 1)
	assert.Equal(t, call{models.LessonKey{Course: "dsa", ID: 1}, "what is a stack?"}, svc.queries[0])
}

func TestAsk_EmptyQueryAccepted(t *testing.T) {
	svc := &countingService{result: "ok"}
	rec, _ := do(t, newTestServer(svc), http.MethodPost, "/ask", `{"query":"","id":1,"course":"dsa"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.queries, 1)
	assert.Equal(t, "", svc.queries[0].text)
}

func TestRewrite(t *testing.T) {
	svc := &countingService{result: "Cheerful lesson!"}
	rec, body := do(t, newTestServer(svc), http.MethodPost, "/rewrite-pdf-emotion",
		`{"system_prompt":"cheerful","id":2,"course":"dsa"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"rewrittenText": "Cheerful lesson!"}, body)
	require.Len(t, svc.rewrites, 1)
	assert.Equal(t, call{models.LessonKey{Course: "dsa", ID: 2}, "cheerful"}, svc.rewrites[0])
}

func TestMalformedBodiesNeverReachService(t *testing.T) {
	cases := []struct {
		name, path, body string
	}{
		{"missing query", "/ask", `{"id":1,"course":"dsa"}`},
		{"string id", "/ask", `{"query":"q","id":"one","course":"dsa"}`},
		{"missing course", "/ask", `{"query":"q","id":1}`},
		{"not json", "/ask", `query=q`},
		{"missing style", "/rewrite-pdf-emotion", `{"id":2,"course":"dsa"}`},
		{"float id", "/rewrite-pdf-emotion", `{"system_prompt":"x","id":1.5,"course":"dsa"}`},
	}

	svc := &countingService{result: "unused"}
	h := newTestServer(svc)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotEmpty(t, body["detail"])
			assert.Len(t, body, 1)
		})
	}
	assert.Empty(t, svc.queries)
	assert.Empty(t, svc.rewrites)
}

func TestServiceErrorsAreFlat(t *testing.T) {
	for _, err := range []error{
		models.Errorf(models.ErrNotFound, "index not found at: data/vectorstores/dsa/42"),
		models.Errorf(models.ErrLoad, "corrupt index"),
		models.Errorf(models.ErrGeneration, "upstream said no"),
	} {
		svc := &countingService{err: err}
		rec, body := do(t, newTestServer(svc), http.MethodPost, "/ask", `{"query":"q","id":42,"course":"dsa"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]string{"detail": err.Error()}, body)
	}
}

func TestPanicBecomesDetail(t *testing.T) {
	svc := &countingService{panicMsg: "boom"}
	rec, body := do(t, newTestServer(svc), http.MethodPost, "/ask", `{"query":"q","id":1,"course":"dsa"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"detail": "boom"}, body)
}

func TestRequestIDEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(&countingService{}).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
