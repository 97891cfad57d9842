// internal/server/server_test.go
package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardgen/internal/common/logger"
	"cardgen/internal/models"
	"cardgen/internal/server"
)

// recordingFunction returns a canned response and keeps every event it saw.
type recordingFunction struct {
	mu     sync.Mutex
	events []models.Request
	ids    []string
	resp   models.Response
	panic  bool
}

func (f *recordingFunction) Handle(ctx context.Context, req models.Request) models.Response {
	if f.panic {
		panic("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, req)
	f.ids = append(f.ids, logger.RequestIDFromContext(ctx))
	return f.resp
}

func newTestServer(t *testing.T, fn server.Function, maxBody int64) *server.Server {
	t.Helper()
	return server.New(server.Config{Address: ":0", MaxBodyBytes: maxBody}, fn, nil, logger.NewTestLogger(t))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func cardResponse() models.Response {
	resp, _ := models.NewJSONResponse(http.StatusOK, models.ProductCard{Title: "Кружка ☕", Description: "d"})
	return resp
}

// ─── Health ────────────────────────────────────────────────────────────

func TestServer_HealthAndReady(t *testing.T) {
	s := newTestServer(t, &recordingFunction{}, 0)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t, &recordingFunction{}, 0)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// ─── Invocation ────────────────────────────────────────────────────────

func TestServer_CopiesEventAndResponse(t *testing.T) {
	fn := &recordingFunction{resp: cardResponse()}
	s := newTestServer(t, fn, 0)

	for _, path := range []string{"/", "/generate-product"} {
		rec := do(t, s, http.MethodPost, path, `{"productName":"Кружка","productCategory":"Посуда"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

		var card models.ProductCard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
		assert.Equal(t, "Кружка ☕", card.Title)
	}

	require.Len(t, fn.events, 2)
	assert.Equal(t, http.MethodPost, fn.events[0].HTTPMethod)
	require.NotNil(t, fn.events[0].Body)
	assert.Equal(t, `{"productName":"Кружка","productCategory":"Посуда"}`, *fn.events[0].Body)
	assert.NotEmpty(t, fn.ids[0])
}

func TestServer_AnyMethodReachesFunction(t *testing.T) {
	fn := &recordingFunction{resp: models.Response{StatusCode: http.StatusMethodNotAllowed, Headers: models.JSONHeaders(), Body: `{"error":"Method not allowed"}`}}
	s := newTestServer(t, fn, 0)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		rec := do(t, s, method, "/", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
	}

	require.Len(t, fn.events, 4)
	for _, ev := range fn.events {
		assert.Nil(t, ev.Body)
	}
}

func TestServer_PreflightHasNoBody(t *testing.T) {
	fn := &recordingFunction{resp: models.Response{StatusCode: http.StatusOK, Headers: models.PreflightHeaders()}}
	s := newTestServer(t, fn, 0)

	rec := do(t, s, http.MethodOptions, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestServer_BodyTooLarge(t *testing.T) {
	fn := &recordingFunction{resp: cardResponse()}
	s := newTestServer(t, fn, 16)

	rec := do(t, s, http.MethodPost, "/", strings.Repeat("x", 64))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"request body too large"}`, rec.Body.String())
	assert.Empty(t, fn.events)
}

func TestServer_RecoversPanics(t *testing.T) {
	s := newTestServer(t, &recordingFunction{panic: true}, 0)

	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		rec = do(t, s, http.MethodPost, "/", "{}")
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_HTTPServer(t *testing.T) {
	s := server.New(server.Config{Address: ":9999"}, &recordingFunction{}, nil, nil)
	hs := s.HTTPServer()
	assert.Equal(t, ":9999", hs.Addr)
	assert.NotNil(t, hs.Handler)
}
