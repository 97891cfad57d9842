// test/e2e/e2e_test.go
package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cardgen/internal/common/config"
	"cardgen/internal/common/genai"
	commonhttp "cardgen/internal/common/http"
	"cardgen/internal/common/logger"
	generateproduct "cardgen/internal/functions/generate-product"
	"cardgen/internal/models"
	"cardgen/internal/server"
)

var zapLog *zap.Logger

func TestMain(m *testing.M) {
	zapLog, _ = zap.NewDevelopment()

	code := m.Run()

	_ = zapLog.Sync()
	os.Exit(code)
}

// ==========================
// Fake chat-completion upstream
// ==========================

type upstream struct {
	mu       sync.Mutex
	calls    int
	keys     []string
	prompts  []string
	status   int
	content  string
	choices  bool
	errorMsg string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	u.keys = append(u.keys, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if len(req.Messages) == 2 {
		u.prompts = append(u.prompts, req.Messages[1].Content)
	}

	w.Header().Set("Content-Type", "application/json")
	if u.status != 0 && u.status != http.StatusOK {
		w.WriteHeader(u.status)
		_, _ = fmt.Fprintf(w, `{"error":{"message":%q,"type":"invalid_request_error"}}`, u.errorMsg)
		return
	}

	choices := []map[string]interface{}{}
	if u.choices {
		choices = append(choices, map[string]interface{}{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": u.content},
			"finish_reason": "stop",
		})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-e2e",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": choices,
	})
	_, _ = w.Write(body)
}

func (u *upstream) seen() (calls int, keys, prompts []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls, append([]string(nil), u.keys...), append([]string(nil), u.prompts...)
}

// ==========================
// Stack setup
// ==========================

func startStack(t *testing.T, up *upstream, locale, apiKey string) *httptest.Server {
	t.Helper()

	upstreamSrv := httptest.NewServer(up)
	t.Cleanup(upstreamSrv.Close)

	log := logger.NewZapAdapter(zapLog)
	fnCfg := generateproduct.DefaultConfig()
	fnCfg.Locale = locale

	handler := generateproduct.NewHandler(
		fnCfg,
		config.StaticCredentials(apiKey),
		genai.NewFactory(upstreamSrv.URL+"/v1", commonhttp.NewClient(10*time.Second, log)),
		log,
	)

	srv := httptest.NewServer(server.New(server.Config{}, handler, nil, log))
	t.Cleanup(srv.Close)
	return srv
}

func send(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

// ==========================
// Full flow
// ==========================

func TestFullE2E(t *testing.T) {
	t.Log("🚀 Starting E2E test against a fake upstream...")

	up := &upstream{
		choices: true,
		content: "Here is your card\n1. Title:\n**Ceramic Mug 350 ml | Dishwasher Safe**\n2. Description:\n☕ **Keeps** coffee hot\n🔥 Order today!",
	}
	srv := startStack(t, up, "en", "sk-e2e")

	// 1. Health endpoints
	resp, body := send(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, body)
	t.Log("✅ health")

	// 2. Preflight
	resp, body = send(t, http.MethodOptions, srv.URL+"/generate-product", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
	t.Log("✅ preflight")

	// 3. Generation
	resp, body = send(t, http.MethodPost, srv.URL+"/generate-product",
		`{"productName":"Ceramic Mug","productCategory":"Kitchen","productFeatures":"350 ml"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var card models.ProductCard
	require.NoError(t, json.Unmarshal([]byte(body), &card))
	assert.Equal(t, "Ceramic Mug 350 ml | Dishwasher Safe", card.Title)
	assert.Equal(t, "☕ Keeps coffee hot\n🔥 Order today!", card.Description)
	assert.Contains(t, body, "☕")

	calls, keys, prompts := up.seen()
	require.Equal(t, 1, calls)
	assert.Equal(t, []string{"sk-e2e"}, keys)
	assert.Contains(t, prompts[0], "Product: Ceramic Mug")
	assert.Contains(t, prompts[0], "Features: 350 ml")
	t.Log("✅ generation")

	// 4. Rejections never reach the upstream
	resp, body = send(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, body)

	resp, body = send(t, http.MethodPost, srv.URL+"/", `{"productName":"Mug"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"productName and productCategory are required"}`, body)

	calls, _, _ = up.seen()
	assert.Equal(t, 1, calls)
	t.Log("✅ ALL TESTS PASSED")
}

func TestE2E_MissingKey(t *testing.T) {
	up := &upstream{choices: true, content: "x"}
	srv := startStack(t, up, "en", "")

	resp, body := send(t, http.MethodPost, srv.URL+"/", `{"productName":"Mug","productCategory":"Kitchen"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"OPENAI_API_KEY not configured"}`, body)
	calls, _, _ := up.seen()
	assert.Zero(t, calls)
}

func TestE2E_UpstreamFailure(t *testing.T) {
	up := &upstream{status: http.StatusUnauthorized, errorMsg: "Incorrect API key provided"}
	srv := startStack(t, up, "en", "sk-bad")

	resp, body := send(t, http.MethodPost, srv.URL+"/", `{"productName":"Mug","productCategory":"Kitchen"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out models.ErrorBody
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Contains(t, out.Error, "Incorrect API key provided")
}

func TestE2E_NoChoices(t *testing.T) {
	up := &upstream{choices: false}
	srv := startStack(t, up, "en", "sk-e2e")

	resp, body := send(t, http.MethodPost, srv.URL+"/", `{"productName":"Mug","productCategory":"Kitchen"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, generateproduct.ErrNoChoices.Error()), body)
}

func TestE2E_RussianFallbacks(t *testing.T) {
	up := &upstream{choices: true, content: "Единственная строка ответа"}
	srv := startStack(t, up, "ru", "sk-e2e")

	resp, body := send(t, http.MethodPost, srv.URL+"/", `{"productName":"Кружка","productCategory":"Посуда"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var card models.ProductCard
	require.NoError(t, json.Unmarshal([]byte(body), &card))
	assert.Equal(t, "Кружка - Посуда премиум качества | Быстрая доставка", card.Title)
	assert.Equal(t, "Единственная строка ответа", card.Description)
	_, _, prompts := up.seen()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Товар: Кружка")
}
