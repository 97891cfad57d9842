// cmd/cardgen/invoke_test.go
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardgen/internal/models"
)

func fakeUpstream(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"id":    "chatcmpl-cli",
			"model": "gpt-4o-mini",
			"choices": []map[string]interface{}{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, stdin string, args ...string) (models.Response, error) {
	t.Helper()
	configPath, eventPath = "", ""

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		return models.Response{}, err
	}

	var resp models.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	return resp, nil
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestInvoke_EventFile(t *testing.T) {
	upstream := fakeUpstream(t, "Вот карточка\nКружка «Утро»\nОписание:\n☕ Тёплая и уютная")
	t.Setenv("OPENAI_API_KEY", "sk-cli")
	t.Setenv("OPENAI_BASE_URL", upstream.URL+"/v1")

	cfg := writeFile(t, "config.yaml", "logging:\n  level: error\n")
	event := writeFile(t, "event.json",
		`{"httpMethod":"POST","body":"{\"productName\":\"Кружка\",\"productCategory\":\"Посуда\"}"}`)

	resp, err := runCLI(t, "", "invoke", "--config", cfg, "--event", event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.False(t, resp.IsBase64Encoded)

	var card models.ProductCard
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &card))
	assert.Equal(t, "Кружка «Утро»", card.Title)
	assert.Equal(t, "☕ Тёплая и уютная", card.Description)
}

func TestInvoke_StdinDefaultsToGet(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := writeFile(t, "config.yaml", "logging:\n  level: error\n")

	resp, err := runCLI(t, `{"body":"{}"}`, "invoke", "--config", cfg)
	require.NoError(t, err)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, resp.Body)
}

func TestInvoke_MalformedEvent(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "logging:\n  level: error\n")

	_, err := runCLI(t, "not json", "invoke", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse event")
}
