package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/config"
	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLLMServer serves /api/llm/generate backed by a stub model gateway that
// always answers with modelContent.
func newLLMServer(t *testing.T, modelContent string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": modelContent}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(upstream.Close)

	vlm := services.NewVLMService(services.NewOpenRouterClient(&config.Config{
		OpenRouterAPIKey:  "test-key",
		OpenRouterBaseURL: upstream.URL,
		OpenRouterModel:   "test/model",
	}))

	r := gin.New()
	r.POST("/api/llm/generate", NewLLMController(vlm).Generate)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postGenerate(t *testing.T, srv *httptest.Server, body map[string]any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/llm/generate", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func generateContent(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	content, ok := data["content"].(map[string]any)
	require.True(t, ok)
	return content
}

func TestGenerateReturnsNormalizedRecord(t *testing.T) {
	srv := newLLMServer(t, `{"total_calories":250,"nutrients":{"protein":{"amount":12,"unit":"g"}}}`)

	status, body := postGenerate(t, srv, map[string]any{"imageUrl": "https://cdn.test/label.jpg"})

	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	content := generateContent(t, body)
	assert.Equal(t, "Food item", content["foodName"])
	assert.Equal(t, float64(250), content["calories"])
	assert.Equal(t, float64(12), content["protein"])
	assert.Equal(t, float64(0), content["carbs"])
	assert.Contains(t, content, "rawData")
	assert.NotContains(t, content, "id")
}

func TestGenerateUndecodableAnalysisReturnsPlaceholder(t *testing.T) {
	srv := newLLMServer(t, `{"total_calories":"unknown"}`)

	status, body := postGenerate(t, srv, map[string]any{"imageUrl": "https://cdn.test/label.jpg"})

	require.Equal(t, http.StatusOK, status)

	content := generateContent(t, body)
	assert.Equal(t, "Processed food item", content["foodName"])
	assert.Equal(t, float64(0), content["calories"])
}

func TestGenerateCustomPromptSkipsNormalization(t *testing.T) {
	srv := newLLMServer(t, `{"answer":"omelette"}`)

	status, body := postGenerate(t, srv, map[string]any{
		"imageUrl": "https://cdn.test/label.jpg",
		"prompt":   "what meal is pictured?",
	})

	require.Equal(t, http.StatusOK, status)

	content := generateContent(t, body)
	assert.Equal(t, "omelette", content["answer"])
	assert.NotContains(t, content, "foodName")
}

func TestGenerateRequiresImageURL(t *testing.T) {
	srv := newLLMServer(t, `{}`)

	status, body := postGenerate(t, srv, map[string]any{"prompt": "hello"})

	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}
