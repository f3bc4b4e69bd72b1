package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *OpenRouterClient {
	return NewOpenRouterClient(&config.Config{
		OpenRouterAPIKey:  "test-key",
		OpenRouterBaseURL: url,
		OpenRouterModel:   "test/model",
	})
}

func completionResponse(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestChatCompletionSuccess(t *testing.T) {
	var gotBody chatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionResponse(`{"total_calories": 120}`)))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.ChatCompletion(context.Background(), ChatCompletionOptions{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test/model", gotBody.Model, "default model applies")
	assert.Equal(t, 0.2, gotBody.Temperature, "default temperature applies")
	assert.Equal(t, `{"total_calories": 120}`, result.RawContent)
	assert.Equal(t, float64(120), result.ParsedContent["total_calories"])
	assert.Greater(t, result.ElapsedSeconds, 0.0)
	assert.Contains(t, result.FullResponse, "choices")
}

func TestChatCompletionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "model overloaded"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	result, err := client.ChatCompletion(context.Background(), ChatCompletionOptions{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	require.Error(t, err)
	assert.Nil(t, result)

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Message, "502")
	assert.Equal(t, "model overloaded", gerr.Details["error"])
	assert.Greater(t, gerr.ElapsedSeconds, 0.0)
}

func TestChatCompletionTransportError(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1/unreachable")

	_, err := client.ChatCompletion(context.Background(), ChatCompletionOptions{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Message, "request failed")
}

func TestExtractNutritionInfoMessageShape(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content []struct {
				Type     string `json:"type"`
				Text     string `json:"text"`
				ImageURL *struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse(`{}`)))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.ExtractNutritionInfo(context.Background(), "https://img.example.com/label.jpg")

	require.NoError(t, err)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "user", gotBody.Messages[0].Role)
	require.Len(t, gotBody.Messages[0].Content, 2)
	assert.Equal(t, "text", gotBody.Messages[0].Content[0].Type)
	assert.Equal(t, NutritionPrompt, gotBody.Messages[0].Content[0].Text)
	assert.Equal(t, "image_url", gotBody.Messages[0].Content[1].Type)
	require.NotNil(t, gotBody.Messages[0].Content[1].ImageURL)
	assert.Equal(t, "https://img.example.com/label.jpg", gotBody.Messages[0].Content[1].ImageURL.URL)
}

func TestAnalyzeFoodDecodesFencedResponse(t *testing.T) {
	content := "Here you go:\n```json\n{\"total_calories\": 250, \"nutrients\": {\"protein\": {\"amount\": 12}}}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionResponse(content)))
	}))
	defer srv.Close()

	vlm := NewVLMService(newTestClient(srv.URL))
	analysis, parsed, err := vlm.AnalyzeFood(context.Background(), "https://img.example.com/label.jpg")

	require.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Equal(t, float64(250), *analysis.TotalCalories)
	assert.Equal(t, float64(12), analysis.Nutrients.Protein.AmountOf())
	assert.Equal(t, float64(250), parsed["total_calories"])
}

func TestAnalyzeFoodPlainTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionResponse("the image is too blurry to read")))
	}))
	defer srv.Close()

	vlm := NewVLMService(newTestClient(srv.URL))
	analysis, parsed, err := vlm.AnalyzeFood(context.Background(), "https://img.example.com/label.jpg")

	require.NoError(t, err)
	require.NotNil(t, analysis, "parse degradation yields an empty analysis, not nil")
	assert.Nil(t, analysis.TotalCalories)
	assert.Equal(t, map[string]any{"text": "the image is too blurry to read"}, parsed)
}

func TestVLMCallWithPromptOnly(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionResponse(`{"answer": "ok"}`)))
	}))
	defer srv.Close()

	vlm := NewVLMService(newTestClient(srv.URL))
	parsed, err := vlm.Call(context.Background(), "describe a balanced breakfast", "", "")

	require.NoError(t, err)
	assert.Equal(t, "ok", parsed["answer"])
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "describe a balanced breakfast", gotBody.Messages[0].Content)
}
