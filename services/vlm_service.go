package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// Message is one role-tagged turn of a chat completion request. Content is
// either a plain string or an ordered []ContentPart for multimodal turns.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type ChatCompletionOptions struct {
	Model       string
	Messages    []Message
	Temperature float64
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ModelResponse carries the raw text from the gateway together with the
// best-effort parsed content and timing. It lives only for the duration of
// the call that produced it; only RawContent/parsed fields outlive it, copied
// into the persisted record as audit data.
type ModelResponse struct {
	ParsedContent  map[string]any
	RawContent     string
	FullResponse   map[string]any
	ElapsedSeconds float64
}

// GatewayError is the structured failure surfaced on transport or upstream
// errors. It is never retried here; the caller decides whether to report it.
type GatewayError struct {
	Message        string
	ElapsedSeconds float64
	Details        map[string]any
}

func (e *GatewayError) Error() string {
	return e.Message
}

// OpenRouterClient wraps the OpenRouter chat-completions endpoint.
type OpenRouterClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenRouterClient(cfg *config.Config) *OpenRouterClient {
	if cfg.OpenRouterAPIKey == "" {
		utils.Logger.Warn("OpenRouter API key is missing")
	}
	return &OpenRouterClient{
		apiKey:  cfg.OpenRouterAPIKey,
		baseURL: cfg.OpenRouterBaseURL,
		model:   cfg.OpenRouterModel,
		client:  &http.Client{},
	}
}

// ChatCompletion posts the request and returns the raw content plus a
// best-effort JSON parse of it. Failures come back as *GatewayError.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, opts ChatCompletionOptions) (*ModelResponse, error) {
	start := time.Now()

	model := opts.Model
	if model == "" {
		model = c.model
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	utils.Logger.Debugw("making OpenRouter request", "model", model, "url", c.baseURL)

	body, err := json.Marshal(chatCompletionRequest{
		Model:       model,
		Messages:    opts.Messages,
		Temperature: temperature,
	})
	if err != nil {
		return nil, c.fail(start, fmt.Sprintf("failed to marshal request: %v", err), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(start, fmt.Sprintf("failed to create request: %v", err), nil)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "VLM Nutrition Info App")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(start, fmt.Sprintf("request failed: %v", err), nil)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(start, fmt.Sprintf("failed to read response: %v", err), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		details := map[string]any{}
		_ = json.Unmarshal(respBody, &details)
		return nil, c.fail(start, fmt.Sprintf("upstream returned status %d", resp.StatusCode), details)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, c.fail(start, fmt.Sprintf("failed to decode response: %v", err), nil)
	}

	rawContent := ""
	if len(parsed.Choices) > 0 {
		rawContent = parsed.Choices[0].Message.Content
	}

	fullResponse := map[string]any{}
	_ = json.Unmarshal(respBody, &fullResponse)

	elapsed := time.Since(start).Seconds()
	utils.Logger.Debugw("OpenRouter request completed", "elapsedSeconds", elapsed)

	return &ModelResponse{
		ParsedContent:  ExtractJSON(rawContent),
		RawContent:     rawContent,
		FullResponse:   fullResponse,
		ElapsedSeconds: elapsed,
	}, nil
}

func (c *OpenRouterClient) fail(start time.Time, message string, details map[string]any) *GatewayError {
	elapsed := time.Since(start).Seconds()
	utils.Logger.Errorw("OpenRouter request failed", "elapsedSeconds", elapsed, "error", message)
	if details == nil {
		details = map[string]any{}
	}
	return &GatewayError{Message: message, ElapsedSeconds: elapsed, Details: details}
}

// ExtractNutritionInfo issues a single-turn request with the fixed nutrition
// extraction prompt and the image attached as an image content part.
func (c *OpenRouterClient) ExtractNutritionInfo(ctx context.Context, imageURL string) (*ModelResponse, error) {
	return c.ChatCompletion(ctx, ChatCompletionOptions{
		Messages: []Message{
			{
				Role: "user",
				Content: []ContentPart{
					{Type: "text", Text: NutritionPrompt},
					{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
				},
			},
		},
	})
}

// VLMService is the food-analysis facade over the OpenRouter client.
type VLMService struct {
	client *OpenRouterClient
}

func NewVLMService(client *OpenRouterClient) *VLMService {
	return &VLMService{client: client}
}

// AnalyzeFood extracts nutrition information from a food label image and
// decodes it into the typed analysis schema. The raw parsed content is kept
// alongside for audit storage.
func (s *VLMService) AnalyzeFood(ctx context.Context, imageURL string) (*models.NutritionAnalysis, map[string]any, error) {
	result, err := s.client.ExtractNutritionInfo(ctx, imageURL)
	if err != nil {
		utils.Logger.Errorw("failed to analyze food image", "error", err)
		return nil, nil, err
	}

	analysis, ok := DecodeNutritionAnalysis(result.RawContent)
	if !ok {
		if _, found := extractJSONCandidate(result.RawContent); !found {
			// No JSON at all: parse degradation, not a schema fault. The
			// normalizer sees an empty analysis plus the text-wrapped raw
			// content and fills in zero defaults.
			analysis = &models.NutritionAnalysis{}
		}
		// Otherwise valid JSON in an unexpected shape: analysis stays nil
		// and the normalizer substitutes its placeholder record.
	}
	return analysis, result.ParsedContent, nil
}

// Call makes a general chat completion request with an optional image and
// returns the parsed content as-is, without the nutrition schema applied.
func (s *VLMService) Call(ctx context.Context, prompt, imageURL, model string) (map[string]any, error) {
	var content any = prompt
	if imageURL != "" {
		content = []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		}
	}

	result, err := s.client.ChatCompletion(ctx, ChatCompletionOptions{
		Model:    model,
		Messages: []Message{{Role: "user", Content: content}},
	})
	if err != nil {
		utils.Logger.Errorw("chat completion failed", "error", err)
		return nil, err
	}
	return result.ParsedContent, nil
}
