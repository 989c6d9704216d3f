package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"sheetboard/domain/core"
	"sheetboard/internal/config"
	"sheetboard/ports"
)

const defaultBaseURL = "https://api.openai.com/v1"

// placeholderMarkers flag API keys copied from an example env file
var placeholderMarkers = []string{"your_", "your-", "changeme", "placeholder"}

// OpenAIClient sends chat completions to an OpenAI-compatible endpoint in JSON mode
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	Model       string
	HTTPClient  *http.Client
}

var _ ports.LLMClient = (*OpenAIClient)(nil)

// ResponseFormat forces structured output from GPT models
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" for structured output
}

// NewOpenAIClient creates a client from the AI configuration
func NewOpenAIClient(cfg config.AIConfig) *OpenAIClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	log.Printf("[OpenAIClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d, timeout=%v",
		cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout)

	return &OpenAIClient{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     baseURL,
		Timeout:     cfg.Timeout,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Model:       cfg.Model,
		HTTPClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// IsPlaceholderKey reports whether an API key is missing or obviously a template value
func IsPlaceholderKey(key string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return true
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

// ChatCompletion sends one system + user message pair and returns the raw content.
// Failures are classified into the classifier error family; nothing is retried.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (*ports.LLMResponse, error) {
	if IsPlaceholderKey(c.APIKey) {
		return nil, core.ErrClassifierUnavailable
	}

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type requestBody struct {
		Model               string         `json:"model"`
		Messages            []message      `json:"messages"`
		Temperature         float64        `json:"temperature,omitempty"`
		MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`
		ResponseFormat      ResponseFormat `json:"response_format"`
	}

	// JSON mode requires the word "JSON" somewhere in the messages
	if !strings.Contains(strings.ToLower(systemPrompt+userPrompt), "json") {
		systemPrompt += "\n\nIMPORTANT: Respond with valid JSON output."
	}

	reqBody := requestBody{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:         c.Temperature,
		MaxCompletionTokens: c.MaxTokens,
		ResponseFormat:      ResponseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", core.ErrClassifierTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	log.Printf("[OpenAIClient] Sending request to %s - promptLength=%d", c.Model, len(userPrompt))

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timeout after %v: %v", core.ErrClassifierTransport, c.Timeout, err)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrClassifierTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", core.ErrClassifierTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		log.Printf("[OpenAIClient] Rate limited by provider")
		return nil, fmt.Errorf("%w: %s", core.ErrClassifierRateLimited, truncate(string(body), 200))
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: provider rejected the API key", core.ErrClassifierUnavailable)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: OpenAI API error (status %d): %s",
			core.ErrClassifierTransport, resp.StatusCode, truncate(string(body), 200))
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *ports.UsageData `json:"usage"`
		Model string           `json:"model"`
	}
	if err := json.Unmarshal(body, &openaiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response envelope: %v", core.ErrClassifierBadOutput, err)
	}
	if len(openaiResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", core.ErrClassifierBadOutput)
	}
	if openaiResp.Usage != nil {
		openaiResp.Usage.Model = openaiResp.Model
	}

	log.Printf("[OpenAIClient] Response received - %d bytes", len(body))
	return &ports.LLMResponse{
		Content: openaiResp.Choices[0].Message.Content,
		Usage:   openaiResp.Usage,
	}, nil
}

// StructuredClient renders a prompt, calls the LLM and decodes the JSON answer into T
type StructuredClient[T any] struct {
	LLM           ports.LLMClient
	PromptManager *PromptManager
	SystemContext string
}

// NewStructuredClient creates a structured client over any LLM client
func NewStructuredClient[T any](llm ports.LLMClient, prompts *PromptManager, systemContext string) *StructuredClient[T] {
	return &StructuredClient[T]{LLM: llm, PromptManager: prompts, SystemContext: systemContext}
}

// GetJsonResponseFromPrompt loads a prompt template and returns the decoded response.
// Undecodable content is reported as ErrClassifierBadOutput.
func (client *StructuredClient[T]) GetJsonResponseFromPrompt(ctx context.Context, promptName string, replacements map[string]string) (*T, error) {
	prompt, err := client.PromptManager.RenderPrompt(promptName, replacements)
	if err != nil {
		log.Printf("[StructuredClient] ERROR: Failed to load/render prompt %s: %v", promptName, err)
		return nil, fmt.Errorf("failed to load/render prompt: %w", err)
	}

	resp, err := client.LLM.ChatCompletion(ctx, client.SystemContext, prompt)
	if err != nil {
		return nil, err
	}

	content := cleanJSONContent(resp.Content)

	var result T
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Printf("[StructuredClient] ERROR: Failed to unmarshal JSON content: %v", err)
		return nil, fmt.Errorf("%w: %v", core.ErrClassifierBadOutput, err)
	}
	return &result, nil
}

// cleanJSONContent removes markdown code blocks and chatter around a JSON object
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	// Drop any prose before the first object and after the last one
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start && (start > 0 || end < len(content)-1) {
		log.Printf("[StructuredClient] Trimming %d bytes of chatter around JSON object", len(content)-(end+1-start))
		content = content[start : end+1]
	}

	return content
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
