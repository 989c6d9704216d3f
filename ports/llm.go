package ports

import "context"

// UsageData represents raw usage data from LLM provider APIs
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
}

// LLMResponse is the raw content returned by a chat completion plus usage
type LLMResponse struct {
	Content string
	Usage   *UsageData
}

// LLMClient sends one system + user prompt pair and returns the raw completion
type LLMClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (*LLMResponse, error)
}
