package usage

import (
	"context"
	"log"
	"sync"

	"sheetboard/ports"
)

// Totals aggregates token usage for one model
type Totals struct {
	Model            string `json:"model"`
	Calls            int    `json:"calls"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
}

// Tracker keeps in-process token totals per model for classifier calls
type Tracker struct {
	mu     sync.Mutex
	totals map[string]*Totals
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{totals: make(map[string]*Totals)}
}

// Record adds one call's usage. Missing or negative counts are logged and dropped.
func (t *Tracker) Record(usage *ports.UsageData) {
	if usage == nil {
		return
	}
	if usage.PromptTokens < 0 || usage.CompletionTokens < 0 || usage.TotalTokens < 0 {
		log.Printf("[UsageTracker] ERROR: invalid token counts: %+v", usage)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.totals[usage.Model]
	if !ok {
		entry = &Totals{Model: usage.Model}
		t.totals[usage.Model] = entry
	}
	entry.Calls++
	entry.PromptTokens += usage.PromptTokens
	entry.CompletionTokens += usage.CompletionTokens
	entry.TotalTokens += usage.TotalTokens
}

// Snapshot returns a copy of the totals, keyed by model
func (t *Tracker) Snapshot() map[string]Totals {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Totals, len(t.totals))
	for model, entry := range t.totals {
		out[model] = *entry
	}
	return out
}

// TrackingClient decorates an LLM client and records the usage of every successful call
type TrackingClient struct {
	inner   ports.LLMClient
	tracker *Tracker
}

var _ ports.LLMClient = (*TrackingClient)(nil)

func NewTrackingClient(inner ports.LLMClient, tracker *Tracker) *TrackingClient {
	return &TrackingClient{inner: inner, tracker: tracker}
}

func (c *TrackingClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (*ports.LLMResponse, error) {
	resp, err := c.inner.ChatCompletion(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	if resp.Usage != nil {
		c.tracker.Record(resp.Usage)
		log.Printf("[UsageTracker] %s used %d tokens (%d prompt, %d completion)",
			resp.Usage.Model, resp.Usage.TotalTokens, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}
	return resp, nil
}
