package usage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/domain/core"
	"sheetboard/ports"
)

type fixedClient struct {
	resp *ports.LLMResponse
	err  error
}

func (f fixedClient) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (*ports.LLMResponse, error) {
	return f.resp, f.err
}

func TestTrackerAggregatesPerModel(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(&ports.UsageData{Model: "gpt-4o-mini", PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
		}()
	}
	wg.Wait()
	tracker.Record(&ports.UsageData{Model: "gpt-4o", PromptTokens: 1, CompletionTokens: 1, TotalTokens: 2})
	tracker.Record(nil)
	tracker.Record(&ports.UsageData{Model: "gpt-4o", TotalTokens: -1})

	snapshot := tracker.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, Totals{Model: "gpt-4o-mini", Calls: 10, PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, snapshot["gpt-4o-mini"])
	assert.Equal(t, 1, snapshot["gpt-4o"].Calls)
}

func TestTrackingClientRecordsOnlySuccessfulCalls(t *testing.T) {
	tracker := NewTracker()

	ok := NewTrackingClient(fixedClient{resp: &ports.LLMResponse{
		Content: "{}",
		Usage:   &ports.UsageData{Model: "m", TotalTokens: 7},
	}}, tracker)
	resp, err := ok.ChatCompletion(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Content)

	failing := NewTrackingClient(fixedClient{err: core.ErrClassifierRateLimited}, tracker)
	_, err = failing.ChatCompletion(context.Background(), "s", "u")
	assert.ErrorIs(t, err, core.ErrClassifierRateLimited)

	assert.Equal(t, 7, tracker.Snapshot()["m"].TotalTokens)
	assert.Equal(t, 1, tracker.Snapshot()["m"].Calls)
}
