package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"sheetboard/adapters/excel"
	"sheetboard/ai"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/internal/inference"
	"sheetboard/ports"
)

const (
	briefingPrompt = "briefing"
	systemContext  = "You classify spreadsheet columns for a project board importer. Answer with a single JSON object."
)

// BriefingAdapter produces briefings through an external LLM classifier
type BriefingAdapter struct {
	client *ai.StructuredClient[briefing.Briefing]
}

var _ ports.BriefingProducer = (*BriefingAdapter)(nil)

// NewBriefingAdapter wires an LLM client and prompt templates into a briefing producer
func NewBriefingAdapter(llmClient ports.LLMClient, prompts *ai.PromptManager) *BriefingAdapter {
	return &BriefingAdapter{
		client: ai.NewStructuredClient[briefing.Briefing](llmClient, prompts, systemContext),
	}
}

// Source identifies this producer
func (a *BriefingAdapter) Source() briefing.Source { return briefing.SourceClassifier }

// SampleSize caps the rows sent to the provider
func (a *BriefingAdapter) SampleSize() int { return excel.ClassifierSampleSize }

// ProduceBriefing asks the classifier for a briefing and checks it against the headers.
// A response that decodes but breaks the shape contract is ErrClassifierBadOutput.
func (a *BriefingAdapter) ProduceBriefing(ctx context.Context, req ports.BriefingRequest) (*briefing.Briefing, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, core.ErrMissingDescription
	}

	replacements, err := a.buildReplacements(req)
	if err != nil {
		return nil, err
	}

	log.Printf("[BriefingAdapter] Requesting briefing for %s (%d headers, %d rows)",
		req.Structure.FileInfo.Name, len(req.Structure.Headers), req.Structure.RowCount)

	result, err := a.client.GetJsonResponseFromPrompt(ctx, briefingPrompt, replacements)
	if err != nil {
		log.Printf("[BriefingAdapter] Classifier failed: %v", err)
		return nil, err
	}

	applyGroupingDefaults(result)
	if err := result.Validate(req.Structure.Headers); err != nil {
		log.Printf("[BriefingAdapter] Classifier output rejected: %v", err)
		return nil, fmt.Errorf("%w: %v", core.ErrClassifierBadOutput, err)
	}

	log.Printf("[BriefingAdapter] Briefing accepted: dataType=%s, grouping=%s",
		result.DataType, result.Grouping.Strategy)
	return result, nil
}

func (a *BriefingAdapter) buildReplacements(req ports.BriefingRequest) (map[string]string, error) {
	sample := req.Structure.SampleRows
	if len(sample) > excel.ClassifierSampleSize {
		sample = sample[:excel.ClassifierSampleSize]
	}

	headersJSON, err := json.Marshal(req.Structure.Headers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode headers: %w", err)
	}
	sampleJSON, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sample rows: %w", err)
	}
	profilesJSON, err := json.Marshal(inference.ProfileColumns(req.Table))
	if err != nil {
		return nil, fmt.Errorf("failed to encode column profiles: %w", err)
	}

	return map[string]string{
		"DESCRIPTION": strings.TrimSpace(req.Description),
		"FILE_NAME":   req.Structure.FileInfo.Name,
		"SHEET_NAME":  req.Structure.FileInfo.SheetName,
		"ROW_COUNT":   strconv.Itoa(req.Structure.RowCount),
		"HEADERS":     string(headersJSON),
		"SAMPLE_ROWS": string(sampleJSON),
		"PROFILES":    string(profilesJSON),
	}, nil
}

// applyGroupingDefaults fills the fallback group labels the classifier tends to omit
func applyGroupingDefaults(b *briefing.Briefing) {
	if b.Grouping.DefaultGroup != "" {
		return
	}
	switch b.Grouping.Strategy {
	case briefing.GroupByColumn:
		b.Grouping.DefaultGroup = briefing.UncategorizedGroup
	case briefing.GroupSingleGroup:
		b.Grouping.DefaultGroup = briefing.DefaultGroupName
	}
}
