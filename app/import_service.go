package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"sheetboard/adapters/excel"
	"sheetboard/domain/board"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
	"sheetboard/internal/inference"
	"sheetboard/internal/materialize"
	"sheetboard/ports"
)

// AnalyzeRequest is an uploaded spreadsheet plus the user's description of it
type AnalyzeRequest struct {
	FileName    string
	Content     io.Reader
	Description string
}

// AnalysisResult is a briefing together with the structure it was inferred from
type AnalysisResult struct {
	Briefing       *briefing.Briefing        `json:"briefing"`
	ExcelStructure sheet.ExcelStructure      `json:"excelStructure"`
	Profiles       []inference.ColumnProfile `json:"profiles"`
	Source         briefing.Source           `json:"source"`

	// Table is the full normalized sheet, kept for a following materialization
	Table *sheet.Table `json:"-"`
}

// MaterializeRequest is a confirmed briefing plus the full sheet data
type MaterializeRequest struct {
	WorkspaceID string
	UserID      string
	BoardName   string
	Briefing    *briefing.Briefing
	Headers     []string
	Rows        []sheet.Row
}

// ImportService orchestrates spreadsheet analysis and board materialization
type ImportService struct {
	heuristic    ports.BriefingProducer
	classifier   ports.BriefingProducer
	repo         ports.BoardRepository
	materializer *materialize.Materializer
}

// NewImportService creates an import service. classifier may be nil, in which
// case the classifier path reports ErrClassifierUnavailable.
func NewImportService(heuristic, classifier ports.BriefingProducer, repo ports.BoardRepository, materializer *materialize.Materializer) *ImportService {
	return &ImportService{
		heuristic:    heuristic,
		classifier:   classifier,
		repo:         repo,
		materializer: materializer,
	}
}

// AnalyzeHeuristic infers a briefing with local rules only
func (s *ImportService) AnalyzeHeuristic(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	return s.analyze(ctx, s.heuristic, req)
}

// AnalyzeWithClassifier infers a briefing through the external classifier.
// The description is mandatory on this path.
func (s *ImportService) AnalyzeWithClassifier(ctx context.Context, req AnalyzeRequest) (*AnalysisResult, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, core.ErrMissingDescription
	}
	if s.classifier == nil {
		return nil, core.ErrClassifierUnavailable
	}
	return s.analyze(ctx, s.classifier, req)
}

func (s *ImportService) analyze(ctx context.Context, producer ports.BriefingProducer, req AnalyzeRequest) (*AnalysisResult, error) {
	if strings.TrimSpace(req.FileName) == "" || req.Content == nil {
		return nil, core.ErrMissingFile
	}

	reader, err := excel.NewDataReader(req.FileName)
	if err != nil {
		return nil, err
	}
	raw, err := reader.Read(req.Content)
	if err != nil {
		return nil, err
	}
	table, structure, err := excel.Normalize(raw, producer.SampleSize())
	if err != nil {
		return nil, err
	}

	log.Printf("[ImportService] Analyzing %s with %s producer: %d headers, %d rows",
		structure.FileInfo.Name, producer.Source(), len(structure.Headers), structure.RowCount)

	b, err := producer.ProduceBriefing(ctx, ports.BriefingRequest{
		Structure:   *structure,
		Table:       table,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	response := *structure
	response.SampleRows = nil
	return &AnalysisResult{
		Briefing:       b,
		ExcelStructure: response,
		Profiles:       inference.ProfileColumns(table),
		Source:         producer.Source(),
		Table:          table,
	}, nil
}

// Materialize creates a board from a confirmed briefing. The run is detached from
// the caller's cancellation so a dropped connection never stops it midway.
func (s *ImportService) Materialize(ctx context.Context, req MaterializeRequest) (*board.MaterializationReport, error) {
	workspaceID, err := core.ParseWorkspaceID(req.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInputValidation, err)
	}
	if req.Briefing == nil {
		return nil, fmt.Errorf("%w: briefing is required", core.ErrInvalidBriefing)
	}

	log.Printf("[ImportService] Materializing %d rows into workspace %s", len(req.Rows), workspaceID)

	report, err := s.materializer.Materialize(context.WithoutCancel(ctx), materialize.Input{
		Briefing:    req.Briefing,
		Headers:     req.Headers,
		Rows:        req.Rows,
		BoardName:   req.BoardName,
		WorkspaceID: workspaceID,
		OwnerID:     core.ParseUserID(req.UserID),
	})
	if err != nil {
		log.Printf("[ImportService] Materialization failed: %v", err)
		return nil, err
	}
	if !report.Complete() {
		log.Printf("[ImportService] Board %s created with %d skipped entities", report.BoardID, len(report.Skipped))
	}
	return report, nil
}

// GetBoardSnapshot reads a board back with its columns, groups, items and values
func (s *ImportService) GetBoardSnapshot(ctx context.Context, id string) (*board.Snapshot, error) {
	boardID, err := core.ParseBoardID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInputValidation, err)
	}

	return materialize.LoadSnapshot(ctx, s.repo, boardID)
}
