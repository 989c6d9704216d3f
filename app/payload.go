package app

import (
	"fmt"

	"sheetboard/adapters/excel"
	"sheetboard/domain/board"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/domain/sheet"
)

// MaterializePayload is the JSON body both HTTP transports accept for materialization
type MaterializePayload struct {
	WorkspaceID string             `json:"workspaceId"`
	BoardName   string             `json:"boardName,omitempty"`
	Briefing    *briefing.Briefing `json:"briefing"`
	ExcelData   sheet.Table        `json:"excelData"`
}

// Request converts the payload for the given actor
func (p MaterializePayload) Request(userID string) MaterializeRequest {
	return MaterializeRequest{
		WorkspaceID: p.WorkspaceID,
		UserID:      userID,
		BoardName:   p.BoardName,
		Briefing:    p.Briefing,
		Headers:     p.ExcelData.Headers,
		Rows:        p.ExcelData.Rows,
	}
}

// MaterializeResponse is what transports answer after a materialization
type MaterializeResponse struct {
	BoardID   core.BoardID                 `json:"boardId"`
	BoardName string                       `json:"boardName"`
	Report    *board.MaterializationReport `json:"report"`
}

// NewMaterializeResponse wraps a report for transport
func NewMaterializeResponse(report *board.MaterializationReport) MaterializeResponse {
	return MaterializeResponse{BoardID: report.BoardID, BoardName: report.BoardName, Report: report}
}

// CheckUpload rejects uploads by extension and size before anything is parsed
func CheckUpload(filename string, size, maxBytes int64) error {
	if filename == "" {
		return core.ErrMissingFile
	}
	if _, err := excel.DetectFileType(filename); err != nil {
		return err
	}
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: file size (%.1f MB) exceeds the %.0f MB limit",
			core.ErrInputValidation, float64(size)/(1024*1024), float64(maxBytes)/(1024*1024))
	}
	return nil
}
