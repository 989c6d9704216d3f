package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetboard/app"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/internal/errors"
	"sheetboard/internal/report"
)

// handleAnalyze infers a briefing with the heuristic producer
func (s *Server) handleAnalyze(c *gin.Context) {
	s.analyze(c, false)
}

// handleAnalyzeAI infers a briefing through the external classifier
func (s *Server) handleAnalyzeAI(c *gin.Context) {
	s.analyze(c, true)
}

func (s *Server) analyze(c *gin.Context, useClassifier bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - No file uploaded: %v", err)
		respondError(c, core.ErrMissingFile)
		return
	}
	defer file.Close()

	if err := app.CheckUpload(header.Filename, header.Size, s.cfg.MaxUploadBytes); err != nil {
		log.Printf("[handleAnalyze] FAILED - Rejected upload %s: %v", header.Filename, err)
		respondError(c, err)
		return
	}

	req := app.AnalyzeRequest{
		FileName:    header.Filename,
		Content:     file,
		Description: c.PostForm("description"),
	}

	var result *app.AnalysisResult
	if useClassifier {
		result, err = s.imports.AnalyzeWithClassifier(c.Request.Context(), req)
	} else {
		result, err = s.imports.AnalyzeHeuristic(c.Request.Context(), req)
	}
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - %s: %v", header.Filename, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handlePreview renders a briefing as an HTML fragment for the confirmation step
func (s *Server) handlePreview(c *gin.Context) {
	var b briefing.Briefing
	if err := c.ShouldBindJSON(&b); err != nil {
		respondError(c, errors.Wrap(core.ErrInvalidBriefing, err.Error()))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.BriefingHTML(&b, nil))
}

// handleMaterialize creates a board from a confirmed briefing and the full sheet data
func (s *Server) handleMaterialize(c *gin.Context) {
	var payload app.MaterializePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[handleMaterialize] FAILED - Invalid body: %v", err)
		respondError(c, errors.Wrap(core.ErrInputValidation, err.Error()))
		return
	}

	result, err := s.imports.Materialize(c.Request.Context(), payload.Request(s.cfg.DefaultUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, app.NewMaterializeResponse(result))
}

// handleGetBoard returns a board with its columns, groups, items and values
func (s *Server) handleGetBoard(c *gin.Context) {
	snapshot, err := s.imports.GetBoardSnapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func respondError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
