package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sheetboard/app"
	"sheetboard/domain/briefing"
	"sheetboard/domain/core"
	"sheetboard/internal/config"
	"sheetboard/internal/errors"
	"sheetboard/internal/report"
)

// Handler serves the import pipeline as a JSON API for machine clients
type Handler struct {
	Imports *app.ImportService
	Config  config.ImportConfig
}

func NewHandler(imports *app.ImportService, cfg config.ImportConfig) *Handler {
	return &Handler{Imports: imports, Config: cfg}
}

// NewRouter builds the chi router with middleware, CORS and all routes
func NewRouter(h *Handler, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/imports/analyze", h.Analyze)
		r.Post("/imports/analyze-ai", h.AnalyzeAI)
		r.Post("/imports/preview", h.Preview)
		r.Post("/imports/materialize", h.Materialize)
		r.Get("/boards/{id}", h.GetBoard)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, false)
}

func (h *Handler) AnalyzeAI(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, true)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, useClassifier bool) {
	if h.Config.MaxUploadBytes > 0 {
		// multipart framing adds a little on top of the file itself
		r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadBytes+1<<20)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, core.ErrMissingFile)
		return
	}
	defer file.Close()

	if err := app.CheckUpload(header.Filename, header.Size, h.Config.MaxUploadBytes); err != nil {
		writeError(w, err)
		return
	}

	req := app.AnalyzeRequest{
		FileName:    header.Filename,
		Content:     file,
		Description: r.FormValue("description"),
	}

	var result *app.AnalysisResult
	if useClassifier {
		result, err = h.Imports.AnalyzeWithClassifier(r.Context(), req)
	} else {
		result, err = h.Imports.AnalyzeHeuristic(r.Context(), req)
	}
	if err != nil {
		log.Printf("[api] analyze %s failed: %v", header.Filename, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var b briefing.Briefing
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, errors.Wrap(core.ErrInvalidBriefing, err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.BriefingHTML(&b, nil))
}

func (h *Handler) Materialize(w http.ResponseWriter, r *http.Request) {
	var payload app.MaterializePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, errors.Wrap(core.ErrInputValidation, err.Error()))
		return
	}

	result, err := h.Imports.Materialize(r.Context(), payload.Request(h.Config.DefaultUserID))
	if err != nil {
		log.Printf("[api] materialize into %q failed: %v", payload.WorkspaceID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, app.NewMaterializeResponse(result))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Imports.GetBoardSnapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
