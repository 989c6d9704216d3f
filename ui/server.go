package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sheetboard/app"
	"sheetboard/internal/config"
)

// Server is the upload and confirmation web server
type Server struct {
	router  *gin.Engine
	imports *app.ImportService
	cfg     config.ImportConfig
	httpSrv *http.Server
}

// NewServer creates a server with all routes registered
func NewServer(imports *app.ImportService, cfg config.ImportConfig) *Server {
	s := &Server{
		router:  gin.Default(),
		imports: imports,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.MaxMultipartMemory = s.cfg.MaxUploadBytes

	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		importGroup := api.Group("/import")
		importGroup.POST("/analyze", s.handleAnalyze)
		importGroup.POST("/analyze-ai", s.handleAnalyzeAI)
		importGroup.POST("/preview", s.handlePreview)
		importGroup.POST("/materialize", s.handleMaterialize)

		api.GET("/boards/:id", s.handleGetBoard)
	}
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[Server] Listening on %s", addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
