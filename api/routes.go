package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdf_toolkit/config"
	"pdf_toolkit/pdf"
)

// Server carries the dependencies shared by all handlers.
type Server struct {
	config *config.Config
	parity pdf.ParityTable
	logger *slog.Logger
}

// NewServer creates the handler set for cfg.
func NewServer(cfg *config.Config, logger *slog.Logger) *Server {
	return &Server{config: cfg, parity: cfg.ParityTable(), logger: logger}
}

// SetupRoutes registers the API and health check on r.
func (s *Server) SetupRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_toolkit",
		})
	})

	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/inspect", s.HandleInspect)
		apiGroup.POST("/remove-pages", s.HandleRemovePages)
		apiGroup.POST("/extract-pages", s.HandleExtractPages)
		apiGroup.POST("/merge", s.HandleMerge)
	}
}
