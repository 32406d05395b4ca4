package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/labscan/internal/config"
	"github.com/agenthands/labscan/internal/core"
	"github.com/agenthands/labscan/internal/logger"
)

type Server struct {
	Assistant *core.Assistant
	Log       *zap.Logger

	maxBodyBytes int64
}

func NewServer(assistant *core.Assistant, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	// data URIs inflate the frame by a third; leave room for the JSON around it
	maxBody := cfg.Server.MaxImageBytes*4/3 + 64<<10

	return &Server{
		Assistant:    assistant,
		Log:          log,
		maxBodyBytes: maxBody,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(s.Log.Named("http")))
	r.Use(s.limitBody())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/catalog", s.ListCatalog)
		api.GET("/catalog/categories", s.ListCategories)
		api.POST("/identify", s.Identify)
		api.POST("/scan", s.Scan)
		api.GET("/equipment/:name", s.GetEquipment)
		api.POST("/equipment/:name/questions", s.AskQuestion)
		api.POST("/voice/commands", s.VoiceCommand)
	}

	return r
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
		}
		c.Next()
	}
}
