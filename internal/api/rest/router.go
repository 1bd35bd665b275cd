package rest

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

// NewRouter собирает gin-роутер API
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes
	r.Use(gin.Recovery(), requestLogger(logger), cors.Default())

	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)

	v1 := r.Group("/v1")
	{
		v1.POST("/classify", h.Classify)
		v1.GET("/labels", h.Labels)
		v1.GET("/properties/:id/report", h.PropertyReport)
	}
	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote_addr", c.ClientIP(),
		)
	}
}
