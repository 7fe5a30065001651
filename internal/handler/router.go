package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ServiceName = "file-hash-service"
	Version     = "1.0.0"
)

// NewRouter wires middleware and routes around the hash handler
func NewRouter(hdl *HashHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), Recovery(logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
			"version": Version,
		})
	})

	r.GET("/api/hash/algorithms", hdl.Algorithms)

	api := r.Group("/api/hash", hdl.ValidateRequest)
	{
		api.GET("", hdl.Hash)
		api.POST("", hdl.Hash)
		// Served directly rather than redirected; a 307 would make clients resend the body
		api.GET("/", hdl.Hash)
		api.POST("/", hdl.Hash)
	}

	return r
}
