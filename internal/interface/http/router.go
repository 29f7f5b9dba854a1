package api

import (
	"net/http"
	"time"

	"ticketscan-service/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(handler *TicketHandler, appLogger logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(appLogger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		tickets := v1.Group("/tickets")
		tickets.POST("/extract", handler.ExtractTicket)
		tickets.GET("/extractions/:id", handler.GetExtraction)
	}

	return r
}

// requestLogger logs one line per request through the service logger
func requestLogger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latencyMs", float64(time.Since(start).Microseconds())/1000.0,
			"ip", c.ClientIP())
	}
}
