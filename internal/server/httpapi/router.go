// Package httpapi is the thin HTTP transport over the core services. It only
// translates wire shapes to service calls and error kinds to status codes;
// all invariants live in the services.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rjrato/Write-it-V2-Backend/internal/logging"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/config"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/services"
)

// NewRouter builds the gin engine with CORS and all API routes registered.
func NewRouter(cfg *config.Config, logger logging.Logger, userSvc *services.UserService, noteSvc *services.NoteService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger.With("module", "httpapi")))

	r.Use(cors.New(corsConfig(cfg)))

	h := newHandler(userSvc, noteSvc)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running on port %s.", cfg.HTTPPort)
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/addNote", h.AddNote)
	api.POST("/deleteNote/:userId/:noteId", h.DeleteNote)
	api.GET("/getUserNotes/:userId", h.GetUserNotes)

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSOrigin == "" || cfg.CORSOrigin == "*" {
		// Credentials cannot be combined with a wildcard origin.
		c.AllowCredentials = false
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = []string{cfg.CORSOrigin}
	}
	return c
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
