// Package httpapi is the front-service HTTP surface: upload, the progress
// push stream, the collaboration socket, and health.
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/collab"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/ingest"
	"github.com/docstreamhq/docstream/internal/repository"
)

const ownerKey = "owner_id"

// Deps wires the router's collaborators.
type Deps struct {
	Store  repository.Store
	Bus    bus.Bus
	Ingest *ingest.Service
	Hub    *collab.Hub
	Health HealthChecker
	Logger *slog.Logger
}

// NewRouter builds the gin engine with all routes attached.
func NewRouter(deps Deps, cfg *common.Config) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.HTTP.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"}
	router.Use(cors.New(corsConfig))

	health := &HealthHandler{Checker: deps.Health, Logger: logger}
	router.GET("/health", health.Check)

	upload := &UploadHandler{Service: deps.Ingest, Logger: logger, MaxBytes: cfg.Upload.MaxBytes}
	progress := &ProgressHandler{
		Store:       deps.Store,
		Bus:         deps.Bus,
		Logger:      logger,
		Heartbeat:   cfg.Stream.HeartbeatInterval,
		MaxLifetime: cfg.Stream.MaxLifetime,
		RetryMillis: cfg.Stream.RetryMillis,
	}

	authed := router.Group("")
	authed.Use(RequireIdentity())
	{
		authed.POST("/documents/upload", upload.Upload)
		authed.GET("/documents/:jobID/progress", progress.Stream)
		if deps.Hub != nil {
			authed.GET("/collab", gin.WrapF(deps.Hub.ServeHTTP))
		}
	}

	return router
}

// RequireIdentity trusts the authenticating gateway in front of this
// service and reads the principal from X-User-ID. Token verification is
// that gateway's concern, not ours.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if raw == "" {
			abortJSON(c, http.StatusUnauthorized, "authentication required")
			return
		}
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "invalid identity")
			return
		}
		c.Set(ownerKey, ownerID)
		c.Next()
	}
}

func ownerFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ownerKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// errorBody is the JSON error envelope shared by every endpoint.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}
