package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/documents"
	"gradmatch-backend/internal/matchruns"
	"gradmatch-backend/internal/profile"
	"gradmatch-backend/internal/shared/config"
	"gradmatch-backend/internal/shared/metrics"
	"gradmatch-backend/internal/shared/server/middleware"
	"gradmatch-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers into route registration.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	ProfileHandler   *profile.Handler
	MatchRunsHandler *matchruns.Handler
	CatalogHandler   *catalog.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"MATCH_START": {Rate: 0.5, Burst: 5},
				"UPLOAD":      {Rate: 1, Burst: 10},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	registerMeRoutes(api)
	if deps.DocumentsHandler != nil {
		deps.DocumentsHandler.RegisterRoutes(api)
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.RegisterRoutes(api)
	}
	if deps.MatchRunsHandler != nil {
		deps.MatchRunsHandler.RegisterRoutes(api)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup buckets the write-heavy endpoints; reads stay unlimited.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := c.Request.URL.Path
	if strings.HasSuffix(path, "/match") {
		return "MATCH_START"
	}
	if strings.HasSuffix(path, "/documents") {
		return "UPLOAD"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
