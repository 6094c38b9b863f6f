package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/giftlink/internal/interface/middleware"
	"github.com/oksasatya/giftlink/pkg/response"
)

// EngineOptions configures the global middleware chain.
type EngineOptions struct {
	CORSOrigins []string
	AccessLog   bool
}

// NewEngine builds a gin engine with recovery, request ids, real-IP
// detection, CORS and an optional access log.
func NewEngine(opts EngineOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "email"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if opts.AccessLog {
		r.Use(gin.Logger())
	}
	r.NoRoute(func(c *gin.Context) {
		response.Abort(c, http.StatusNotFound, "route not found", nil)
	})
	return r
}
