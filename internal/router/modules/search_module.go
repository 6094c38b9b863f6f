package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/giftlink/internal/interface/http"
	"github.com/oksasatya/giftlink/internal/interface/middleware"
)

// SearchModule routes: GET /api/search, GET /api/search/text
type SearchModule struct {
	Handler *handlers.SearchHandler
	Redis   *redis.Client
}

func NewSearchModule(h *handlers.SearchHandler, rdb *redis.Client) *SearchModule {
	return &SearchModule{Handler: h, Redis: rdb}
}

func (m *SearchModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/search", rl, m.Handler.Search)
	rg.GET("/search/text", rl, m.Handler.Text)
}
