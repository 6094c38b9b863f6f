package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/giftlink/internal/interface/http"
	"github.com/oksasatya/giftlink/internal/interface/middleware"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

// GiftModule routes:
// Public: GET /api/gifts, GET /api/gifts/:id, POST /api/gifts
// Protected: POST /api/gifts/:id/image
type GiftModule struct {
	Handler *handlers.GiftHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewGiftModule(h *handlers.GiftHandler, jwt *helpers.JWTManager, rdb *redis.Client) *GiftModule {
	return &GiftModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *GiftModule) Register(rg *gin.RouterGroup) {
	gifts := rg.Group("/gifts")
	gifts.GET("", m.Handler.List)
	gifts.GET("/:id", m.Handler.Get)
	gifts.POST("", middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIP(), nil), m.Handler.Add)

	gifts.POST("/:id/image",
		middleware.Auth(m.JWT),
		middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.UploadImage,
	)
}
