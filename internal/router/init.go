package router

import (
	"github.com/oksasatya/giftlink/internal/application"
	"github.com/oksasatya/giftlink/internal/container"
	"github.com/oksasatya/giftlink/internal/infrastructure/cache"
	"github.com/oksasatya/giftlink/internal/infrastructure/elastic"
	mongoinfra "github.com/oksasatya/giftlink/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/giftlink/internal/interface/http"
	"github.com/oksasatya/giftlink/internal/router/modules"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

// Deps are the HTTP handlers the API modules route to.
type Deps struct {
	Auth   *handlers.AuthHandler
	Gifts  *handlers.GiftHandler
	Search *handlers.SearchHandler
}

// BuildDeps wires repositories, services and handlers from the container.
func BuildDeps(c *container.Container) Deps {
	cfg := c.Config
	userRepo := mongoinfra.NewUserRepository(c.DB)
	giftRepo := cache.NewGiftRepository(mongoinfra.NewGiftRepository(c.DB), c.Redis, cfg.GiftCacheTTL, c.Logger)

	authSvc := application.NewAuthService(userRepo, c.JWT, c.Logger, cfg.BcryptCost)
	if c.RabbitPub != nil {
		authSvc.WithWelcomeEmail(c.RabbitPub, cfg.CompanyName, cfg.AppURL)
	}

	giftSvc := application.NewGiftService(giftRepo, c.Logger)
	searchSvc := application.NewSearchService(giftRepo, c.Logger)
	if c.ES != nil {
		idx := elastic.NewGiftIndexer(c.ES, cfg.ESGiftsIndex)
		giftSvc.Indexer = idx
		searchSvc.Indexer = idx
	}
	if c.GCS != nil && cfg.GCSBucket != "" {
		giftSvc.Images = helpers.NewGCSUploader(c.GCS, cfg.GCSBucket)
	}

	return Deps{
		Auth:   handlers.NewAuthHandler(authSvc, c.Logger),
		Gifts:  handlers.NewGiftHandler(giftSvc, c.Logger),
		Search: handlers.NewSearchHandler(searchSvc, c.Logger),
	}
}

// InitModules registers every API module. Call once at startup.
func InitModules(r *Registry, c *container.Container, d Deps) {
	r.Add(
		modules.NewAuthModule(d.Auth, c.JWT, c.Redis),
		modules.NewGiftModule(d.Gifts, c.JWT, c.Redis),
		modules.NewSearchModule(d.Search, c.Redis),
	)
	if c.Config != nil && c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
