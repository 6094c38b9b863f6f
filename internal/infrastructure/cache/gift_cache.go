package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	"github.com/oksasatya/giftlink/internal/domain/repository"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

const giftKeyPrefix = "gift:"

// GiftRepository is a cache-aside decorator caching gifts by id in Redis.
// Cache errors are logged and never fail the call.
type GiftRepository struct {
	inner  repository.GiftRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewGiftRepository returns inner unchanged when rdb is nil.
func NewGiftRepository(inner repository.GiftRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) repository.GiftRepository {
	if rdb == nil {
		return inner
	}
	return &GiftRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func giftKey(id bson.ObjectID) string { return giftKeyPrefix + id.Hex() }

func (r *GiftRepository) Create(ctx context.Context, g *entity.Gift) error {
	return r.inner.Create(ctx, g)
}

func (r *GiftRepository) GetByID(ctx context.Context, id bson.ObjectID) (*entity.Gift, error) {
	key := giftKey(id)
	var cached entity.Gift
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		helpers.LogError(r.logger, "gift cache read failed", err, logrus.Fields{"key": key})
	}
	if hit {
		return &cached, nil
	}

	g, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, g, r.ttl); err != nil {
		helpers.LogError(r.logger, "gift cache write failed", err, logrus.Fields{"key": key})
	}
	return g, nil
}

func (r *GiftRepository) Find(ctx context.Context, f entity.GiftFilter) ([]entity.Gift, error) {
	return r.inner.Find(ctx, f)
}

func (r *GiftRepository) SetImage(ctx context.Context, id bson.ObjectID, url string) error {
	if err := r.inner.SetImage(ctx, id, url); err != nil {
		return err
	}
	if err := helpers.RedisDel(ctx, r.rdb, giftKey(id)); err != nil {
		helpers.LogError(r.logger, "gift cache invalidate failed", err, logrus.Fields{"gift_id": id.Hex()})
	}
	return nil
}

var _ repository.GiftRepository = (*GiftRepository)(nil)
