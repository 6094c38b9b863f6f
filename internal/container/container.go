package container

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/giftlink/config"
	"github.com/oksasatya/giftlink/pkg/helpers"
)

// Container owns the process-wide clients built at startup. Optional
// collaborators (Redis, GCS, Elasticsearch, RabbitMQ) are nil when unconfigured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Mongo *mongo.Client
	DB    *mongo.Database

	Redis     *redis.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	RabbitPub *helpers.RabbitPublisher

	JWT *helpers.JWTManager
}

// Close releases every client the container holds.
func (c *Container) Close(ctx context.Context) {
	if c.RabbitPub != nil {
		c.RabbitPub.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Mongo != nil {
		if err := c.Mongo.Disconnect(ctx); err != nil {
			helpers.LogError(c.Logger, "mongo disconnect failed", err, nil)
		}
	}
}
