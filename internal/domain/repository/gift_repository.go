package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/giftlink/internal/domain/entity"
)

// GiftRepository defines persistence operations on the gifts collection.
type GiftRepository interface {
	Create(ctx context.Context, g *entity.Gift) error
	GetByID(ctx context.Context, id bson.ObjectID) (*entity.Gift, error)
	Find(ctx context.Context, f entity.GiftFilter) ([]entity.Gift, error)
	SetImage(ctx context.Context, id bson.ObjectID, url string) error
}
