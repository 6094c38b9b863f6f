package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	"github.com/oksasatya/giftlink/internal/domain/repository"
)

type GiftRepository struct {
	coll *mongo.Collection
}

func NewGiftRepository(db *mongo.Database) *GiftRepository {
	return &GiftRepository{coll: db.Collection(GiftsCollection)}
}

func (r *GiftRepository) Create(ctx context.Context, g *entity.Gift) error {
	res, err := r.coll.InsertOne(ctx, g)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

func (r *GiftRepository) GetByID(ctx context.Context, id bson.ObjectID) (*entity.Gift, error) {
	g := &entity.Gift{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GiftRepository) Find(ctx context.Context, f entity.GiftFilter) ([]entity.Gift, error) {
	cur, err := r.coll.Find(ctx, FilterDocument(f))
	if err != nil {
		return nil, err
	}
	gifts := []entity.Gift{}
	if err := cur.All(ctx, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *GiftRepository) SetImage(ctx context.Context, id bson.ObjectID, url string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "image", Value: url}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// FilterDocument translates a gift filter into a MongoDB query. Clauses are
// ANDed; an empty filter matches every document.
func FilterDocument(f entity.GiftFilter) bson.D {
	doc := bson.D{}
	if f.NameContains != "" {
		doc = append(doc, bson.E{Key: "name", Value: bson.Regex{
			Pattern: regexp.QuoteMeta(f.NameContains),
			Options: "i",
		}})
	}
	if f.Category != "" {
		doc = append(doc, bson.E{Key: "category", Value: f.Category})
	}
	if f.Condition != "" {
		doc = append(doc, bson.E{Key: "condition", Value: f.Condition})
	}
	if f.MaxAgeYears != nil {
		doc = append(doc, bson.E{Key: "age_years", Value: bson.D{{Key: "$lte", Value: *f.MaxAgeYears}}})
	}
	return doc
}

var _ repository.GiftRepository = (*GiftRepository)(nil)
