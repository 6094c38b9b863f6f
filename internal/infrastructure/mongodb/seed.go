package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/giftlink/internal/domain/entity"
)

// SeedGifts inserts gifts only when the collection is empty and reports how
// many documents were written.
func SeedGifts(ctx context.Context, db *mongo.Database, gifts []entity.Gift) (int, error) {
	coll := db.Collection(GiftsCollection)
	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	if n > 0 || len(gifts) == 0 {
		return 0, nil
	}
	docs := make([]any, 0, len(gifts))
	for i := range gifts {
		docs = append(docs, gifts[i])
	}
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// UpsertUser creates u by email if it does not exist. Existing users are left
// untouched. It reports whether a new document was inserted.
func UpsertUser(ctx context.Context, db *mongo.Database, u *entity.User) (bool, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := db.Collection(UsersCollection).UpdateOne(ctx,
		bson.D{{Key: "email", Value: u.Email}},
		bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "email", Value: u.Email},
			{Key: "firstName", Value: u.FirstName},
			{Key: "lastName", Value: u.LastName},
			{Key: "password", Value: u.Password},
			{Key: "createdAt", Value: u.CreatedAt},
		}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}
