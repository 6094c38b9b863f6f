package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field
//
// Field names follow the documents already stored in the users collection.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	FirstName string        `bson:"firstName"`
	LastName  string        `bson:"lastName"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt,omitempty"`
}
