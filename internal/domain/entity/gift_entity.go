package entity

import "go.mongodb.org/mongo-driver/v2/bson"

// Gift is a donated item listed on the marketplace.
type Gift struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Category    string        `bson:"category" json:"category"`
	Condition   string        `bson:"condition" json:"condition"`
	PostedBy    string        `bson:"posted_by,omitempty" json:"posted_by,omitempty"`
	Zipcode     string        `bson:"zipcode,omitempty" json:"zipcode,omitempty"`
	DateAdded   int64         `bson:"date_added" json:"date_added"`
	AgeDays     int           `bson:"age_days" json:"age_days"`
	AgeYears    float64       `bson:"age_years" json:"age_years"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
}

// GiftFilter is a conjunction of optional gift predicates.
// Empty strings and a nil MaxAgeYears mean the clause is absent.
type GiftFilter struct {
	NameContains string
	Category     string
	Condition    string
	MaxAgeYears  *int
}

// IsEmpty reports whether the filter matches every gift.
func (f GiftFilter) IsEmpty() bool {
	return f.NameContains == "" && f.Category == "" && f.Condition == "" && f.MaxAgeYears == nil
}
