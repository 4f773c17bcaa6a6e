package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookFilter struct {
	Search   string
	Author   string
	MinPrice *float64
	MaxPrice *float64
}

// Document builds the Mongo filter for a book list request. All provided
// predicates are combined with implicit AND; absent ones are omitted, so
// an empty filter matches every document.
func (f BookFilter) Document() bson.D {
	filter := bson.D{}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: pattern}},
			bson.D{{Key: "author", Value: pattern}},
		}})
	}

	if f.Author != "" {
		filter = append(filter, bson.E{Key: "author", Value: f.Author})
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		bounds := bson.D{}
		if f.MinPrice != nil {
			bounds = append(bounds, bson.E{Key: "$gte", Value: *f.MinPrice})
		}
		if f.MaxPrice != nil {
			bounds = append(bounds, bson.E{Key: "$lte", Value: *f.MaxPrice})
		}
		filter = append(filter, bson.E{Key: "price", Value: bounds})
	}

	return filter
}
