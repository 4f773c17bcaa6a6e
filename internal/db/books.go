package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
)

const booksCollection = "books"

// Mongo holds the books collection handle.
type Mongo struct {
	Books *mongo.Collection
}

func NewMongo(database *mongo.Database) *Mongo {
	return &Mongo{Books: database.Collection(booksCollection)}
}

func (db *Mongo) CreateBook(ctx context.Context, book model.Book) (*model.Book, error) {
	now := time.Now().UTC()
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := db.Books.InsertOne(ctx, book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (db *Mongo) GetBookByID(ctx context.Context, id primitive.ObjectID) (*model.Book, error) {
	var book model.Book
	if err := db.Books.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns one page of books plus the total count for the same
// filter, ordered by _id so pagination stays deterministic.
func (db *Mongo) ListBooks(ctx context.Context, page query.Page, filter query.BookFilter) ([]model.Book, int64, error) {
	doc := filter.Document()

	total, err := db.Books.CountDocuments(ctx, doc)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	cursor, err := db.Books.Find(ctx, doc, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	books := []model.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// UpdateBook applies the given $set fields and returns the updated
// document. The caller is responsible for including updated_at.
func (db *Mongo) UpdateBook(ctx context.Context, id primitive.ObjectID, set bson.D) (*model.Book, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book model.Book
	err := db.Books.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (db *Mongo) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	res, err := db.Books.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
