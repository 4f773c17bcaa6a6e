package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Description   string             `bson:"description,omitempty"`
	ISBN          string             `bson:"isbn,omitempty"`
	PublishedYear int                `bson:"published_year,omitempty"`
	Price         float64            `bson:"price"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	ISBN          string   `json:"isbn"`
	PublishedYear int      `json:"published_year"`
	Price         *float64 `json:"price"`
}

type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Description   *string  `json:"description"`
	ISBN          *string  `json:"isbn"`
	PublishedYear *int     `json:"published_year"`
	Price         *float64 `json:"price"`
}

type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BookListResponse struct {
	Items []BookResponse `json:"items"`
	Total int64          `json:"total"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:            b.ID.Hex(),
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		ISBN:          b.ISBN,
		PublishedYear: b.PublishedYear,
		Price:         b.Price,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
