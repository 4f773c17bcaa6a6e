package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
	"github.com/bookstore/backend/internal/service"
)

type BooksHandler struct {
	svc *service.BookService
}

func NewBooksHandler(svc *service.BookService) *BooksHandler {
	return &BooksHandler{svc: svc}
}

// List godoc
// @Summary List books
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(10)
// @Param search query string false "Substring match against title or author"
// @Param author query string false "Exact author match"
// @Param min_price query number false "Inclusive lower price bound"
// @Param max_price query number false "Inclusive upper price bound"
// @Success 200 {object} model.BookListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/books [get]
func (h *BooksHandler) List(c *gin.Context) {
	skip, err := intQuery(c, "skip", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	minPrice, err := floatQuery(c, "min_price")
	if err != nil {
		writeError(c, err)
		return
	}
	maxPrice, err := floatQuery(c, "max_price")
	if err != nil {
		writeError(c, err)
		return
	}

	page := query.NewPage(skip, limit)
	filter := query.BookFilter{
		Search:   c.Query("search"),
		Author:   c.Query("author"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}

	books, total, err := h.svc.List(c.Request.Context(), page, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]model.BookResponse, 0, len(books))
	for i := range books {
		items = append(items, books[i].ToResponse())
	}
	c.JSON(http.StatusOK, model.BookListResponse{Items: items, Total: total})
}

// Get godoc
// @Summary Get a book by id
// @Tags books
// @Security BearerAuth
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} model.BookResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/books/{id} [get]
func (h *BooksHandler) Get(c *gin.Context) {
	book, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book.ToResponse())
}

// Create godoc
// @Summary Create a book
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateBookRequest true "New book"
// @Success 201 {object} model.BookResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/books [post]
func (h *BooksHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	book, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book.ToResponse())
}

// Update godoc
// @Summary Update a book
// @Description Partial update; only provided fields change.
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body model.UpdateBookRequest true "Fields to update"
// @Success 200 {object} model.BookResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/books/{id} [put]
func (h *BooksHandler) Update(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	book, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, book.ToResponse())
}

// Delete godoc
// @Summary Delete a book
// @Tags books
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/books/{id} [delete]
func (h *BooksHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
