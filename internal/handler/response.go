package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/service"
)

// writeError maps service errors onto the API error body. Every error
// response carries a {"detail": "..."} payload.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid request"})
	case errors.Is(err, service.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "could not validate credentials"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Detail: "resource already exists"})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
	}
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: detail})
}

// intQuery parses an optional integer query parameter. Malformed values
// are a validation error; range handling is left to query.NewPage.
func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	val := c.Query(name)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, service.ErrInvalidInput
	}
	return n, nil
}

func floatQuery(c *gin.Context, name string) (*float64, error) {
	val := c.Query(name)
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &f, nil
}
