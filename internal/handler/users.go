package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
	"github.com/bookstore/backend/internal/service"
)

type UsersHandler struct {
	svc *service.UserService
}

func NewUsersHandler(svc *service.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param skip query int false "Records to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(10)
// @Param search query string false "Substring match against username or email"
// @Success 200 {object} model.UserListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users [get]
func (h *UsersHandler) List(c *gin.Context) {
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

	page := query.NewPage(skip, limit)
	filter := query.UserFilter{Search: c.Query("search")}

	users, total, err := h.svc.List(c.Request.Context(), page, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]model.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, users[i].ToResponse())
	}
	c.JSON(http.StatusOK, model.UserListResponse{Items: items, Total: total})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UsersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, service.ErrNotFound)
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CreateUserRequest true "New user"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/v1/users [post]
func (h *UsersHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.ToResponse())
}

// Update godoc
// @Summary Update a user
// @Description Partial update; only provided fields change.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body model.UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [put]
func (h *UsersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, service.ErrNotFound)
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToResponse())
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/users/{id} [delete]
func (h *UsersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, service.ErrNotFound)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
