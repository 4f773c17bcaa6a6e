package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookstore/backend/internal/service"
)

// SetupRoutes wires every endpoint onto the gin engine. Auth routes for
// login/register stay public; everything under /api/v1 besides them sits
// behind the auth guard.
func SetupRoutes(
	router *gin.Engine,
	authService *service.AuthService,
	authHandler *AuthHandler,
	usersHandler *UsersHandler,
	booksHandler *BooksHandler,
	allowedOrigins string,
) {
	if allowedOrigins != "" {
		router.Use(CORSMiddleware(strings.Split(allowedOrigins, ",")))
	}

	router.GET("/", Root)
	router.GET("/health", Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guard := AuthMiddleware(authService)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", guard, authHandler.Logout)
		auth.GET("/me", guard, authHandler.Me)
	}

	users := router.Group("/api/v1/users", guard)
	{
		users.GET("", usersHandler.List)
		users.GET("/:id", usersHandler.Get)
		users.POST("", usersHandler.Create)
		users.PUT("/:id", usersHandler.Update)
		users.DELETE("/:id", usersHandler.Delete)
	}

	books := router.Group("/api/v1/books", guard)
	{
		books.GET("", booksHandler.List)
		books.GET("/:id", booksHandler.Get)
		books.POST("", booksHandler.Create)
		books.PUT("/:id", booksHandler.Update)
		books.DELETE("/:id", booksHandler.Delete)
	}
}
