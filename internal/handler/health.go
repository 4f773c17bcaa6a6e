package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookstore/backend/internal/config"
	"github.com/bookstore/backend/internal/model"
)

// 헬스체크 엔드포인트
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:  "healthy",
		Service: config.AppName,
		Version: config.Version,
	})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Message: "Welcome to " + config.AppName,
		Version: config.Version,
	})
}
