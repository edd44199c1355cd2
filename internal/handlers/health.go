package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accsvc/internal/store"
)

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func Health(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := st.Load(); err != nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store error"})
			return
		}
		c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	}
}
