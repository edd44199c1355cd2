package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index отдаёт стартовую страницу с формами регистрации и входа.
func Index() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	}
}

// Success отдаёт страницу после успешного входа.
func Success() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "success.html", nil)
	}
}
