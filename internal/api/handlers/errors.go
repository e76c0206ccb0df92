package handlers

import (
	"kelly-montecarlo/internal/api/models"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
