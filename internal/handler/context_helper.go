package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vakildesk/vakildesk-api/internal/middleware"
	"github.com/vakildesk/vakildesk-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
