package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bunkerpal-api/internal/middleware"
	"github.com/noah-isme/bunkerpal-api/internal/models"
	appErrors "github.com/noah-isme/bunkerpal-api/pkg/errors"
	"github.com/noah-isme/bunkerpal-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requireUser writes UNAUTHORIZED and returns false when no user is attached.
func requireUser(c *gin.Context) (string, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return claims.UserID, true
}
