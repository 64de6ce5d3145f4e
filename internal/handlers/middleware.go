package handlers

import (
	"net/http"
	"strings"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/services"
	"drone-survey-service/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextClaimsKey = "claims"
	ContextUserIDKey = "userID"
)

type Middleware struct {
	tokenService *services.TokenService
}

func NewMiddleware(tokenService *services.TokenService) *Middleware {
	return &Middleware{
		tokenService: tokenService,
	}
}

// RequireAuth validates the bearer token on protected routes. A missing
// credential is 401; a present but expired or invalid one is 403. On
// success the decoded claims and normalized user id are attached to the
// request context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.CreateErrorResponse("MISSING_TOKEN", "authorization header required"))
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := m.tokenService.VerifyAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.CreateErrorResponse(apperr.CodeOf(err), apperr.MessageOf(err)))
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// ClaimsFromContext returns the decoded claims set by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}
