package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/plumecms/plume-backend/pkg/jwt"
)

// JWTAuth JWT authentication middleware. The verified actor id and role set
// are stored in the context as plain values; nothing downstream reads the
// token again.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header")
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired")
			} else {
				common.ErrorResponse(c, 401, "Invalid token")
			}
			c.Abort()
			return
		}

		// 4. Store actor info in context
		roles := make([]domain.Role, len(claims.Roles))
		for i, r := range claims.Roles {
			roles[i] = domain.Role(r)
		}
		c.Set("actor", domain.Actor{ID: claims.ActorID, Roles: roles})

		c.Next()
	}
}

// GetActor extracts the authenticated actor from context
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get("actor")
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
