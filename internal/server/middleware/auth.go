package middleware

import (
	"context"
	"errors"
	"fmt"

	"community-service/internal/ports/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const principalContextKey = contextKey("principal")

// JWTAuth extracts the already-authenticated principal {id, role} from the
// bearer token; token issuance lives in the identity service
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization token required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = models.RoleUser
		}

		principal := models.Principal{ID: uint(sub), Role: role}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// WithPrincipal returns a context carrying the principal; request handling
// outside the middleware (tests, internal calls) uses it to satisfy
// GetPrincipalFromContext
func WithPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// GetPrincipalFromContext retrieves the authenticated principal from context
func GetPrincipalFromContext(ctx context.Context) (models.Principal, error) {
	principal, ok := ctx.Value(principalContextKey).(models.Principal)
	if !ok {
		return models.Principal{}, errors.New("principal not found in context")
	}
	return principal, nil
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && bearerToken[:7] == "Bearer " {
		return bearerToken[7:]
	}
	return ""
}
