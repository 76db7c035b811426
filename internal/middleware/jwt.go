package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bookies/internal/pkg/errcode"
	"github.com/xxxsen/bookies/internal/pkg/jwt"
	"github.com/xxxsen/bookies/internal/pkg/response"
)

const (
	ContextClaimsKey    = "claims"
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
)

type TokenVerifier interface {
	VerifyToken(token string) (*jwt.Claims, error)
}

func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusBadRequest, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusBadRequest, errcode.ErrUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		claims, err := verifier.VerifyToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusBadRequest, errcode.ErrUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserEmailKey, claims.Email)
		c.Next()
	}
}

// Claims returns the verified token claims, or nil outside JWTAuth.
func Claims(c *gin.Context) *jwt.Claims {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*jwt.Claims)
	return claims
}
