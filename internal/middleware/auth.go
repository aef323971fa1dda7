package middleware

import (
	"net/http"
	"strings"

	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/jwt"
	"recipemarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores the subject id and role in
// the gin context. Nothing is cached between requests.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(token))
		if err != nil || !domain.Role(claims.Role).Valid() {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// PrincipalFrom returns the caller resolved by JWTAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, error) {
	id := c.GetInt64(ctxUserID)
	role := domain.Role(c.GetString(ctxRole))
	if id <= 0 || !role.Valid() {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return domain.Principal{SubjectID: id, Role: role}, nil
}
