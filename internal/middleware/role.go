package middleware

import (
	"net/http"

	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if domain.Role(role.(string)) != requiredRole {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

func ClientOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleClient)
}

func CompanyOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleCompany)
}
