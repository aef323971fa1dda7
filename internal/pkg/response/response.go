package response

import (
	"errors"
	"net/http"

	"recipemarket/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request correlation id.
const RequestIDKey = "request_id"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError writes the error envelope; callers in middleware abort afterwards.
func CustomError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
}

// FromError maps an error from the service layer onto the error envelope.
// Unknown errors become a 500 that only exposes the request id; the error is
// attached to the gin context so the logger middleware records it.
func FromError(c *gin.Context, err error) {
	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":       code,
				"message":    message,
				"request_id": c.GetString(RequestIDKey),
			},
		})
		return
	}
	Error(c, status, code, message)
}

func classify(err error) (int, string, string) {
	status := StatusOf(err)

	var appErr *domain.Error
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		return status, appErr.Code, appErr.Message
	}

	switch status {
	case http.StatusUnauthorized:
		return status, "UNAUTHORIZED", "Authentication required"
	case http.StatusForbidden:
		return status, "FORBIDDEN", "Access denied"
	case http.StatusNotFound:
		return status, "NOT_FOUND", "Resource not found"
	case http.StatusConflict:
		return status, "CONFLICT", "Conflicting update"
	case http.StatusBadRequest:
		if errors.Is(err, domain.ErrInvalidState) {
			return status, "INVALID_STATE", "Operation not allowed in the current state"
		}
		return status, "VALIDATION_ERROR", "Invalid input"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error"
}

// StatusOf returns the HTTP status for an error kind.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
