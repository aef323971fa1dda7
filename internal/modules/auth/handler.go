package auth

import (
	"net/http"

	"recipemarket/internal/middleware"
	"recipemarket/internal/pkg/response"
	"recipemarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts /auth; mw runs before every auth handler.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, mw ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth", mw...)
	{
		authGroup.POST("/register/client", h.RegisterClient)
		authGroup.POST("/register/company", h.RegisterCompany)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/users/me", h.GetMe)
}

// RegisterClient регистрирует нового клиента и возвращает JWT токен.
// @Router /auth/register/client [POST]
func (h *Handler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.RegisterClient(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// RegisterCompany регистрирует новую компанию и возвращает JWT токен.
// @Router /auth/register/company [POST]
func (h *Handler) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// @Router /auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// @Router /users/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	profile, err := h.service.Me(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": profile})
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return false
	}
	return true
}
