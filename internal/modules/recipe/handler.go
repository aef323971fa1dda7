package recipe

import (
	"net/http"
	"strconv"

	"recipemarket/internal/middleware"
	"recipemarket/internal/pkg/pagination"
	"recipemarket/internal/pkg/response"
	"recipemarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/recipes", h.List)
	v1.GET("/recipes/:id", h.Get)
}

// RegisterClientRoutes expects a group already guarded by JWTAuth and ClientOnly.
func (h *Handler) RegisterClientRoutes(client *gin.RouterGroup) {
	client.GET("/recipes/mine", h.ListMine)
	client.POST("/recipes", h.Create)
	client.PUT("/recipes/:id", h.Update)
	client.DELETE("/recipes/:id", h.Delete)
}

// @Router /recipes [get]
func (h *Handler) List(c *gin.Context) {
	page := pagination.FromQuery(c)

	recipes, total, err := h.service.List(c.Request.Context(), page.PerPage, page.Offset())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, RecipeListResponse{
		Recipes:    ToRecipeList(recipes),
		Total:      total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages(total),
	})
}

// @Router /recipes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": ToRecipeResponse(r)})
}

// @Router /recipes/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	recipes, err := h.service.ListMine(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipes": ToRecipeList(recipes)})
}

// @Router /recipes [post]
func (h *Handler) Create(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req CreateRecipeRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"recipe": ToRecipeResponse(r)})
}

// @Router /recipes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.service.Update(c.Request.Context(), p, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recipe": ToRecipeResponse(r)})
}

// @Router /recipes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return 0, false
	}
	return id, true
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
