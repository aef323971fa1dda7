package favorite

import (
	"net/http"
	"strconv"

	"recipemarket/internal/middleware"
	"recipemarket/internal/pkg/pagination"
	"recipemarket/internal/pkg/response"
	"recipemarket/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает HTTP запросы для избранного
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes регистрирует routes для избранного. Группа уже защищена JWTAuth и ClientOnly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/toggle", h.ToggleFavorite)
		favorites.GET("/:recipeId/check", h.CheckFavorite)
	}
}

// GetFavorites возвращает список избранных рецептов текущего клиента
//
// @Summary Получить список избранных рецептов
// @Tags Favorite
// @Security BearerAuth
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Элементов на страницу" default(20)
// @Success 200 {object} FavoriteListResponse
// @Router /favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	page := pagination.FromQuery(c)

	favorites, total, err := h.service.List(c.Request.Context(), p, page.PerPage, page.Offset())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK,
		ToFavoriteListResponse(favorites, total, page.Page, page.PerPage, page.TotalPages(total)))
}

// ToggleFavorite добавляет рецепт в избранное или убирает его оттуда
//
// @Summary Переключить избранное
// @Tags Favorite
// @Security BearerAuth
// @Param request body ToggleFavoriteRequest true "ID рецепта"
// @Success 201 {object} CheckFavoriteResponse "Рецепт добавлен в избранное"
// @Success 204 "Рецепт удалён из избранного"
// @Failure 404 {object} ErrorResponse "Рецепт не найден"
// @Router /favorites/toggle [post]
func (h *Handler) ToggleFavorite(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	added, err := h.service.Toggle(c.Request.Context(), p, req.RecipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if !added {
		c.Status(http.StatusNoContent)
		return
	}
	response.Success(c, http.StatusCreated, CheckFavoriteResponse{RecipeID: req.RecipeID, IsFavorite: true})
}

// CheckFavorite проверяет, находится ли рецепт в избранном клиента
//
// @Summary Проверить находится ли рецепт в избранном
// @Tags Favorite
// @Security BearerAuth
// @Param recipeId path int64 true "ID рецепта"
// @Success 200 {object} CheckFavoriteResponse
// @Router /favorites/{recipeId}/check [get]
func (h *Handler) CheckFavorite(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	recipeID, err := strconv.ParseInt(c.Param("recipeId"), 10, 64)
	if err != nil || recipeID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid recipe ID")
		return
	}

	isFavorite, err := h.service.IsFavorite(c.Request.Context(), p, recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CheckFavoriteResponse{RecipeID: recipeID, IsFavorite: isFavorite})
}
