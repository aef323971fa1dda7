package offer

import (
	"net/http"
	"strconv"

	"recipemarket/internal/middleware"
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
	v1.GET("/offers/by-recipe/:recipeId", h.ListByRecipe)
}

// RegisterProtectedRoutes mounts routes open to any authenticated caller.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/orders/:id", h.Get)
}

// RegisterCompanyRoutes expects a group guarded by JWTAuth and CompanyOnly.
func (h *Handler) RegisterCompanyRoutes(company *gin.RouterGroup) {
	company.POST("/offers/:recipeId", h.CreateOffer)
	company.GET("/offers/mine", h.ListMine)
	company.PUT("/offers/:id", h.UpdateOffer)
	company.DELETE("/offers/:id", h.DeleteOffer)
	company.PUT("/orders/:id/complete", h.Complete)
}

// RegisterClientRoutes expects a group guarded by JWTAuth and ClientOnly.
func (h *Handler) RegisterClientRoutes(client *gin.RouterGroup) {
	client.POST("/orders", h.Claim)
	client.GET("/orders/mine", h.ListMyOrders)
	client.PUT("/orders/:id/rate", h.Rate)
}

// @Router /offers/by-recipe/{recipeId} [get]
func (h *Handler) ListByRecipe(c *gin.Context) {
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}

	rows, err := h.service.ListAvailableByRecipe(c.Request.Context(), recipeID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offers": ToOfferOrderList(rows)})
}

// @Router /offers/{recipeId} [post]
func (h *Handler) CreateOffer(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	recipeID, ok := pathID(c, "recipeId")
	if !ok {
		return
	}

	var req CreateOfferRequest
	if !bind(c, &req) {
		return
	}

	row, err := h.service.CreateOffer(c.Request.Context(), p, recipeID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"offer": ToOfferOrderResponse(row)})
}

// @Router /offers/mine [get]
func (h *Handler) ListMine(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rows, err := h.service.ListCompanyOfferOrders(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offers": ToOfferOrderList(rows)})
}

// @Router /offers/{id} [put]
func (h *Handler) UpdateOffer(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOfferRequest
	if !bind(c, &req) {
		return
	}

	row, err := h.service.UpdateOffer(c.Request.Context(), p, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": ToOfferOrderResponse(row)})
}

// @Router /offers/{id} [delete]
func (h *Handler) DeleteOffer(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOffer(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router /orders [post]
func (h *Handler) Claim(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req ClaimRequest
	if !bind(c, &req) {
		return
	}

	row, err := h.service.Claim(c.Request.Context(), p, req.OfferID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": ToOfferOrderResponse(row)})
}

// @Router /orders/mine [get]
func (h *Handler) ListMyOrders(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rows, err := h.service.ListClientOrders(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": ToOfferOrderList(rows)})
}

// @Router /orders/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	row, err := h.service.GetByID(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": ToOfferOrderResponse(row)})
}

// @Router /orders/{id}/complete [put]
func (h *Handler) Complete(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Complete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Router /orders/{id}/rate [put]
func (h *Handler) Rate(c *gin.Context) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RateRequest
	if !bind(c, &req) {
		return
	}

	if err := h.service.Rate(c.Request.Context(), p, id, req); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
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
