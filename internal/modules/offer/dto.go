package offer

import (
	"time"

	"recipemarket/internal/domain"

	"github.com/shopspring/decimal"
)

type CreateOfferRequest struct {
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Available   *bool            `json:"available,omitempty"`
	Description string           `json:"description,omitempty"`
}

// UpdateOfferRequest: nil fields are left unchanged.
type UpdateOfferRequest struct {
	Price       *decimal.Decimal `json:"price,omitempty"`
	Available   *bool            `json:"available,omitempty"`
	Description *string          `json:"description,omitempty"`
}

type ClaimRequest struct {
	OfferID int64 `json:"offerId" validate:"required,gt=0"`
}

type RateRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

const (
	KindOffer = "offer"
	KindOrder = "order"
)

// OfferOrderResponse is the flat view of an offer or an order. Absent
// associations render as null.
type OfferOrderResponse struct {
	ID            int64              `json:"id"`
	Kind          string             `json:"kind"`
	Status        domain.OfferStatus `json:"status"`
	Price         string             `json:"price"`
	Available     bool               `json:"available"`
	Description   string             `json:"description"`
	RecipeID      int64              `json:"recipe_id"`
	RecipeName    *string            `json:"recipe_name"`
	CompanyID     int64              `json:"company_id"`
	CompanyName   *string            `json:"company_name"`
	ClientID      *int64             `json:"client_id"`
	ClientName    *string            `json:"client_name"`
	ClaimedAt     *time.Time         `json:"claimed_at"`
	Rating        *int               `json:"rating"`
	RatingComment *string            `json:"rating_comment"`
	RatedAt       *time.Time         `json:"rated_at"`
	CreatedAt     time.Time          `json:"created_at"`
}

func ToOfferOrderResponse(row *domain.OfferOrder) OfferOrderResponse {
	resp := OfferOrderResponse{
		ID:            row.ID,
		Kind:          KindOffer,
		Status:        row.Status,
		Price:         row.Price.StringFixed(2),
		Available:     row.Available,
		Description:   row.Description,
		RecipeID:      row.RecipeID,
		CompanyID:     row.CompanyID,
		ClientID:      row.ClientID,
		ClaimedAt:     row.ClaimedAt,
		Rating:        row.Rating,
		RatingComment: row.RatingComment,
		RatedAt:       row.RatedAt,
		CreatedAt:     row.CreatedAt,
	}
	if !row.IsOffer() {
		resp.Kind = KindOrder
	}
	if row.Recipe != nil {
		name := row.Recipe.Name
		resp.RecipeName = &name
	}
	if row.Company != nil {
		name := row.Company.Name
		resp.CompanyName = &name
	}
	if row.Client != nil {
		name := row.Client.Name
		resp.ClientName = &name
	}
	return resp
}

func ToOfferOrderList(rows []domain.OfferOrder) []OfferOrderResponse {
	items := make([]OfferOrderResponse, len(rows))
	for i := range rows {
		items[i] = ToOfferOrderResponse(&rows[i])
	}
	return items
}
