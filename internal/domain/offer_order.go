package domain

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type OfferStatus string

// Status labels are part of the public contract and stored verbatim.
const (
	StatusOffer     OfferStatus = "Oferta"
	StatusPending   OfferStatus = "Pedido_Pendiente"
	StatusCompleted OfferStatus = "Pedido_Completado"
)

const (
	MaxOfferDescriptionLen = 500
	PriceScale             = 2
	MaxRatingCommentLen    = 500
	MinRating              = 1
	MaxRating              = 5
)

// MaxPrice is the first value that no longer fits numeric(12,2).
var MaxPrice = decimal.New(1, 10)

var (
	ErrNegativePrice       = NewError(ErrInvalidInput, "INVALID_PRICE", "price must not be negative")
	ErrPriceScale          = NewError(ErrInvalidInput, "INVALID_PRICE", "price must have at most 2 decimal places")
	ErrPriceTooLarge       = NewError(ErrInvalidInput, "INVALID_PRICE", "price must be below 10000000000")
	ErrDescriptionTooLong  = NewError(ErrInvalidInput, "DESCRIPTION_TOO_LONG", "offer description is too long")
	ErrRatingOutOfRange    = NewError(ErrInvalidInput, "INVALID_RATING", "rating must be between 1 and 5")
	ErrCommentTooLong      = NewError(ErrInvalidInput, "COMMENT_TOO_LONG", "rating comment is too long")
	ErrOrderNotPending     = NewError(ErrInvalidState, "ORDER_NOT_PENDING", "order is not pending")
	ErrOrderNotCompleted   = NewError(ErrInvalidState, "ORDER_NOT_COMPLETED", "order is not completed")
	ErrOrderAlreadyRated   = NewError(ErrInvalidState, "ORDER_ALREADY_RATED", "order has already been rated")
	ErrOfferAlreadyClaimed = NewError(ErrInvalidState, "OFFER_CLAIMED", "offer has already been claimed")
	ErrCorruptOfferOrder   = NewError(ErrInvalidState, "CORRUPT_RECORD", "offer record is inconsistent")
)

// OfferOrder is the single stored row behind both offers and orders. The
// claiming client reference discriminates the two; use Classify to get the
// typed variant instead of reading the nullable fields directly.
type OfferOrder struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	CompanyID     int64           `json:"company_id" gorm:"not null;index"`
	RecipeID      int64           `json:"recipe_id" gorm:"not null;index"`
	ClientID      *int64          `json:"client_id,omitempty" gorm:"index"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;check:chk_offer_orders_price,price >= 0"`
	Available     bool            `json:"available" gorm:"not null"`
	Description   string          `json:"description" gorm:"size:500"`
	Status        OfferStatus     `json:"status" gorm:"size:32;not null;index"`
	ClaimedAt     *time.Time      `json:"claimed_at,omitempty"`
	Rating        *int            `json:"rating,omitempty" gorm:"check:chk_offer_orders_rating,rating IS NULL OR (rating >= 1 AND rating <= 5)"`
	RatingComment *string         `json:"rating_comment,omitempty" gorm:"size:500"`
	RatedAt       *time.Time      `json:"rated_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations, loaded for projections only
	Company *Company `json:"-" gorm:"foreignKey:CompanyID"`
	Recipe  *Recipe  `json:"-" gorm:"foreignKey:RecipeID"`
	Client  *Client  `json:"-" gorm:"foreignKey:ClientID"`
}

func (OfferOrder) TableName() string { return "offer_orders" }

// Listing is either *Offer or *Order.
type Listing interface {
	Terms() OfferTerms
	isListing()
}

// OfferTerms are the fields shared by both variants.
type OfferTerms struct {
	ID          int64
	CompanyID   int64
	RecipeID    int64
	Price       decimal.Decimal
	Available   bool
	Description string
}

// Offer is an unclaimed record.
type Offer struct {
	OfferTerms
}

// Rating is the one-time feedback left by the claiming client.
type Rating struct {
	Value   int
	Comment string
	RatedAt time.Time
}

// Order is a claimed record.
type Order struct {
	OfferTerms
	ClientID  int64
	ClaimedAt time.Time
	Status    OfferStatus
	Rating    *Rating
}

func (o *Offer) Terms() OfferTerms { return o.OfferTerms }
func (o *Order) Terms() OfferTerms { return o.OfferTerms }
func (*Offer) isListing()          {}
func (*Order) isListing()          {}

// NewOffer validates the terms of a fresh offer.
func NewOffer(companyID, recipeID int64, price decimal.Decimal, available bool, description string) (*Offer, error) {
	o := &Offer{OfferTerms: OfferTerms{
		CompanyID:   companyID,
		RecipeID:    recipeID,
		Price:       price,
		Available:   available,
		Description: description,
	}}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Offer) validate() error {
	if o.Price.IsNegative() {
		return ErrNegativePrice
	}
	if o.Price.Exponent() < -PriceScale && !o.Price.Equal(o.Price.Truncate(PriceScale)) {
		return ErrPriceScale
	}
	if o.Price.GreaterThanOrEqual(MaxPrice) {
		return ErrPriceTooLarge
	}
	if utf8.RuneCountInString(o.Description) > MaxOfferDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// OfferEdit holds the optional field changes of an offer edit.
type OfferEdit struct {
	Price       *decimal.Decimal
	Available   *bool
	Description *string
}

// Edit applies e. Only unclaimed offers are editable, which the type
// already guarantees; the store re-checks it at write time.
func (o *Offer) Edit(e OfferEdit) error {
	next := *o
	if e.Price != nil {
		next.Price = *e.Price
	}
	if e.Available != nil {
		next.Available = *e.Available
	}
	if e.Description != nil {
		next.Description = *e.Description
	}
	if err := next.validate(); err != nil {
		return err
	}
	*o = next
	return nil
}

// Complete moves a pending order to completed.
func (o *Order) Complete() error {
	if o.Status != StatusPending {
		return ErrOrderNotPending
	}
	o.Status = StatusCompleted
	return nil
}

// Rate records the client's rating. It can happen once, after completion.
func (o *Order) Rate(value int, comment string, at time.Time) error {
	if err := ValidateRating(value, comment); err != nil {
		return err
	}
	if o.Status != StatusCompleted {
		return ErrOrderNotCompleted
	}
	if o.IsRated() {
		return ErrOrderAlreadyRated
	}
	o.Rating = &Rating{Value: value, Comment: comment, RatedAt: at}
	return nil
}

func (o *Order) IsRated() bool { return o.Rating != nil }

// ValidateRating checks the rating input independent of order state.
func ValidateRating(value int, comment string) error {
	if value < MinRating || value > MaxRating {
		return ErrRatingOutOfRange
	}
	if utf8.RuneCountInString(comment) > MaxRatingCommentLen {
		return ErrCommentTooLong
	}
	return nil
}

// Classify returns the typed variant of the row and rejects rows that break
// the offer/order invariants.
func (r *OfferOrder) Classify() (Listing, error) {
	terms := OfferTerms{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		RecipeID:    r.RecipeID,
		Price:       r.Price,
		Available:   r.Available,
		Description: r.Description,
	}

	if r.ClientID == nil {
		if r.Status != StatusOffer || r.ClaimedAt != nil || r.Rating != nil || r.RatingComment != nil || r.RatedAt != nil {
			return nil, ErrCorruptOfferOrder
		}
		return &Offer{OfferTerms: terms}, nil
	}

	if r.ClaimedAt == nil || (r.Status != StatusPending && r.Status != StatusCompleted) {
		return nil, ErrCorruptOfferOrder
	}
	order := &Order{
		OfferTerms: terms,
		ClientID:   *r.ClientID,
		ClaimedAt:  *r.ClaimedAt,
		Status:     r.Status,
	}
	if r.Rating != nil {
		if r.Status != StatusCompleted || r.RatedAt == nil {
			return nil, ErrCorruptOfferOrder
		}
		rating := &Rating{Value: *r.Rating, RatedAt: *r.RatedAt}
		if r.RatingComment != nil {
			rating.Comment = *r.RatingComment
		}
		order.Rating = rating
	} else if r.RatingComment != nil || r.RatedAt != nil {
		return nil, ErrCorruptOfferOrder
	}
	return order, nil
}

// IsOffer reports whether the row is still unclaimed.
func (r *OfferOrder) IsOffer() bool { return r.ClientID == nil }

// Apply writes a variant back into the row. Identity and the company and
// recipe references are never taken from l.
func (r *OfferOrder) Apply(l Listing) {
	t := l.Terms()
	r.Price = t.Price
	r.Available = t.Available
	r.Description = t.Description

	switch v := l.(type) {
	case *Offer:
		r.ClientID = nil
		r.ClaimedAt = nil
		r.Status = StatusOffer
		r.Rating = nil
		r.RatingComment = nil
		r.RatedAt = nil
	case *Order:
		clientID := v.ClientID
		claimedAt := v.ClaimedAt
		r.ClientID = &clientID
		r.ClaimedAt = &claimedAt
		r.Status = v.Status
		if v.Rating == nil {
			r.Rating = nil
			r.RatingComment = nil
			r.RatedAt = nil
			return
		}
		value := v.Rating.Value
		ratedAt := v.Rating.RatedAt
		r.Rating = &value
		r.RatedAt = &ratedAt
		r.RatingComment = nil
		if v.Rating.Comment != "" {
			comment := v.Rating.Comment
			r.RatingComment = &comment
		}
	}
}

// NewOfferOrder builds the row for a fresh offer.
func NewOfferOrder(o *Offer) *OfferOrder {
	r := &OfferOrder{
		CompanyID: o.CompanyID,
		RecipeID:  o.RecipeID,
	}
	r.Apply(o)
	return r
}
