package offer

import "recipemarket/internal/domain"

var (
	ErrOfferNotFound = domain.NewError(domain.ErrNotFound, "OFFER_NOT_FOUND", "offer not found")
	ErrOrderNotFound = domain.NewError(domain.ErrNotFound, "ORDER_NOT_FOUND", "order not found")
	// ErrOfferNotClaimable covers missing, unavailable and already claimed
	// offers alike.
	ErrOfferNotClaimable = domain.NewError(domain.ErrNotFound, "OFFER_NOT_AVAILABLE", "offer not found or no longer available")
	ErrDuplicateOffer    = domain.NewError(domain.ErrConflict, "OFFER_EXISTS", "company already has an open offer for this recipe")
	ErrOfferClaimed      = domain.NewError(domain.ErrForbidden, "OFFER_CLAIMED", "claimed offers cannot be deleted")
	ErrConcurrentUpdate  = domain.NewError(domain.ErrConflict, "CONCURRENT_UPDATE", "record was modified concurrently, retry")
)
