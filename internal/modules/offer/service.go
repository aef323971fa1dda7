package offer

import (
	"context"
	"errors"
	"time"

	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/metrics"
	"recipemarket/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	transitionCreate   = "create"
	transitionEdit     = "edit"
	transitionClaim    = "claim"
	transitionComplete = "complete"
	transitionRate     = "rate"
	transitionDelete   = "delete"
)

// Service runs the offer/order lifecycle: an offer is created by a company,
// claimed once by a client (becoming a pending order), completed by the
// company and finally rated once by the client.
type Service struct {
	repo    OfferOrderRepositoryInterface
	recipes RecipeCheckerInterface
	log     logrus.FieldLogger
	now     func() time.Time
}

func NewService(repo OfferOrderRepositoryInterface, recipes RecipeCheckerInterface, log logrus.FieldLogger) *Service {
	return &Service{
		repo:    repo,
		recipes: recipes,
		log:     log,
		now:     time.Now,
	}
}

func (s *Service) CreateOffer(ctx context.Context, p domain.Principal, recipeID int64, req CreateOfferRequest) (row *domain.OfferOrder, err error) {
	defer func() {
		var id int64
		if row != nil {
			id = row.ID
		}
		s.record(transitionCreate, id, p, "", domain.StatusOffer, err)
	}()

	if !p.Is(domain.RoleCompany) {
		return nil, domain.ErrForbidden
	}
	if req.Price == nil {
		return nil, domain.NewError(domain.ErrInvalidInput, "VALIDATION_ERROR", "price is required")
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	o, err := domain.NewOffer(p.SubjectID, recipeID, *req.Price, available, req.Description)
	if err != nil {
		return nil, err
	}

	created := domain.NewOfferOrder(o)
	if err := s.repo.CreateOffer(ctx, created); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrRecipeNotFound
		case errors.Is(err, domain.ErrConflict):
			return nil, ErrDuplicateOffer
		}
		return nil, err
	}
	return s.load(ctx, created.ID, ErrOfferNotFound)
}

// UpdateOffer edits an unclaimed offer of the calling company. The write is
// conditional on the offer still being unclaimed.
func (s *Service) UpdateOffer(ctx context.Context, p domain.Principal, offerID int64, req UpdateOfferRequest) (*domain.OfferOrder, error) {
	var from domain.OfferStatus
	_, err := s.repo.Mutate(ctx, offerID, func(row *domain.OfferOrder) error {
		from = row.Status
		if err := domain.Authorize(p, row.CompanyID, domain.RoleCompany); err != nil {
			return err
		}
		l, err := row.Classify()
		if err != nil {
			return err
		}
		o, ok := l.(*domain.Offer)
		if !ok {
			return domain.ErrOfferAlreadyClaimed
		}
		if err := o.Edit(domain.OfferEdit{
			Price:       req.Price,
			Available:   req.Available,
			Description: req.Description,
		}); err != nil {
			return err
		}
		row.Apply(o)
		return nil
	})
	err = mapWriteError(err, ErrOfferNotFound)
	s.record(transitionEdit, offerID, p, from, domain.StatusOffer, err)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, offerID, ErrOfferNotFound)
}

// Claim turns an available offer into a pending order for the calling
// client. Concurrent claims on one offer have exactly one winner.
func (s *Service) Claim(ctx context.Context, p domain.Principal, offerID int64) (row *domain.OfferOrder, err error) {
	defer func() {
		s.record(transitionClaim, offerID, p, domain.StatusOffer, domain.StatusPending, err)
	}()

	if !p.Is(domain.RoleClient) {
		return nil, domain.ErrForbidden
	}

	won, err := s.repo.Claim(ctx, offerID, p.SubjectID, s.now())
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, ErrOfferNotClaimable
	}
	return s.load(ctx, offerID, ErrOrderNotFound)
}

// Complete moves a pending order of the calling company to completed.
func (s *Service) Complete(ctx context.Context, p domain.Principal, orderID int64) error {
	var from domain.OfferStatus
	_, err := s.repo.Mutate(ctx, orderID, func(row *domain.OfferOrder) error {
		from = row.Status
		if err := domain.Authorize(p, row.CompanyID, domain.RoleCompany); err != nil {
			return err
		}
		l, err := row.Classify()
		if err != nil {
			return err
		}
		order, ok := l.(*domain.Order)
		if !ok {
			return domain.ErrOrderNotPending
		}
		if err := order.Complete(); err != nil {
			return err
		}
		row.Apply(order)
		return nil
	})
	err = mapWriteError(err, ErrOrderNotFound)
	s.record(transitionComplete, orderID, p, from, domain.StatusCompleted, err)
	return err
}

// Rate stores the claiming client's rating on a completed order. A rating is
// written once and never overwritten.
func (s *Service) Rate(ctx context.Context, p domain.Principal, orderID int64, req RateRequest) error {
	comment := ""
	if req.Comment != nil {
		comment = *req.Comment
	}

	var from domain.OfferStatus
	_, err := s.repo.Mutate(ctx, orderID, func(row *domain.OfferOrder) error {
		from = row.Status
		if err := domain.AuthorizeOptional(p, row.ClientID, domain.RoleClient); err != nil {
			return err
		}
		l, err := row.Classify()
		if err != nil {
			return err
		}
		order, ok := l.(*domain.Order)
		if !ok {
			return domain.ErrOrderNotCompleted
		}
		if err := order.Rate(req.Rating, comment, s.now()); err != nil {
			return err
		}
		row.Apply(order)
		return nil
	})
	err = mapWriteError(err, ErrOrderNotFound)
	s.record(transitionRate, orderID, p, from, from, err)
	return err
}

// DeleteOffer removes an unclaimed offer of the calling company. Claimed
// records are never deleted.
func (s *Service) DeleteOffer(ctx context.Context, p domain.Principal, offerID int64) error {
	var from domain.OfferStatus
	err := s.repo.DeleteOffer(ctx, offerID, func(row *domain.OfferOrder) error {
		from = row.Status
		if err := domain.Authorize(p, row.CompanyID, domain.RoleCompany); err != nil {
			return err
		}
		if !row.IsOffer() {
			return ErrOfferClaimed
		}
		return nil
	})
	err = mapWriteError(err, ErrOfferNotFound)
	s.record(transitionDelete, offerID, p, from, "", err)
	return err
}

// GetByID returns an offer to any caller. Orders are visible only to the
// claiming client and the owning company.
func (s *Service) GetByID(ctx context.Context, p domain.Principal, id int64) (*domain.OfferOrder, error) {
	row, err := s.load(ctx, id, ErrOrderNotFound)
	if err != nil {
		return nil, err
	}
	if row.IsOffer() {
		return row, nil
	}
	if domain.AuthorizeOptional(p, row.ClientID, domain.RoleClient) == nil ||
		domain.Authorize(p, row.CompanyID, domain.RoleCompany) == nil {
		return row, nil
	}
	return nil, domain.ErrForbidden
}

// ListAvailableByRecipe returns the claimable offers of an existing recipe.
func (s *Service) ListAvailableByRecipe(ctx context.Context, recipeID int64) ([]domain.OfferOrder, error) {
	exists, err := s.recipes.Exists(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrRecipeNotFound
	}
	return s.repo.ListAvailableByRecipe(ctx, recipeID)
}

// ListCompanyOfferOrders returns the offers and orders of the calling company.
func (s *Service) ListCompanyOfferOrders(ctx context.Context, p domain.Principal) ([]domain.OfferOrder, error) {
	if !p.Is(domain.RoleCompany) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByCompany(ctx, p.SubjectID)
}

// ListClientOrders returns the orders claimed by the calling client.
func (s *Service) ListClientOrders(ctx context.Context, p domain.Principal) ([]domain.OfferOrder, error) {
	if !p.Is(domain.RoleClient) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByClient(ctx, p.SubjectID)
}

func (s *Service) load(ctx context.Context, id int64, missing error) (*domain.OfferOrder, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, missing
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) record(transition string, id int64, p domain.Principal, from, to domain.OfferStatus, err error) {
	metrics.RecordTransition(transition, err)

	entry := s.log.WithFields(logrus.Fields{
		"offer_id":   id,
		"transition": transition,
		"actor_id":   p.SubjectID,
		"actor_role": p.Role,
	})
	if err != nil {
		entry.WithError(err).Info("lifecycle transition rejected")
		return
	}
	entry.WithFields(logrus.Fields{
		"old_status": from,
		"new_status": to,
	}).Info("lifecycle transition")
}

// mapWriteError converts store errors into the module's errors. Errors
// raised by the transition itself pass through untouched.
func mapWriteError(err, missing error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStaleWrite):
		return ErrConcurrentUpdate
	case errors.Is(err, domain.ErrNotFound):
		var appErr *domain.Error
		if errors.As(err, &appErr) {
			return err
		}
		return missing
	}
	return err
}
