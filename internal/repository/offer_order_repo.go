package repository

import (
	"context"
	"time"

	"recipemarket/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OfferOrderRepository struct {
	db *gorm.DB
}

func NewOfferOrderRepository(db *gorm.DB) *OfferOrderRepository {
	return &OfferOrderRepository{db: db}
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Company").Preload("Recipe").Preload("Client")
}

// CreateOffer inserts a fresh offer. A missing recipe yields
// domain.ErrNotFound; an unclaimed offer by the same company for the same
// recipe yields ErrDuplicate. The partial unique index on
// (company_id, recipe_id) WHERE client_id IS NULL backs the pre-check.
func (r *OfferOrderRepository) CreateOffer(ctx context.Context, row *domain.OfferOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipes int64
		if err := tx.Model(&domain.Recipe{}).Where("id = ?", row.RecipeID).Count(&recipes).Error; err != nil {
			return err
		}
		if recipes == 0 {
			return domain.ErrNotFound
		}

		var active int64
		if err := tx.Model(&domain.OfferOrder{}).
			Where("company_id = ? AND recipe_id = ? AND client_id IS NULL", row.CompanyID, row.RecipeID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrDuplicate
		}

		return tx.Omit(clause.Associations).Create(row).Error
	})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *OfferOrderRepository) GetByID(ctx context.Context, id int64) (*domain.OfferOrder, error) {
	var row domain.OfferOrder
	if err := withRelations(r.db.WithContext(ctx)).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// ListAvailableByRecipe returns the unclaimed, available offers for a recipe,
// cheapest first.
func (r *OfferOrderRepository) ListAvailableByRecipe(ctx context.Context, recipeID int64) ([]domain.OfferOrder, error) {
	var rows []domain.OfferOrder
	err := withRelations(r.db.WithContext(ctx)).
		Where("recipe_id = ? AND client_id IS NULL AND available = ?", recipeID, true).
		Order("price ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *OfferOrderRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.OfferOrder, error) {
	var rows []domain.OfferOrder
	err := withRelations(r.db.WithContext(ctx)).
		Where("company_id = ?", companyID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *OfferOrderRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.OfferOrder, error) {
	var rows []domain.OfferOrder
	err := withRelations(r.db.WithContext(ctx)).
		Where("client_id = ?", clientID).
		Order("claimed_at DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// Claim is a single compare-and-swap: it succeeds only while the row is an
// available, unclaimed offer. It reports whether this call won the row.
func (r *OfferOrderRepository) Claim(ctx context.Context, id, clientID int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.OfferOrder{}).
		Where("id = ? AND client_id IS NULL AND available = ? AND status = ?", id, true, domain.StatusOffer).
		Updates(map[string]interface{}{
			"client_id":  clientID,
			"claimed_at": at,
			"status":     domain.StatusPending,
			"updated_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Mutate loads the row under a write lock, lets fn change it and writes it
// back with the loaded status, claimant and rating as the precondition.
// Errors from fn abort the transaction untouched. Zero rows affected means
// the row changed underneath and yields ErrStaleWrite.
func (r *OfferOrderRepository) Mutate(ctx context.Context, id int64, fn func(row *domain.OfferOrder) error) (*domain.OfferOrder, error) {
	var out domain.OfferOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.OfferOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			return notFound(err)
		}
		before := row

		if err := fn(&row); err != nil {
			return err
		}

		res := guarded(tx.Model(&domain.OfferOrder{}), &before).
			Updates(map[string]interface{}{
				"price":          row.Price,
				"available":      row.Available,
				"description":    row.Description,
				"status":         row.Status,
				"client_id":      nullable(row.ClientID),
				"claimed_at":     nullable(row.ClaimedAt),
				"rating":         nullable(row.Rating),
				"rating_comment": nullable(row.RatingComment),
				"rated_at":       nullable(row.RatedAt),
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleWrite
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOffer removes an unclaimed row after check approves it.
func (r *OfferOrderRepository) DeleteOffer(ctx context.Context, id int64, check func(row *domain.OfferOrder) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.OfferOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
			return notFound(err)
		}
		if err := check(&row); err != nil {
			return err
		}

		res := tx.Where("id = ? AND client_id IS NULL", id).Delete(&domain.OfferOrder{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleWrite
		}
		return nil
	})
}

// guarded pins the update to the state the row had when it was read.
func guarded(q *gorm.DB, before *domain.OfferOrder) *gorm.DB {
	q = q.Where("id = ? AND status = ?", before.ID, before.Status)
	if before.ClientID == nil {
		q = q.Where("client_id IS NULL")
	} else {
		q = q.Where("client_id = ?", *before.ClientID)
	}
	if before.Rating == nil {
		q = q.Where("rating IS NULL")
	}
	return q
}

// nullable unwraps p so that a nil pointer is written as NULL.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
