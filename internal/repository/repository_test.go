package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"recipemarket/internal/database"
	"recipemarket/internal/domain"
	"recipemarket/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	accts   *AccountRepository
	recipes *RecipeRepository
	favs    FavoriteRepository
	offers  *OfferOrderRepository

	client  *domain.Client
	client2 *domain.Client
	company *domain.Company
	recipe  *domain.Recipe
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(":memory:", logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	f := &fixture{
		db:      db,
		accts:   NewAccountRepository(db),
		recipes: NewRecipeRepository(db),
		favs:    NewFavoriteRepository(db),
		offers:  NewOfferOrderRepository(db),
	}
	ctx := context.Background()

	f.client = &domain.Client{Name: "Ana", RegisteredAt: time.Now()}
	require.NoError(t, f.accts.RegisterClient(ctx, &domain.Account{Email: "ana@example.com", PasswordHash: "x"}, f.client))
	f.client2 = &domain.Client{Name: "Luis", RegisteredAt: time.Now()}
	require.NoError(t, f.accts.RegisterClient(ctx, &domain.Account{Email: "luis@example.com", PasswordHash: "x"}, f.client2))
	f.company = &domain.Company{Name: "Cocina SA", RegisteredAt: time.Now()}
	require.NoError(t, f.accts.RegisterCompany(ctx, &domain.Account{Email: "cocina@example.com", PasswordHash: "x"}, f.company))

	f.recipe = &domain.Recipe{ClientID: f.client.ID, Name: "Gazpacho"}
	require.NoError(t, f.recipes.Create(ctx, f.recipe))
	return f
}

func (f *fixture) createOffer(t *testing.T, price int64) *domain.OfferOrder {
	t.Helper()
	o, err := domain.NewOffer(f.company.ID, f.recipe.ID, decimal.NewFromInt(price), true, "fresh")
	require.NoError(t, err)
	row := domain.NewOfferOrder(o)
	require.NoError(t, f.offers.CreateOffer(context.Background(), row))
	return row
}

func TestRegister_EmailSharedAcrossRoles(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	err := f.accts.RegisterCompany(ctx, &domain.Account{Email: " ANA@example.com ", PasswordHash: "x"}, &domain.Company{Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = f.accts.RegisterClient(ctx, &domain.Account{Email: "cocina@example.com", PasswordHash: "x"}, &domain.Client{Name: "Dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	var companies int64
	require.NoError(t, f.db.Model(&domain.Company{}).Count(&companies).Error)
	assert.Equal(t, int64(1), companies)
}

func TestRegister_ProfileSharesAccountID(t *testing.T) {
	f := setup(t)

	acc, err := f.accts.GetAccountByEmail(context.Background(), "Cocina@Example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCompany, acc.Role)
	assert.Equal(t, f.company.ID, acc.ID)

	company, err := f.accts.GetCompanyByID(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "cocina@example.com", company.Email)

	_, err = f.accts.GetClientByID(context.Background(), acc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOffer_RecipeMissingAndDuplicate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	o, err := domain.NewOffer(f.company.ID, 999, decimal.NewFromInt(5), true, "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.offers.CreateOffer(ctx, domain.NewOfferOrder(o)), domain.ErrNotFound)

	f.createOffer(t, 10)
	o, err = domain.NewOffer(f.company.ID, f.recipe.ID, decimal.NewFromInt(12), true, "")
	require.NoError(t, err)
	assert.ErrorIs(t, f.offers.CreateOffer(ctx, domain.NewOfferOrder(o)), domain.ErrConflict)
}

func TestClaim_ConcurrentSingleWinner(t *testing.T) {
	f := setup(t)
	row := f.createOffer(t, 10)

	const claimers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < claimers; i++ {
		clientID := f.client.ID
		if i%2 == 1 {
			clientID = f.client2.ID
		}
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			won, err := f.offers.Claim(context.Background(), row.ID, clientID, time.Now())
			assert.NoError(t, err)
			if won {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(clientID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)

	got, err := f.offers.GetByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	require.NotNil(t, got.ClientID)
	require.NotNil(t, got.ClaimedAt)
	assert.Nil(t, got.Rating)
}

func TestClaim_UnavailableOrMissing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	row := f.createOffer(t, 10)

	_, err := f.offers.Mutate(ctx, row.ID, func(r *domain.OfferOrder) error {
		r.Available = false
		return nil
	})
	require.NoError(t, err)

	won, err := f.offers.Claim(ctx, row.ID, f.client.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	won, err = f.offers.Claim(ctx, 12345, f.client.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, won)
}

func TestMutate_ErrorLeavesRowUntouched(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	row := f.createOffer(t, 10)

	_, err := f.offers.Mutate(ctx, row.ID, func(r *domain.OfferOrder) error {
		r.Description = "changed"
		return domain.ErrOrderNotPending
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := f.offers.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Description)

	_, err = f.offers.Mutate(ctx, 4242, func(*domain.OfferOrder) error { return nil })
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMutate_CompleteAndRate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	row := f.createOffer(t, 10)

	won, err := f.offers.Claim(ctx, row.ID, f.client.ID, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	transition := func(fn func(o *domain.Order) error) error {
		_, err := f.offers.Mutate(ctx, row.ID, func(r *domain.OfferOrder) error {
			l, err := r.Classify()
			if err != nil {
				return err
			}
			order := l.(*domain.Order)
			if err := fn(order); err != nil {
				return err
			}
			r.Apply(order)
			return nil
		})
		return err
	}

	require.NoError(t, transition(func(o *domain.Order) error { return o.Complete() }))
	assert.ErrorIs(t, transition(func(o *domain.Order) error { return o.Complete() }), domain.ErrInvalidState)

	require.NoError(t, transition(func(o *domain.Order) error { return o.Rate(4, "great", time.Now()) }))
	err = transition(func(o *domain.Order) error { return o.Rate(1, "worse", time.Now()) })
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	got, err := f.offers.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	require.NotNil(t, got.RatingComment)
	assert.Equal(t, "great", *got.RatingComment)
	require.NotNil(t, got.Recipe)
	assert.Equal(t, "Gazpacho", got.Recipe.Name)
	require.NotNil(t, got.Company)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Ana", got.Client.Name)
}

func TestDeleteOffer(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	row := f.createOffer(t, 10)

	require.NoError(t, f.offers.DeleteOffer(ctx, row.ID, func(*domain.OfferOrder) error { return nil }))
	_, err := f.offers.GetByID(ctx, row.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	claimed := f.createOffer(t, 11)
	won, err := f.offers.Claim(ctx, claimed.ID, f.client.ID, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	// the store itself refuses claimed rows even when check allows it
	err = f.offers.DeleteOffer(ctx, claimed.ID, func(*domain.OfferOrder) error { return nil })
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestListAvailableByRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	row := f.createOffer(t, 10)

	other := &domain.Company{Name: "Otra", RegisteredAt: time.Now()}
	require.NoError(t, f.accts.RegisterCompany(ctx, &domain.Account{Email: "otra@example.com", PasswordHash: "x"}, other))
	o, err := domain.NewOffer(other.ID, f.recipe.ID, decimal.NewFromInt(7), true, "")
	require.NoError(t, err)
	cheap := domain.NewOfferOrder(o)
	require.NoError(t, f.offers.CreateOffer(ctx, cheap))

	rows, err := f.offers.ListAvailableByRecipe(ctx, f.recipe.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, cheap.ID, rows[0].ID)

	won, err := f.offers.Claim(ctx, row.ID, f.client.ID, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	rows, err = f.offers.ListAvailableByRecipe(ctx, f.recipe.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	mine, err := f.offers.ListByClient(ctx, f.client.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, row.ID, mine[0].ID)

	byCompany, err := f.offers.ListByCompany(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)
}

func TestFavoriteToggle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	added, err := f.favs.Toggle(ctx, f.client.ID, f.recipe.ID)
	require.NoError(t, err)
	assert.True(t, added)

	exists, err := f.favs.Exists(ctx, f.client.ID, f.recipe.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	added, err = f.favs.Toggle(ctx, f.client.ID, f.recipe.ID)
	require.NoError(t, err)
	assert.False(t, added)

	exists, err = f.favs.Exists(ctx, f.client.ID, f.recipe.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = f.favs.Toggle(ctx, f.client.ID, 777)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteToggle_ConcurrentPairCount(t *testing.T) {
	f := setup(t)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.favs.Toggle(context.Background(), f.client.ID, f.recipe.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, f.db.Model(&domain.Favorite{}).Where("client_id = ?", f.client.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count) // even number of toggles
}

func TestFavoriteList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	second := &domain.Recipe{ClientID: f.client2.ID, Name: "Paella"}
	require.NoError(t, f.recipes.Create(ctx, second))

	_, err := f.favs.Toggle(ctx, f.client.ID, f.recipe.ID)
	require.NoError(t, err)
	_, err = f.favs.Toggle(ctx, f.client.ID, second.ID)
	require.NoError(t, err)

	favs, total, err := f.favs.GetByClientID(ctx, f.client.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Recipe)
}

func TestRecipeUpdateAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.recipe.Name = "Salmorejo"
	require.NoError(t, f.recipes.Update(ctx, f.recipe))

	stranger := *f.recipe
	stranger.ClientID = f.client2.ID
	assert.ErrorIs(t, f.recipes.Update(ctx, &stranger), domain.ErrConflict)

	got, err := f.recipes.GetByID(ctx, f.recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salmorejo", got.Name)
	assert.Equal(t, f.client.ID, got.ClientID)

	f.createOffer(t, 10)
	assert.ErrorIs(t, f.recipes.Delete(ctx, f.recipe.ID, f.client.ID), ErrInUse)

	free := &domain.Recipe{ClientID: f.client.ID, Name: "Tortilla"}
	require.NoError(t, f.recipes.Create(ctx, free))
	_, err = f.favs.Toggle(ctx, f.client2.ID, free.ID)
	require.NoError(t, err)
	require.NoError(t, f.recipes.Delete(ctx, free.ID, f.client.ID))

	exists, err := f.recipes.Exists(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	list, total, err := f.recipes.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
