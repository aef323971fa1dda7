package recipe

import (
	"context"
	"testing"

	"recipemarket/internal/domain"
	"recipemarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecipeRepo struct {
	mock.Mock
}

func (m *mockRecipeRepo) Create(ctx context.Context, r *domain.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRecipeRepo) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) List(ctx context.Context, limit, offset int) ([]domain.Recipe, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *mockRecipeRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Recipe, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func (m *mockRecipeRepo) Update(ctx context.Context, r *domain.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id, clientID int64) error {
	args := m.Called(ctx, id, clientID)
	return args.Error(0)
}

var (
	owner    = domain.Principal{SubjectID: 1, Role: domain.RoleClient}
	stranger = domain.Principal{SubjectID: 2, Role: domain.RoleClient}
	company  = domain.Principal{SubjectID: 1, Role: domain.RoleCompany}
)

func TestService_Create(t *testing.T) {
	repo := new(mockRecipeRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Recipe")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Recipe).ID = 9 }).
		Return(nil)
	repo.On("GetByID", mock.Anything, int64(9)).
		Return(&domain.Recipe{ID: 9, ClientID: 1, Name: "Gazpacho"}, nil)

	svc := NewService(repo)
	r, err := svc.Create(context.Background(), owner, CreateRecipeRequest{Name: "  Gazpacho "})
	require.NoError(t, err)
	assert.Equal(t, int64(9), r.ID)

	created := repo.Calls[0].Arguments.Get(1).(*domain.Recipe)
	assert.Equal(t, "Gazpacho", created.Name)
	assert.Equal(t, int64(1), created.ClientID)

	_, err = svc.Create(context.Background(), company, CreateRecipeRequest{Name: "Paella"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_Update_OnlyCreator(t *testing.T) {
	repo := new(mockRecipeRepo)
	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.Recipe{ID: 3, ClientID: 1, Name: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	name := "New"

	_, err := svc.Update(context.Background(), stranger, 3, UpdateRecipeRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.Update(context.Background(), company, 3, UpdateRecipeRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	r, err := svc.Update(context.Background(), owner, 3, UpdateRecipeRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", r.Name)
	assert.Equal(t, int64(1), r.ClientID)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(mockRecipeRepo)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := NewService(repo).GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := new(mockRecipeRepo)
	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Recipe{ID: 5, ClientID: 1}, nil)
	repo.On("GetByID", mock.Anything, int64(6)).Return(&domain.Recipe{ID: 6, ClientID: 1}, nil)
	repo.On("Delete", mock.Anything, int64(5), int64(1)).Return(repository.ErrInUse)
	repo.On("Delete", mock.Anything, int64(6), int64(1)).Return(nil)

	svc := NewService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, 5), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), owner, 5), domain.ErrRecipeInUse)
	assert.NoError(t, svc.Delete(context.Background(), owner, 6))
}
