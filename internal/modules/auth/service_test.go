package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"recipemarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Account Repository implementing the interface
type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) RegisterClient(ctx context.Context, acc *domain.Account, c *domain.Client) error {
	args := m.Called(ctx, acc, c)
	return args.Error(0)
}

func (m *mockAccountRepo) RegisterCompany(ctx context.Context, acc *domain.Account, c *domain.Company) error {
	args := m.Called(ctx, acc, c)
	return args.Error(0)
}

func (m *mockAccountRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *mockAccountRepo) GetCompanyByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_RegisterClient_Success(t *testing.T) {
	repo := new(mockAccountRepo)
	jwtSvc := new(mockJWTService)

	repo.On("EmailTaken", mock.Anything, "test@example.com").Return(false, nil)
	repo.On("RegisterClient", mock.Anything, mock.AnythingOfType("*domain.Account"), mock.AnythingOfType("*domain.Client")).
		Run(func(args mock.Arguments) {
			acc := args.Get(1).(*domain.Account)
			c := args.Get(2).(*domain.Client)
			acc.ID = 11
			c.ID = acc.ID
			c.Email = acc.Email
		}).
		Return(nil)
	jwtSvc.On("GenerateToken", int64(11), "client").Return("fake-jwt-token", nil)

	service := NewService(repo, jwtSvc)

	res, err := service.RegisterClient(context.Background(), RegisterClientRequest{
		Name:     "Test User",
		Email:    "  Test@Example.com ",
		Password: "securepass123",
		Location: "Madrid",
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", res.Token)
	assert.Equal(t, int64(11), res.User.ID)
	assert.Equal(t, "test@example.com", res.User.Email)
	assert.Equal(t, domain.RoleClient, res.User.Role)
	require.NotNil(t, res.User.Location)
	assert.Equal(t, "Madrid", *res.User.Location)

	acc := repo.Calls[1].Arguments.Get(1).(*domain.Account)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("securepass123")))

	repo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_RegisterCompany_EmailTakenByClient(t *testing.T) {
	repo := new(mockAccountRepo)
	jwtSvc := new(mockJWTService)

	repo.On("EmailTaken", mock.Anything, "shared@example.com").Return(true, nil)

	service := NewService(repo, jwtSvc)
	_, err := service.RegisterCompany(context.Background(), RegisterCompanyRequest{
		Name:     "Cocina",
		Email:    "shared@example.com",
		Password: "securepass123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "RegisterCompany", mock.Anything, mock.Anything, mock.Anything)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestService_RegisterCompany_RaceBackstop(t *testing.T) {
	repo := new(mockAccountRepo)
	jwtSvc := new(mockJWTService)

	repo.On("EmailTaken", mock.Anything, "race@example.com").Return(false, nil)
	repo.On("RegisterCompany", mock.Anything, mock.Anything, mock.Anything).
		Return(raceConflict())

	service := NewService(repo, jwtSvc)
	_, err := service.RegisterCompany(context.Background(), RegisterCompanyRequest{
		Name:     "Cocina",
		Email:    "race@example.com",
		Password: "securepass123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func raceConflict() error {
	return errors.Join(errors.New("unique constraint"), domain.ErrConflict)
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	acc := &domain.Account{ID: 5, Email: "co@example.com", PasswordHash: string(hash), Role: domain.RoleCompany}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(r *mockAccountRepo, j *mockJWTService)
		wantErr  error
	}{
		{
			name:     "success",
			email:    "co@example.com",
			password: "correct-horse",
			setup: func(r *mockAccountRepo, j *mockJWTService) {
				r.On("GetAccountByEmail", mock.Anything, "co@example.com").Return(acc, nil)
				r.On("GetCompanyByID", mock.Anything, int64(5)).
					Return(&domain.Company{ID: 5, Email: "co@example.com", Name: "Co", RegisteredAt: time.Now()}, nil)
				j.On("GenerateToken", int64(5), "company").Return("tok", nil)
			},
		},
		{
			name:     "wrong password",
			email:    "co@example.com",
			password: "nope",
			setup: func(r *mockAccountRepo, j *mockJWTService) {
				r.On("GetAccountByEmail", mock.Anything, "co@example.com").Return(acc, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "whatever",
			setup: func(r *mockAccountRepo, j *mockJWTService) {
				r.On("GetAccountByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockAccountRepo)
			jwtSvc := new(mockJWTService)
			tt.setup(repo, jwtSvc)

			res, err := NewService(repo, jwtSvc).Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", res.Token)
			assert.Equal(t, domain.RoleCompany, res.User.Role)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Me(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetClientByID", mock.Anything, int64(3)).
		Return(&domain.Client{ID: 3, Email: "c@example.com", Name: "Ana"}, nil)
	repo.On("GetCompanyByID", mock.Anything, int64(4)).Return(nil, domain.ErrNotFound)

	service := NewService(repo, new(mockJWTService))

	profile, err := service.Me(context.Background(), domain.Principal{SubjectID: 3, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.Name)
	assert.Nil(t, profile.Location)
	assert.Nil(t, profile.Description)

	_, err = service.Me(context.Background(), domain.Principal{SubjectID: 4, Role: domain.RoleCompany})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
