package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipemarket/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	accounts AccountRepositoryInterface
	jwt      jwtService
	now      func() time.Time
}

func NewService(accounts AccountRepositoryInterface, jwt jwtService) *Service {
	return &Service{
		accounts: accounts,
		jwt:      jwt,
		now:      time.Now,
	}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{Email: email, PasswordHash: hash}
	client := &domain.Client{
		Name:         strings.TrimSpace(req.Name),
		Location:     strings.TrimSpace(req.Location),
		RegisteredAt: s.now(),
	}
	if err := s.accounts.RegisterClient(ctx, acc, client); err != nil {
		return nil, mapRegisterError(err)
	}

	return s.issue(acc.ID, domain.RoleClient, ClientProfile(client))
}

func (s *Service) RegisterCompany(ctx context.Context, req RegisterCompanyRequest) (*AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	acc := &domain.Account{Email: email, PasswordHash: hash}
	company := &domain.Company{
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		RegisteredAt: s.now(),
	}
	if err := s.accounts.RegisterCompany(ctx, acc, company); err != nil {
		return nil, mapRegisterError(err)
	}

	return s.issue(acc.ID, domain.RoleCompany, CompanyProfile(company))
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	acc, err := s.accounts.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.Me(ctx, domain.Principal{SubjectID: acc.ID, Role: acc.Role})
	if err != nil {
		return nil, err
	}
	return s.issue(acc.ID, acc.Role, *profile)
}

// Me returns the profile behind the principal.
func (s *Service) Me(ctx context.Context, p domain.Principal) (*ProfileResponse, error) {
	var profile ProfileResponse
	switch p.Role {
	case domain.RoleClient:
		c, err := s.accounts.GetClientByID(ctx, p.SubjectID)
		if err != nil {
			return nil, mapProfileError(err)
		}
		profile = ClientProfile(c)
	case domain.RoleCompany:
		c, err := s.accounts.GetCompanyByID(ctx, p.SubjectID)
		if err != nil {
			return nil, mapProfileError(err)
		}
		profile = CompanyProfile(c)
	default:
		return nil, domain.ErrUnauthenticated
	}
	return &profile, nil
}

func (s *Service) issue(id int64, role domain.Role, profile ProfileResponse) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(id, string(role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: profile, Token: token}, nil
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	taken, err := s.accounts.EmailTaken(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// mapRegisterError turns the store's race backstop into the API error.
func mapRegisterError(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return ErrEmailAlreadyExists
	}
	return err
}

func mapProfileError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}
