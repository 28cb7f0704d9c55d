package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	"github.com/charllys777/appsaloes/pkg/auth"
	apperrors "github.com/charllys777/appsaloes/pkg/errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	accountRepo repository.AccountRepository
	jwt         auth.JWTService
}

func NewService(accountRepo repository.AccountRepository, jwt auth.JWTService) *Service {
	return &Service{accountRepo: accountRepo, jwt: jwt}
}

// SignUp creates an account and signs the new user straight in.
// Duplicate emails surface as repository.ErrDuplicateEmail.
func (s *Service) SignUp(ctx context.Context, email, password string) (*model.Account, *model.TokenResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, apperrors.Conflict("email already registered", err)
		}
		return nil, nil, fmt.Errorf("failed to create account: %w", err)
	}

	tokens, err := s.issueTokens(account)
	if err != nil {
		return nil, nil, err
	}
	return account, tokens, nil
}

// SignIn verifies the password and returns fresh tokens. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Account, *model.TokenResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(account)
	if err != nil {
		return nil, nil, err
	}
	return account, tokens, nil
}

// VerifyPassword re-checks a signed-in user's password. The dashboard
// asks for it again before exposing the management panel.
func (s *Service) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	account, err := s.accountRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to load account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	account, err := s.accountRepo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return s.issueTokens(account)
}

func (s *Service) issueTokens(account *model.Account) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.AccessExpiry().Seconds()),
	}, nil
}
