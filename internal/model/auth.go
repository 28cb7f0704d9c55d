package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is an authenticated user. One account owns at most one
// professional profile with the same ID.
type Account struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyPasswordRequest re-checks the signed-in user's password before the
// admin panel unlocks.
type VerifyPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}
