package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charllys777/appsaloes/internal/model"
	"github.com/charllys777/appsaloes/internal/repository"
	pkgauth "github.com/charllys777/appsaloes/pkg/auth"
)

type fakeAccountRepo struct {
	byID    map[uuid.UUID]*model.Account
	byEmail map[string]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    map[uuid.UUID]*model.Account{},
		byEmail: map[string]*model.Account{},
	}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *model.Account) error {
	if _, exists := f.byEmail[account.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.byID[account.ID] = account
	f.byEmail[account.Email] = account
	return nil
}

func (f *fakeAccountRepo) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if a, ok := f.byEmail[email]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func newAuthService() (*Service, *fakeAccountRepo) {
	repo := newFakeAccountRepo()
	jwt := pkgauth.NewJWTService(pkgauth.Config{
		Secret:        "test-secret",
		RefreshSecret: "test-refresh-secret",
	})
	return NewService(repo, jwt), repo
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	account, tokens, err := svc.SignUp(ctx, "  Ana@Example.com ", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)
	assert.NotEqual(t, "segredo123", account.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Positive(t, tokens.ExpiresIn)

	signedIn, tokens, err := svc.SignIn(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, account.ID, signedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)

	_, _, err = svc.SignUp(ctx, "ana@example.com", "outra-senha")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSignInBadCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, err := svc.SignUp(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)

	// Wrong password and unknown email look the same to the caller.
	_, _, err = svc.SignIn(ctx, "ana@example.com", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.SignIn(ctx, "ninguem@example.com", "segredo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	account, _, err := svc.SignUp(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyPassword(ctx, account.ID, "segredo123"))
	assert.ErrorIs(t, svc.VerifyPassword(ctx, account.ID, "errada"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.VerifyPassword(ctx, uuid.New(), "segredo123"), ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, tokens, err := svc.SignUp(ctx, "ana@example.com", "segredo123")
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh(ctx, "nao-e-um-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An access token is not accepted as a refresh token.
	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
