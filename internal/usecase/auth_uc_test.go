package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breska/backoffice/internal/adapters/repo/postgres"
	"github.com/breska/backoffice/internal/auth"
	"github.com/breska/backoffice/internal/domain"
)

func newAuthUC(t *testing.T) *AuthUC {
	db := newTestDB(t)
	return &AuthUC{
		Users:  postgres.NewUserRepo(db),
		Tokens: auth.NewTokens("test-secret", time.Hour),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	user, err := uc.Register(ctx, "Ana@Example.com", "super-secreto", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEqual(t, "super-secreto", user.Password)

	sess, err := uc.Login(ctx, "ana@example.com", "super-secreto")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, user.ID, sess.User.ID)

	verified, err := uc.VerifyToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestRegisterValidation(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, "not-an-email", "super-secreto", "Ana")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(ctx, "ana@example.com", "short", "Ana")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(ctx, "ana@example.com", "super-secreto", "Ana")
	require.NoError(t, err)
	_, err = uc.Register(ctx, "ana@example.com", "super-secreto", "Ana")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, "ana@example.com", "super-secreto", "Ana")
	require.NoError(t, err)

	_, err = uc.Login(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, "nadie@example.com", "super-secreto")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := newAuthUC(t)
	_, err := uc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
