package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/breska/backoffice/internal/auth"
	"github.com/breska/backoffice/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthUC handles admin login and token verification. Login failures never
// say whether the email or the password was wrong.
type AuthUC struct {
	Users  domain.UserRepo
	Tokens *auth.Tokens
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

func (uc *AuthUC) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}
	user, err := uc.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	token, exp, err := uc.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: user}, nil
}

// Register creates an admin user. The endpoint that calls it is open, same
// as login; duplicate emails fail with ErrConflict.
func (uc *AuthUC) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	if _, err := uc.Users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
		Role:     domain.RoleAdmin,
	}
	if err := uc.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyToken resolves a bearer token back to its user, rejecting tokens
// whose user no longer exists.
func (uc *AuthUC) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.Tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	user, err := uc.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}
