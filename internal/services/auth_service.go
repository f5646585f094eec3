package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tasklist-web.com/tasklist-web/internal/errors"
	model "tasklist-web.com/tasklist-web/internal/models"
	repository "tasklist-web.com/tasklist-web/internal/repositories"
)

type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account with a bcrypt-hashed password. The
// username pre-check is best effort; the unique index catches the race and
// maps to the same username-taken outcome.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	if password != confirmation {
		return nil, apperrors.ErrPasswordMismatch
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies the supplied credentials. An unknown username and a wrong
// password return the same error value.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// SeedDefaultUser creates the default account when the users table is
// empty, hashed the same way as registration.
func (s *AuthService) SeedDefaultUser(ctx context.Context, username, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := s.users.Create(ctx, username, string(hash)); err != nil {
		return err
	}

	log.Printf("seeded default account %q", username)
	return nil
}
