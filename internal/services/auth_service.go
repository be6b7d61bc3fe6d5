package services

import (
	"errors"
	"fmt"

	"brocante/internal/apperr"
	"brocante/internal/models"
	"brocante/internal/repositories"
	"brocante/internal/security"
)

// tokenLength is the length of generated session tokens and salts.
const tokenLength = 16

// AuthService handles business logic for signup, login and token checks.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	Username   string
	Email      string
	Password   string
	Newsletter bool
}

// Signup registers a new user: it checks the email is free, derives a fresh
// salt, token and password digest, and persists the user.
//
// The email check and the insert are two independent round trips; concurrent
// signups with the same email race. The unique index on the email column
// turns the loser of that race into the same conflict error.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is mandatory", apperr.ErrValidation)
	}

	existing, err := s.userRepo.GetByEmail(in.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email %s: %w", in.Email, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user %s %w", existing.Email, apperr.ErrConflict)
	}

	token, err := security.GenerateToken(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	salt, err := security.GenerateToken(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &models.User{
		Email: in.Email,
		Account: models.Account{
			Username: in.Username,
		},
		Newsletter: in.Newsletter,
		Token:      token,
		Hash:       security.HashPassword(in.Password, salt),
		Salt:       salt,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password both return apperr.ErrInvalidCredentials so callers cannot
// tell which accounts exist.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}

	if !security.VerifyPassword(password, user.Salt, user.Hash) {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// UserByToken resolves a bearer token to its user, re-querying the store on
// every call. A miss is apperr.ErrUnauthorized.
func (s *AuthService) UserByToken(token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.ErrUnauthorized
	}

	user, err := s.userRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return user, nil
}
