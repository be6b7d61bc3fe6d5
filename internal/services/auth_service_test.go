package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"brocante/internal/apperr"
	"brocante/internal/models"
	"brocante/internal/security"
	"brocante/internal/services"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s %w", email, apperr.ErrNotFound)
}

func TestAuthService_Signup(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	input := services.SignupInput{
		Username:   "JohnDoe",
		Email:      "j@x.io",
		Password:   "azerty",
		Newsletter: true,
	}

	// Successful signup: fresh email, all credentials derived
	mockRepo.On("GetByEmail", input.Email).Return(nil, notFoundErr(input.Email)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Signup(input)
	assert.NoError(t, err)
	assert.Equal(t, "j@x.io", user.Email)
	assert.Equal(t, "JohnDoe", user.Account.Username)
	assert.True(t, user.Newsletter)
	assert.Len(t, user.Token, 16)
	assert.Len(t, user.Salt, 16)
	assert.Equal(t, security.HashPassword("azerty", user.Salt), user.Hash)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", input.Email).Return(&models.User{ID: "1", Email: input.Email}, nil).Once()
	_, err = authService.Signup(input)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Contains(t, err.Error(), "j@x.io")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signup_MissingUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	_, err := authService.Signup(services.SignupInput{
		Email:    "j@x.io",
		Password: "azerty",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	salt := "saltsaltsaltsalt"
	user := &models.User{
		ID:      "user-123",
		Email:   "j@x.io",
		Account: models.Account{Username: "JohnDoe"},
		Token:   "tok-abc",
		Salt:    salt,
		Hash:    security.HashPassword("azerty", salt),
	}

	// Successful login returns the stored token
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	got, err := authService.Login("j@x.io", "azerty")
	assert.NoError(t, err)
	assert.Equal(t, "tok-abc", got.Token)
	assert.Equal(t, "user-123", got.ID)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.Login("j@x.io", "wrongpassword")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email surfaces the same error as a wrong password
	mockRepo.On("GetByEmail", "nobody@x.io").Return(nil, notFoundErr("nobody@x.io")).Once()
	_, err = authService.Login("nobody@x.io", "azerty")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UserByToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	user := &models.User{ID: "user-123", Token: "tok-abc"}

	mockRepo.On("GetByToken", "tok-abc").Return(user, nil).Once()
	got, err := authService.UserByToken("tok-abc")
	assert.NoError(t, err)
	assert.Equal(t, "user-123", got.ID)
	mockRepo.AssertExpectations(t)

	// Unknown token
	mockRepo.On("GetByToken", "tok-bad").Return(nil, fmt.Errorf("user with matching token %w", apperr.ErrNotFound)).Once()
	_, err = authService.UserByToken("tok-bad")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Empty token never reaches the store
	_, err = authService.UserByToken("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "GetByToken", "")
}
