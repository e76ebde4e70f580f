package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogtab/internal/auth"
	apperrors "blogtab/internal/errors"
	"blogtab/internal/model"
	"blogtab/internal/repository"
)

const bcryptCost = 10

// AuthService establishes and verifies identity: registration, credential
// checks, token issuance and token-to-user resolution.
type AuthService interface {
	Register(ctx context.Context, email, firstName, lastName, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	IssueTokens(ctx context.Context, user *model.User) (accessToken, refreshToken string, err error)
	CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *auth.TokenService
	tokenStore   auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenService *auth.TokenService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		tokenStore:   tokenStore,
	}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// is never stored.
func (s *authService) Register(ctx context.Context, email, firstName, lastName, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials. A missing user and a wrong password both fail
// with ErrInvalidCredentials so the response does not reveal which part was
// wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// IssueTokens signs an access/refresh token pair for the user and records
// the refresh token in the store. Purely a function of the user record and
// the signing secret; no other storage side effects.
func (s *authService) IssueTokens(ctx context.Context, user *model.User) (string, string, error) {
	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue access token: %w", err)
	}

	tokenID, refreshToken, err := s.tokenService.IssueRefreshToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// CurrentUser resolves verified claims to the live user record. Fails with
// ErrUnauthorized when the subject no longer exists.
func (s *authService) CurrentUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// Refresh validates a refresh token against the store and signs a new
// access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenService.ValidateToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	tokenID, err := s.tokenService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.tokenService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
