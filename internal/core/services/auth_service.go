package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/adapters/persistence/repositories"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/pkg/jwt"
	"caelo-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors. ErrInvalidCredentials is deliberately the single failure
// for unknown email, wrong password and inactive account, so login
// responses cannot be used to enumerate users.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("could not validate credentials")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *password.Hasher
	codec    *jwt.Codec
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, hasher *password.Hasher, codec *jwt.Codec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		codec:    codec,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	Name         string      `json:"name"`
	Role         domain.Role `json:"role"`
	Organization *string     `json:"organization"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput represents a successful login
type LoginOutput struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int                  `json:"expires_in"`
	User        *models.UserResponse `json:"user"`
}

// Register registers a new user. Every violated policy rule is collected
// and returned together, not one at a time.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.User, error) {
	var issues []string

	// 1. Email must not be registered yet
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		issues = append(issues, "Email address is already registered")
	}

	// 2. Password strength policy
	issues = append(issues, password.ValidateStrength(input.Password)...)

	// 3. Name must carry at least 2 non-whitespace characters
	if len(strings.TrimSpace(input.Name)) < 2 {
		issues = append(issues, "Name must be at least 2 characters long")
	}

	// 4. Role must be one of the closed set. Any valid role may
	// self-register; this is a known-weak policy kept as observed.
	if !input.Role.Valid() {
		issues = append(issues, "Role is not recognized")
	}

	if len(issues) > 0 {
		return nil, domain.NewValidationError(issues)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		Organization: input.Organization,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (role: %s)", user.Email, user.Role)
	return user, nil
}

// Authenticate validates credentials against the stored user record.
// Unknown email, inactive account and wrong password all fail with the
// same error. On success last_login is stamped and persisted.
func (s *AuthService) Authenticate(ctx context.Context, email, plaintext string) (*models.User, error) {
	// 1. Look up user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Inactive accounts fail the same way as unknown ones
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	// 3. Verify password
	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// 4. Stamp last login
	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return user, nil
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.codec.TTL().Seconds()),
		User:        user.ToResponse(),
	}, nil
}

// ResolveToken decodes a session token and resolves its subject to a
// live user record. The lookup is fresh on every call so deactivated or
// deleted accounts are rejected before their token expires.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return user, nil
}
