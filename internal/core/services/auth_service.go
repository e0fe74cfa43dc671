package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/config"
	"ufa-alliance/internal/core/domain"
	"ufa-alliance/internal/pkg/jwt"
	"ufa-alliance/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWeakPassword       = errors.New("password does not meet requirements")
)

// demoSecret signs tokens when no JWT secret is configured. Demo mode
// is a development convenience: identities are synthesized, nothing is
// persisted, and any password is accepted.
const demoSecret = "ufa-demo-insecure"

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	email            *EmailService
	cfg              *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	email *EmailService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		email:            email,
		cfg:              cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

// DemoMode reports whether auth runs without a configured provider
func (s *AuthService) DemoMode() bool {
	return !s.cfg.JWT.Configured()
}

// roleFor derives the role from the admin allow-list. In demo mode an
// email merely containing "admin" also grants the admin role, which
// keeps the admin screens reachable without any configuration.
func (s *AuthService) roleFor(email string) string {
	if s.cfg.Admin.IsAdminEmail(email) {
		return string(domain.RoleAdmin)
	}
	if s.DemoMode() && strings.Contains(strings.ToLower(email), "admin") {
		return string(domain.RoleAdmin)
	}
	return string(domain.RoleUser)
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate locally before any backend call
	if !emailRx.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	name := displayName(input.Name, input.Email)

	// 2. Demo mode synthesizes the account without persistence
	if s.DemoMode() {
		return s.demoSession(input.Email, name)
	}

	// 3. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	// 4. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create user
	user := &models.User{
		Name:      name,
		Email:     input.Email,
		Password:  hashedPassword,
		AvatarURL: avatarURL(name),
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	role := s.roleFor(user.Email)

	// 6. Generate tokens
	tokens, err := s.generateTokens(user, role)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	// 8. Welcome email, detached
	if s.email != nil {
		go s.email.SendAccountWelcome(user.Name, user.Email)
	}

	log.Printf("✅ User registered: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(role),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Login authenticates a user
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Validate locally before any backend call
	if !emailRx.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}

	// 2. Demo mode accepts any credentials
	if s.DemoMode() {
		return s.demoSession(input.Email, displayName("", input.Email))
	}

	// 3. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 4. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 5. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	role := s.roleFor(user.Email)

	// 6. Generate tokens
	tokens, err := s.generateTokens(user, role)
	if err != nil {
		return nil, err
	}

	// 7. Store refresh token
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(role),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// RefreshToken refreshes the access token using refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.refreshSecret())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	// 2. Demo tokens carry the identity; nothing is stored to rotate
	if s.DemoMode() {
		return s.demoSession(claims.TokenID, displayName("", claims.TokenID))
	}

	// 3. Find token in DB
	tokenHash := password.HashToken(refreshToken)
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 4. Check revocation and expiry
	if storedToken.IsRevoked() {
		return nil, ErrTokenRevoked
	}
	if storedToken.IsExpired() {
		return nil, ErrTokenExpired
	}

	// 5. Get user
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 6. Revoke old refresh token (rotation)
	if err := s.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, err
	}

	role := s.roleFor(user.Email)

	// 7. Generate and store new tokens
	tokens, err := s.generateTokens(user, role)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, user.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for user: %s", user.Email)

	return &AuthResponse{
		User:         user.ToResponse(role),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}

// Logout revokes the refresh token. Unlike the membership flows this
// error is surfaced to the caller: a failed sign-out must be visible.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if s.DemoMode() {
		log.Printf("✅ Demo session ended")
		return nil
	}

	tokenHash := password.HashToken(refreshToken)
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if s.DemoMode() {
		return nil
	}

	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.accessSecret())
}

// GetUserByID gets a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// demoSession builds a full session around a synthesized identity.
// The refresh token's TokenID carries the email so the session can be
// refreshed without any stored state.
func (s *AuthService) demoSession(email, name string) (*AuthResponse, error) {
	role := s.roleFor(email)

	accessToken, err := jwt.GenerateAccessToken(
		demoUserID, email, name, role,
		s.accessSecret(), s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(
		demoUserID, email,
		s.refreshSecret(), s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("⚠️ Demo sign-in (no auth provider configured): %s [%s]", email, role)

	return &AuthResponse{
		User: &models.UserResponse{
			ID:        demoUserID,
			Name:      name,
			Email:     email,
			AvatarURL: avatarURL(name),
			Role:      role,
			IsActive:  true,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// demoUserID is the fixed id of every synthesized demo identity
const demoUserID uint = 1

func (s *AuthService) accessSecret() string {
	if s.cfg.JWT.Configured() {
		return s.cfg.JWT.Secret
	}
	return demoSecret
}

func (s *AuthService) refreshSecret() string {
	if s.cfg.JWT.RefreshSecret != "" {
		return s.cfg.JWT.RefreshSecret
	}
	if s.cfg.JWT.Configured() {
		return s.cfg.JWT.Secret
	}
	return demoSecret
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User, role string) (*domain.TokenPair, error) {
	accessToken, err := jwt.GenerateAccessToken(
		user.ID,
		user.Email,
		user.Name,
		role,
		s.accessSecret(),
		s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		user.ID,
		tokenID,
		s.refreshSecret(),
		s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeRefreshToken stores a refresh token in the database
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uint, refreshToken string) error {
	token := &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}

	return s.refreshTokenRepo.Create(ctx, token)
}

// displayName falls back to the email local-part when no name was given
func displayName(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// avatarURL returns a deterministic placeholder avatar for a name
func avatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=0D8ABC&color=fff",
		url.QueryEscape(name))
}
