package services

import (
	"context"
	"testing"

	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/config"
	"ufa-alliance/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, jwtSecret string) *AuthService {
	t.Helper()

	db := openTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           jwtSecret,
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Admin: config.AdminConfig{Emails: []string{"chair@unitedfuturealliance.org"}},
	}

	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		nil,
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		Name:     "Wanjiku Kamau",
		Email:    "wanjiku@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wanjiku Kamau", result.User.Name)
	assert.Equal(t, "user", result.User.Role)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)

	login, err := svc.Login(ctx, &LoginInput{
		Email:    "wanjiku@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	input := &RegisterInput{Email: "dup@example.com", Password: "strong-password"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Email: "bad address", Password: "strong-password"})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Register(ctx, &RegisterInput{Email: "ok@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterNameFallsBackToLocalPart(t *testing.T) {
	svc := newAuthService(t, "test-secret")

	result, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "barasa@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "barasa", result.User.Name)
	assert.NotEmpty(t, result.User.AvatarURL)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Email: "w@example.com", Password: "strong-password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "w@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "unknown@example.com", Password: "whatever-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminRoleFromAllowList(t *testing.T) {
	svc := newAuthService(t, "test-secret")

	result, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "chair@unitedfuturealliance.org",
		Password: "strong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Role)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{Email: "r@example.com", Password: "strong-password"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation
	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthService(t, "test-secret")
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{Email: "l@example.com", Password: "strong-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, registered.RefreshToken))

	_, err = svc.RefreshToken(ctx, registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateAccessToken(t *testing.T) {
	svc := newAuthService(t, "test-secret")

	registered, err := svc.Register(context.Background(), &RegisterInput{
		Email:    "v@example.com",
		Password: "strong-password",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "v@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

// ============================================================
// Demo mode (no JWT secret configured)
// ============================================================

func TestDemoModeLogin(t *testing.T) {
	svc := newAuthService(t, "")
	require.True(t, svc.DemoMode())

	// Any password is accepted, nothing touches the database
	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "visitor@example.com",
		Password: "anything",
	})
	require.NoError(t, err)
	assert.Equal(t, "visitor", result.User.Name)
	assert.Equal(t, "user", result.User.Role)

	claims, err := svc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", claims.Email)
}

func TestDemoModeAdminHeuristic(t *testing.T) {
	svc := newAuthService(t, "")

	result, err := svc.Login(context.Background(), &LoginInput{
		Email:    "admin@test.com",
		Password: "anything",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Role)
}

func TestDemoModeRefresh(t *testing.T) {
	svc := newAuthService(t, "")
	ctx := context.Background()

	login, err := svc.Login(ctx, &LoginInput{Email: "visitor@example.com", Password: "x-pass-x"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "visitor@example.com", refreshed.User.Email)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jane", displayName("Jane", "jane@example.com"))
	assert.Equal(t, "jane", displayName("", "jane@example.com"))
	assert.Equal(t, "jane", displayName("   ", "jane@example.com"))
	assert.Equal(t, "no-at-sign", displayName("", "no-at-sign"))
}
