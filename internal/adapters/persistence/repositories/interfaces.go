package repositories

import (
	"context"

	"ufa-alliance/internal/adapters/persistence/models"
)

// MembershipStore is the two-variant persistence strategy behind the
// membership facade. The remote (MySQL) and local (SQLite) stores
// implement the same contract; only id generation differs.
type MembershipStore interface {
	Create(ctx context.Context, m *models.Membership) error
	GetByID(ctx context.Context, id string) (*models.Membership, error)
	// List returns all memberships ordered by submitted_at descending
	List(ctx context.Context) ([]*models.Membership, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Membership, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	// ListRegistrationIDs returns the registration ids matching a SQL
	// LIKE pattern (backs the sequential id generator)
	ListRegistrationIDs(ctx context.Context, pattern string) ([]string, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
