package repositories

import (
	"context"
	"strconv"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// membershipRepository implements MembershipStore over a GORM handle.
// The same implementation serves both backends; newID decides the id
// scheme (UUID on the remote store, unix-millis string on the local
// fallback). The two id spaces are never reconciled.
type membershipRepository struct {
	db    *gorm.DB
	newID func() string
}

// NewRemoteMembershipStore creates the store for the hosted database
func NewRemoteMembershipStore(db *gorm.DB) MembershipStore {
	return &membershipRepository{
		db:    db,
		newID: func() string { return uuid.New().String() },
	}
}

// NewLocalMembershipStore creates the store for the embedded fallback.
// Stringified timestamps are the only id scheme this backend uses.
func NewLocalMembershipStore(db *gorm.DB) MembershipStore {
	return &membershipRepository{
		db:    db,
		newID: func() string { return strconv.FormatInt(time.Now().UnixMilli(), 10) },
	}
}

// Create inserts a membership, assigning an id when the caller has not
func (r *membershipRepository) Create(ctx context.Context, m *models.Membership) error {
	if m.ID == "" {
		m.ID = r.newID()
	}
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a membership by id
func (r *membershipRepository) GetByID(ctx context.Context, id string) (*models.Membership, error) {
	var m models.Membership
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	normalize(&m)
	return &m, nil
}

// List returns all memberships, newest submission first
func (r *membershipRepository) List(ctx context.Context) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		normalize(m)
	}
	return memberships, nil
}

// ListByStatus returns memberships with the given status, newest first
func (r *membershipRepository) ListByStatus(ctx context.Context, status string) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at DESC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		normalize(m)
	}
	return memberships, nil
}

// Update applies a partial update to a membership
func (r *membershipRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a membership
func (r *membershipRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Membership{}).Error
}

// ListRegistrationIDs returns registration ids matching a LIKE pattern
func (r *membershipRepository) ListRegistrationIDs(ctx context.Context, pattern string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("registration_id LIKE ?", pattern).
		Pluck("registration_id", &ids).Error
	return ids, err
}

// normalize substitutes the current time for a missing required
// timestamp on read. Optional timestamps (reviewed_at) stay nil.
func normalize(m *models.Membership) {
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now()
	}
	if m.DateOfBirth.IsZero() {
		m.DateOfBirth = time.Now()
	}
}
