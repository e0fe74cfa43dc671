package repositories

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newMembership(regID string, submittedAt time.Time) *models.Membership {
	return &models.Membership{
		RegistrationID: regID,
		FirstName:      "Amina",
		LastName:       "Otieno",
		Email:          "amina@example.com",
		Status:         "pending",
		SubmittedAt:    submittedAt,
		DateOfBirth:    time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestRemoteStoreAssignsUUID(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))

	m := newMembership("UFA/001/2026", time.Now())
	require.NoError(t, store.Create(context.Background(), m))

	assert.Len(t, m.ID, 36)
	assert.Equal(t, 4, strings.Count(m.ID, "-"))
}

func TestLocalStoreAssignsTimestampID(t *testing.T) {
	store := NewLocalMembershipStore(openTestDB(t))

	m := newMembership("UFA/001/2026", time.Now())
	require.NoError(t, store.Create(context.Background(), m))

	millis, err := strconv.ParseInt(m.ID, 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().UnixMilli(), millis, 5000)
}

func TestCreateKeepsCallerID(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))

	m := newMembership("UFA/001/2026", time.Now())
	m.ID = "preassigned"
	require.NoError(t, store.Create(context.Background(), m))

	assert.Equal(t, "preassigned", m.ID)
}

func TestListOrdersBySubmittedAtDesc(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := newMembership("UFA/001/2026", base)
	middle := newMembership("UFA/002/2026", base.Add(time.Hour))
	newest := newMembership("UFA/003/2026", base.Add(2*time.Hour))

	for _, m := range []*models.Membership{middle, oldest, newest} {
		require.NoError(t, store.Create(ctx, m))
	}

	memberships, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, memberships, 3)

	assert.Equal(t, "UFA/003/2026", memberships[0].RegistrationID)
	assert.Equal(t, "UFA/002/2026", memberships[1].RegistrationID)
	assert.Equal(t, "UFA/001/2026", memberships[2].RegistrationID)
}

func TestListByStatus(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))
	ctx := context.Background()

	pending := newMembership("UFA/001/2026", time.Now())
	approved := newMembership("UFA/002/2026", time.Now())
	approved.Status = "approved"

	require.NoError(t, store.Create(ctx, pending))
	require.NoError(t, store.Create(ctx, approved))

	got, err := store.ListByStatus(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "UFA/002/2026", got[0].RegistrationID)
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))

	err := store.Update(context.Background(), "missing", map[string]interface{}{"status": "approved"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))
	ctx := context.Background()

	m := newMembership("UFA/001/2026", time.Now())
	require.NoError(t, store.Create(ctx, m))

	now := time.Now()
	err := store.Update(ctx, m.ID, map[string]interface{}{
		"status":      "approved",
		"reviewed_at": now,
		"reviewed_by": "admin@ufa.org",
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)
	assert.Equal(t, "Amina", got.FirstName) // untouched field survives
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, "admin@ufa.org", *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)
}

func TestDelete(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))
	ctx := context.Background()

	m := newMembership("UFA/001/2026", time.Now())
	require.NoError(t, store.Create(ctx, m))
	require.NoError(t, store.Delete(ctx, m.ID))

	_, err := store.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListRegistrationIDsMatchesYearPattern(t *testing.T) {
	store := NewRemoteMembershipStore(openTestDB(t))
	ctx := context.Background()

	for _, regID := range []string{"UFA/001/2026", "UFA/002/2026", "UFA/007/2025"} {
		require.NoError(t, store.Create(ctx, newMembership(regID, time.Now())))
	}

	ids, err := store.ListRegistrationIDs(ctx, "UFA/%/2026")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"UFA/001/2026", "UFA/002/2026"}, ids)

	ids, err = store.ListRegistrationIDs(ctx, "UFA/%/2024")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTimestampsSurviveRoundTrip(t *testing.T) {
	store := NewLocalMembershipStore(openTestDB(t))
	ctx := context.Background()

	submitted := time.Date(2026, 2, 9, 17, 45, 12, 345_000_000, time.UTC)
	m := newMembership("UFA/001/2026", submitted)
	require.NoError(t, store.Create(ctx, m))

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.UnixMilli(), got.SubmittedAt.UnixMilli())
	assert.Equal(t, m.DateOfBirth.UnixMilli(), got.DateOfBirth.UnixMilli())
}

func TestSerializedSlicesRoundTrip(t *testing.T) {
	store := NewLocalMembershipStore(openTestDB(t))
	ctx := context.Background()

	m := newMembership("UFA/001/2026", time.Now())
	m.Interests = []string{"education", "environment"}
	m.IsVolunteer = true
	m.VolunteerAreas = []string{"outreach"}
	require.NoError(t, store.Create(ctx, m))

	got, err := store.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"education", "environment"}, got.Interests)
	assert.Equal(t, []string{"outreach"}, got.VolunteerAreas)
	assert.True(t, got.IsVolunteer)
}
