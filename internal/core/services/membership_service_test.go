package services

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"

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

// membershipEnv wires a service over two in-memory stores with a
// switchable remote availability flag
type membershipEnv struct {
	svc      *MembershipService
	remoteUp *bool
}

func newMembershipEnv(t *testing.T) *membershipEnv {
	t.Helper()

	remote := repositories.NewRemoteMembershipStore(openTestDB(t))
	local := repositories.NewLocalMembershipStore(openTestDB(t))

	up := true
	return &membershipEnv{
		svc:      NewMembershipService(remote, local, func() bool { return up }, nil),
		remoteUp: &up,
	}
}

// newLocalOnlyService builds a service with no remote store at all
func newLocalOnlyService(t *testing.T) *MembershipService {
	t.Helper()

	local := repositories.NewLocalMembershipStore(openTestDB(t))
	return NewMembershipService(nil, local, func() bool { return false }, nil)
}

func applicationInput(email string) CreateMembershipInput {
	return CreateMembershipInput{
		FirstName:   "Wanjiku",
		LastName:    "Kamau",
		Email:       email,
		Phone:       "+254700000000",
		DateOfBirth: time.Date(1998, 6, 3, 0, 0, 0, 0, time.UTC),
		County:      "Nairobi",
		Interests:   []string{"education"},
	}
}

func TestCreateMembershipOnRemote(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	// Remote ids are UUIDs
	assert.Len(t, m.ID, 36)
	assert.Equal(t, domain.StatusPending, m.Status)
	assert.False(t, m.SubmittedAt.IsZero())
	assert.Nil(t, m.ReviewedAt)

	year := strconv.Itoa(time.Now().Year())
	assert.Equal(t, "UFA/001/"+year, m.RegistrationID)

	second, err := env.svc.CreateMembership(ctx, applicationInput("other@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "UFA/002/"+year, second.RegistrationID)
}

func TestCreateMembershipLocalOnly(t *testing.T) {
	svc := newLocalOnlyService(t)

	m, err := svc.CreateMembership(context.Background(), applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	// Local ids are stringified unix millis
	_, parseErr := strconv.ParseInt(m.ID, 10, 64)
	assert.NoError(t, parseErr)

	// Timestamp fallback registration id: UFA/NNNNNN/YYYY
	parts := strings.Split(m.RegistrationID, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "UFA", parts[0])
	assert.Len(t, parts[1], 6)
	assert.Equal(t, strconv.Itoa(time.Now().Year()), parts[2])
}

func TestCreateMembershipWhenRemoteDown(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	*env.remoteUp = false
	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	_, parseErr := strconv.ParseInt(m.ID, 10, 64)
	assert.NoError(t, parseErr, "record should land in the local store")

	got, err := env.svc.GetMembershipByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.RegistrationID, got.RegistrationID)
}

func TestCreateMembershipRejectsInvalidInput(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateMembership(ctx, applicationInput("not-an-email"))
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	input := applicationInput("ok@example.com")
	input.FirstName = ""
	_, err = env.svc.CreateMembership(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	memberships, err := env.svc.GetMemberships(ctx)
	require.NoError(t, err)
	assert.Empty(t, memberships, "nothing may be persisted for a rejected application")
}

func TestGetMembershipsFallsBackWhenRemoteGoesDown(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateMembership(ctx, applicationInput("remote@example.com"))
	require.NoError(t, err)

	*env.remoteUp = false
	_, err = env.svc.CreateMembership(ctx, applicationInput("local@example.com"))
	require.NoError(t, err)

	// Only the local record is visible now; the two stores are never merged
	memberships, err := env.svc.GetMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "local@example.com", memberships[0].Email)

	*env.remoteUp = true
	memberships, err = env.svc.GetMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, "remote@example.com", memberships[0].Email)
}

func TestGetMembershipsOrdering(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	first, err := env.svc.CreateMembership(ctx, applicationInput("first@example.com"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := env.svc.CreateMembership(ctx, applicationInput("second@example.com"))
	require.NoError(t, err)

	memberships, err := env.svc.GetMemberships(ctx)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, second.ID, memberships[0].ID, "newest submission first")
	assert.Equal(t, first.ID, memberships[1].ID)
}

func TestGetMembershipByIDNotFound(t *testing.T) {
	env := newMembershipEnv(t)

	_, err := env.svc.GetMembershipByID(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
}

func TestApproveMembership(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	approved, err := env.svc.ApproveMembership(ctx, m.ID, "admin@ufa.org", "verified county records")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedAt)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "admin@ufa.org", *approved.ReviewedBy)
	assert.Equal(t, "verified county records", approved.Notes)
}

func TestReviewedStatusIsFinal(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	_, err = env.svc.RejectMembership(ctx, m.ID, "admin@ufa.org", "")
	require.NoError(t, err)

	_, err = env.svc.ApproveMembership(ctx, m.ID, "admin@ufa.org", "")
	assert.ErrorIs(t, err, domain.ErrStatusFinal)

	// Reverting to pending is also a status change, equally refused
	pending := domain.StatusPending
	_, err = env.svc.UpdateMembership(ctx, m.ID, UpdateMembershipInput{Status: &pending}, "admin@ufa.org")
	assert.ErrorIs(t, err, domain.ErrStatusFinal)

	// So is re-submitting the decision that already stands
	rejected := domain.StatusRejected
	_, err = env.svc.UpdateMembership(ctx, m.ID, UpdateMembershipInput{Status: &rejected}, "admin@ufa.org")
	assert.ErrorIs(t, err, domain.ErrStatusFinal)
}

func TestUpdateMembershipInvalidStatus(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	bogus := "archived"
	_, err = env.svc.UpdateMembership(ctx, m.ID, UpdateMembershipInput{Status: &bogus}, "admin@ufa.org")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateMembershipProfileFields(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	phone := "+254711111111"
	county := "Kiambu"
	updated, err := env.svc.UpdateMembership(ctx, m.ID, UpdateMembershipInput{
		Phone:  &phone,
		County: &county,
	}, "admin@ufa.org")
	require.NoError(t, err)

	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, county, updated.County)
	assert.Equal(t, domain.StatusPending, updated.Status)
	assert.Nil(t, updated.ReviewedAt, "profile edits never stamp a review")
}

func TestDeleteMembership(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteMembership(ctx, m.ID))

	_, err = env.svc.GetMembershipByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMembershipNotFound)

	err = env.svc.DeleteMembership(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
}

func TestSubscribeReceivesImmediateSnapshot(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	_, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)

	var snapshots [][]*models.Membership
	unsubscribe := env.svc.SubscribeToMemberships(ctx, func(list []*models.Membership) {
		snapshots = append(snapshots, list)
	})
	defer unsubscribe()

	require.Len(t, snapshots, 1, "callback fires once immediately")
	assert.Len(t, snapshots[0], 1)
}

func TestSubscribeReceivesMutations(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	var snapshots [][]*models.Membership
	unsubscribe := env.svc.SubscribeToMemberships(ctx, func(list []*models.Membership) {
		snapshots = append(snapshots, list)
	})

	m, err := env.svc.CreateMembership(ctx, applicationInput("wanjiku@example.com"))
	require.NoError(t, err)
	_, err = env.svc.ApproveMembership(ctx, m.ID, "admin@ufa.org", "")
	require.NoError(t, err)
	require.NoError(t, env.svc.DeleteMembership(ctx, m.ID))

	// initial + create + approve + delete
	require.Len(t, snapshots, 4)
	assert.Empty(t, snapshots[0])
	assert.Len(t, snapshots[1], 1)
	assert.Equal(t, domain.StatusApproved, snapshots[2][0].Status)
	assert.Empty(t, snapshots[3])

	unsubscribe()
	unsubscribe() // second call is a no-op

	_, err = env.svc.CreateMembership(ctx, applicationInput("other@example.com"))
	require.NoError(t, err)
	assert.Len(t, snapshots, 4, "no callbacks after unsubscribe")
}

func TestSubscriberCount(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()

	assert.Equal(t, 0, env.svc.SubscriberCount())

	u1 := env.svc.SubscribeToMemberships(ctx, func([]*models.Membership) {})
	u2 := env.svc.SubscribeToMemberships(ctx, func([]*models.Membership) {})
	assert.Equal(t, 2, env.svc.SubscriberCount())

	u1()
	u2()
	assert.Equal(t, 0, env.svc.SubscriberCount())
}
