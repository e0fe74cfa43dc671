package services

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRegistrationID(t *testing.T) {
	assert.Equal(t, "UFA/001/2026", formatRegistrationID(1, 2026))
	assert.Equal(t, "UFA/042/2026", formatRegistrationID(42, 2026))
	assert.Equal(t, "UFA/999/2026", formatRegistrationID(999, 2026))

	// The padding widens past three digits instead of truncating
	assert.Equal(t, "UFA/1000/2026", formatRegistrationID(1000, 2026))
}

func TestFallbackRegistrationID(t *testing.T) {
	now := time.Date(2026, 7, 14, 10, 30, 0, 0, time.UTC)
	expected := fmt.Sprintf("UFA/%06d/2026", now.UnixMilli()%1_000_000)

	assert.Equal(t, expected, fallbackRegistrationID(now))
}

func TestNextRegistrationIDSequence(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()
	year := strconv.Itoa(time.Now().Year())

	for i := 1; i <= 3; i++ {
		m, err := env.svc.CreateMembership(ctx, applicationInput(fmt.Sprintf("seq%d@example.com", i)))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("UFA/%03d/%s", i, year), m.RegistrationID)
	}
}

func TestRegistrationIDNotReusedAfterDelete(t *testing.T) {
	env := newMembershipEnv(t)
	ctx := context.Background()
	year := strconv.Itoa(time.Now().Year())

	first, err := env.svc.CreateMembership(ctx, applicationInput("first@example.com"))
	require.NoError(t, err)
	_, err = env.svc.CreateMembership(ctx, applicationInput("second@example.com"))
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteMembership(ctx, first.ID))

	// The sequence moves past every id ever issued; the freed slot is
	// never handed out again and the record lands on the remote store
	third, err := env.svc.CreateMembership(ctx, applicationInput("third@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "UFA/003/"+year, third.RegistrationID)
	assert.Len(t, third.ID, 36)
}

func TestMaxRegistrationSeq(t *testing.T) {
	assert.Equal(t, int64(0), maxRegistrationSeq(nil))
	assert.Equal(t, int64(7), maxRegistrationSeq([]string{"UFA/003/2026", "UFA/007/2026"}))
	assert.Equal(t, int64(1000), maxRegistrationSeq([]string{"UFA/999/2026", "UFA/1000/2026"}))
	assert.Equal(t, int64(2), maxRegistrationSeq([]string{"garbage", "UFA/002/2026"}))
}

func TestNextRegistrationIDUsesFallbackWhenRemoteDown(t *testing.T) {
	env := newMembershipEnv(t)
	*env.remoteUp = false

	id := env.svc.nextRegistrationID(context.Background())

	// Six-digit timestamp component instead of a sequence number
	assert.Regexp(t, `^UFA/\d{6}/\d{4}$`, id)
}
