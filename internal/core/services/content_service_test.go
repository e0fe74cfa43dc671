package services

import (
	"context"
	"testing"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()

	db := openTestDB(t)
	return NewContentService(
		repositories.NewEventRepository(db),
		repositories.NewNewsRepository(db),
		repositories.NewLeaderRepository(db),
		repositories.NewNewsletterRepository(db),
		nil,
	)
}

func upcomingEvent(title string, startsAt time.Time) *models.Event {
	return &models.Event{
		Title:       title,
		Location:    "Uhuru Park, Nairobi",
		StartsAt:    startsAt,
		IsPublished: true,
	}
}

func TestEventLifecycle(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	event := upcomingEvent("Youth Town Hall", time.Now().Add(48*time.Hour))
	require.NoError(t, svc.CreateEvent(ctx, event))
	require.NotZero(t, event.ID)

	got, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Youth Town Hall", got.Title)

	got.Location = "KICC, Nairobi"
	require.NoError(t, svc.UpdateEvent(ctx, got))

	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	_, err = svc.GetEvent(ctx, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateEventValidation(t *testing.T) {
	svc := newContentService(t)

	err := svc.CreateEvent(context.Background(), &models.Event{Title: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventListOnlyPublished(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	published := upcomingEvent("Open Rally", time.Now().Add(24*time.Hour))
	draft := upcomingEvent("Draft Rally", time.Now().Add(12*time.Hour))
	draft.IsPublished = false

	require.NoError(t, svc.CreateEvent(ctx, published))
	require.NoError(t, svc.CreateEvent(ctx, draft))

	events, err := svc.GetEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Open Rally", events[0].Title)

	all, err := svc.GetAllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegisterForEvent(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	event := upcomingEvent("Civic Workshop", time.Now().Add(24*time.Hour))
	require.NoError(t, svc.CreateEvent(ctx, event))

	reg, err := svc.RegisterForEvent(ctx, event.ID, "Wanjiku Kamau", "wanjiku@example.com")
	require.NoError(t, err)
	assert.Equal(t, event.ID, reg.EventID)

	regs, err := svc.GetEventRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegisterForEventValidation(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	event := upcomingEvent("Civic Workshop", time.Now().Add(24*time.Hour))
	require.NoError(t, svc.CreateEvent(ctx, event))

	_, err := svc.RegisterForEvent(ctx, event.ID, "", "ok@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RegisterForEvent(ctx, event.ID, "Jane", "bad address")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.RegisterForEvent(ctx, 9999, "Jane", "ok@example.com")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterForUnpublishedEvent(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	draft := upcomingEvent("Hidden Event", time.Now().Add(24*time.Hour))
	draft.IsPublished = false
	require.NoError(t, svc.CreateEvent(ctx, draft))

	_, err := svc.RegisterForEvent(ctx, draft.ID, "Jane", "ok@example.com")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestNewsletterSubscribeIdempotent(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	require.NoError(t, svc.SubscribeNewsletter(ctx, "reader@example.com"))
	require.NoError(t, svc.SubscribeNewsletter(ctx, "reader@example.com"))

	err := svc.SubscribeNewsletter(ctx, "not an email")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestNewsLifecycle(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	article := &models.News{Title: "Launch Announcement", Body: "...", PublishedAt: time.Now()}
	require.NoError(t, svc.CreateArticle(ctx, article))

	articles, err := svc.GetNews(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 1)

	require.NoError(t, svc.DeleteArticle(ctx, article.ID))
	_, err = svc.GetArticle(ctx, article.ID)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestLeaderOrdering(t *testing.T) {
	svc := newContentService(t)
	ctx := context.Background()

	second := &models.Leader{Name: "B Leader", Position: "Treasurer", SortOrder: 2}
	first := &models.Leader{Name: "A Leader", Position: "Chairperson", SortOrder: 1}
	require.NoError(t, svc.CreateLeader(ctx, second))
	require.NoError(t, svc.CreateLeader(ctx, first))

	leaders, err := svc.GetLeaders(ctx)
	require.NoError(t, err)
	require.Len(t, leaders, 2)
	assert.Equal(t, "Chairperson", leaders[0].Position)
}
