package services

import (
	"context"
	"errors"
	"log"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"

	"gorm.io/gorm"
)

// Content errors
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrNewsNotFound   = errors.New("news article not found")
	ErrLeaderNotFound = errors.New("leader not found")
)

// ContentService serves the public site content: events, news
// articles, leadership profiles and the newsletter list.
type ContentService struct {
	eventRepo      *repositories.EventRepository
	newsRepo       *repositories.NewsRepository
	leaderRepo     *repositories.LeaderRepository
	newsletterRepo *repositories.NewsletterRepository
	email          *EmailService
}

// NewContentService creates a new content service
func NewContentService(
	eventRepo *repositories.EventRepository,
	newsRepo *repositories.NewsRepository,
	leaderRepo *repositories.LeaderRepository,
	newsletterRepo *repositories.NewsletterRepository,
	email *EmailService,
) *ContentService {
	return &ContentService{
		eventRepo:      eventRepo,
		newsRepo:       newsRepo,
		leaderRepo:     leaderRepo,
		newsletterRepo: newsletterRepo,
		email:          email,
	}
}

// ============================================================
// Events
// ============================================================

// GetEvents returns published events, soonest first
func (s *ContentService) GetEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.List(ctx)
}

// GetAllEvents returns every event including unpublished (admin)
func (s *ContentService) GetAllEvents(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.ListAll(ctx)
}

// GetEvent returns a single event
func (s *ContentService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// CreateEvent creates an event
func (s *ContentService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Title == "" || event.StartsAt.IsZero() {
		return domain.ErrInvalidInput
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return err
	}
	log.Printf("✅ Event created: %s", event.Title)
	return nil
}

// UpdateEvent updates an event
func (s *ContentService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if _, err := s.GetEvent(ctx, event.ID); err != nil {
		return err
	}
	return s.eventRepo.Update(ctx, event)
}

// DeleteEvent removes an event
func (s *ContentService) DeleteEvent(ctx context.Context, id uint) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

// RegisterForEvent records an attendee and sends the confirmation.
// The email is best-effort and detached; registration never waits on it.
func (s *ContentService) RegisterForEvent(ctx context.Context, eventID uint, name, email string) (*models.EventRegistration, error) {
	// 1. Validate before touching storage
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailRx.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	// 2. The event must exist and be published
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished {
		return nil, ErrEventNotFound
	}

	// 3. Record the sign-up
	reg := &models.EventRegistration{
		EventID: eventID,
		Name:    name,
		Email:   email,
	}
	if err := s.eventRepo.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	// 4. Confirmation email, detached
	if s.email != nil {
		go s.email.SendEventConfirmation(name, email, event)
	}

	log.Printf("✅ Event registration: %s -> %s", email, event.Title)
	return reg, nil
}

// GetEventRegistrations returns sign-ups for an event (admin)
func (s *ContentService) GetEventRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListRegistrations(ctx, eventID)
}

// ============================================================
// News
// ============================================================

// GetNews returns articles, newest first
func (s *ContentService) GetNews(ctx context.Context) ([]*models.News, error) {
	return s.newsRepo.List(ctx)
}

// GetArticle returns a single article
func (s *ContentService) GetArticle(ctx context.Context, id uint) (*models.News, error) {
	article, err := s.newsRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsNotFound
	}
	return article, err
}

// CreateArticle creates an article
func (s *ContentService) CreateArticle(ctx context.Context, article *models.News) error {
	if article.Title == "" {
		return domain.ErrInvalidInput
	}
	return s.newsRepo.Create(ctx, article)
}

// UpdateArticle updates an article
func (s *ContentService) UpdateArticle(ctx context.Context, article *models.News) error {
	if _, err := s.GetArticle(ctx, article.ID); err != nil {
		return err
	}
	return s.newsRepo.Update(ctx, article)
}

// DeleteArticle removes an article
func (s *ContentService) DeleteArticle(ctx context.Context, id uint) error {
	if _, err := s.GetArticle(ctx, id); err != nil {
		return err
	}
	return s.newsRepo.Delete(ctx, id)
}

// ============================================================
// Leaders
// ============================================================

// GetLeaders returns leadership profiles in display order
func (s *ContentService) GetLeaders(ctx context.Context) ([]*models.Leader, error) {
	return s.leaderRepo.List(ctx)
}

// GetLeader returns a single leader
func (s *ContentService) GetLeader(ctx context.Context, id uint) (*models.Leader, error) {
	leader, err := s.leaderRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeaderNotFound
	}
	return leader, err
}

// CreateLeader creates a leader profile
func (s *ContentService) CreateLeader(ctx context.Context, leader *models.Leader) error {
	if leader.Name == "" || leader.Position == "" {
		return domain.ErrInvalidInput
	}
	return s.leaderRepo.Create(ctx, leader)
}

// UpdateLeader updates a leader profile
func (s *ContentService) UpdateLeader(ctx context.Context, leader *models.Leader) error {
	if _, err := s.GetLeader(ctx, leader.ID); err != nil {
		return err
	}
	return s.leaderRepo.Update(ctx, leader)
}

// DeleteLeader removes a leader profile
func (s *ContentService) DeleteLeader(ctx context.Context, id uint) error {
	if _, err := s.GetLeader(ctx, id); err != nil {
		return err
	}
	return s.leaderRepo.Delete(ctx, id)
}

// ============================================================
// Newsletter
// ============================================================

// SubscribeNewsletter adds an email to the list. Subscribing twice is
// not an error; the welcome email is only sent on first subscription.
func (s *ContentService) SubscribeNewsletter(ctx context.Context, email string) error {
	if !emailRx.MatchString(email) {
		return domain.ErrInvalidEmail
	}

	created, err := s.newsletterRepo.Subscribe(ctx, email)
	if err != nil {
		return err
	}

	if created {
		if s.email != nil {
			go s.email.SendNewsletterWelcome(email)
		}
		log.Printf("✅ Newsletter subscription: %s", email)
	}
	return nil
}
