package repositories

import (
	"context"

	"ufa-alliance/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// EventRepository handles events table
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns published events, soonest first
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// ListAll returns every event including unpublished (admin)
func (r *EventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.WithContext(ctx).Order("starts_at ASC").Find(&events).Error
	return events, err
}

// GetByID gets an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update updates an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

// CreateRegistration records an attendee sign-up
func (r *EventRepository) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// ListRegistrations returns sign-ups for an event
func (r *EventRepository) ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	var regs []*models.EventRegistration
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}

// NewsRepository handles news table
type NewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List returns articles, newest first
func (r *NewsRepository) List(ctx context.Context) ([]*models.News, error) {
	var articles []*models.News
	err := r.db.WithContext(ctx).Order("published_at DESC").Find(&articles).Error
	return articles, err
}

// GetByID gets an article by ID
func (r *NewsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	var article models.News
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// Create creates a new article
func (r *NewsRepository) Create(ctx context.Context, article *models.News) error {
	return r.db.WithContext(ctx).Create(article).Error
}

// Update updates an article
func (r *NewsRepository) Update(ctx context.Context, article *models.News) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete soft deletes an article
func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.News{}, id).Error
}

// LeaderRepository handles leaders table
type LeaderRepository struct {
	db *gorm.DB
}

// NewLeaderRepository creates a new leader repository
func NewLeaderRepository(db *gorm.DB) *LeaderRepository {
	return &LeaderRepository{db: db}
}

// List returns leaders in display order
func (r *LeaderRepository) List(ctx context.Context) ([]*models.Leader, error) {
	var leaders []*models.Leader
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&leaders).Error
	return leaders, err
}

// GetByID gets a leader by ID
func (r *LeaderRepository) GetByID(ctx context.Context, id uint) (*models.Leader, error) {
	var leader models.Leader
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&leader).Error
	if err != nil {
		return nil, err
	}
	return &leader, nil
}

// Create creates a new leader
func (r *LeaderRepository) Create(ctx context.Context, leader *models.Leader) error {
	return r.db.WithContext(ctx).Create(leader).Error
}

// Update updates a leader
func (r *LeaderRepository) Update(ctx context.Context, leader *models.Leader) error {
	return r.db.WithContext(ctx).Save(leader).Error
}

// Delete soft deletes a leader
func (r *LeaderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Leader{}, id).Error
}

// NewsletterRepository handles newsletter_subscribers table
type NewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new newsletter repository
func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Subscribe adds an email to the list (idempotent on duplicates)
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	sub := &models.NewsletterSubscriber{Email: email}
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return false, err
	}
	return true, nil
}
