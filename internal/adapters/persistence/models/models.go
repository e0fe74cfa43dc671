package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table.
// Role is intentionally absent: it is derived from the admin
// allow-list at sign-in time, never stored.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	AvatarURL string         `gorm:"size:255" json:"avatar_url"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse(role string) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Role:      role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Membership Table (dual-backend: remote MySQL / local SQLite)
// ============================================================

// Membership represents memberships table.
// The string primary key is assigned by whichever backend persists the
// record: a UUID on the remote store, a unix-millis string on the local
// fallback. RegistrationID is assigned once at creation and never changes.
type Membership struct {
	ID             string     `gorm:"primaryKey;size:40" json:"id"`
	RegistrationID string     `gorm:"uniqueIndex;size:30;not null" json:"registration_id"`
	FirstName      string     `gorm:"size:100;not null" json:"first_name"`
	LastName       string     `gorm:"size:100;not null" json:"last_name"`
	Email          string     `gorm:"index;size:100;not null" json:"email"`
	Phone          string     `gorm:"size:30" json:"phone"`
	DateOfBirth    time.Time  `json:"date_of_birth"`
	Gender         string     `gorm:"size:20" json:"gender"`
	County         string     `gorm:"size:100" json:"county"`
	Constituency   string     `gorm:"size:100" json:"constituency"`
	Ward           string     `gorm:"size:100" json:"ward"`
	Occupation     string     `gorm:"size:100" json:"occupation"`
	Organization   string     `gorm:"size:100" json:"organization,omitempty"`
	Interests      []string   `gorm:"serializer:json;type:text" json:"interests"`
	Motivation     string     `gorm:"type:text" json:"motivation"`
	HowDidYouHear  string     `gorm:"size:200" json:"how_did_you_hear"`
	IsVolunteer    bool       `gorm:"default:false" json:"is_volunteer"`
	VolunteerAreas []string   `gorm:"serializer:json;type:text" json:"volunteer_areas,omitempty"`
	Status         string     `gorm:"size:20;index;default:'pending'" json:"status"`
	SubmittedAt    time.Time  `gorm:"index;not null" json:"submitted_at"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	ReviewedBy     *string    `gorm:"size:100" json:"reviewed_by"`
	Notes          string     `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// MembershipResponse DTO
type MembershipResponse struct {
	ID             string     `json:"id"`
	RegistrationID string     `json:"registration_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	DateOfBirth    time.Time  `json:"date_of_birth"`
	Gender         string     `json:"gender"`
	County         string     `json:"county"`
	Constituency   string     `json:"constituency"`
	Ward           string     `json:"ward"`
	Occupation     string     `json:"occupation"`
	Organization   string     `json:"organization,omitempty"`
	Interests      []string   `json:"interests"`
	Motivation     string     `json:"motivation"`
	HowDidYouHear  string     `json:"how_did_you_hear"`
	IsVolunteer    bool       `json:"is_volunteer"`
	VolunteerAreas []string   `json:"volunteer_areas,omitempty"`
	Status         string     `json:"status"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

func (m *Membership) ToResponse() *MembershipResponse {
	return &MembershipResponse{
		ID:             m.ID,
		RegistrationID: m.RegistrationID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		DateOfBirth:    m.DateOfBirth,
		Gender:         m.Gender,
		County:         m.County,
		Constituency:   m.Constituency,
		Ward:           m.Ward,
		Occupation:     m.Occupation,
		Organization:   m.Organization,
		Interests:      m.Interests,
		Motivation:     m.Motivation,
		HowDidYouHear:  m.HowDidYouHear,
		IsVolunteer:    m.IsVolunteer,
		VolunteerAreas: m.VolunteerAreas,
		Status:         m.Status,
		SubmittedAt:    m.SubmittedAt,
		ReviewedAt:     m.ReviewedAt,
		ReviewedBy:     m.ReviewedBy,
		Notes:          m.Notes,
	}
}

// FullName returns the applicant's display name
func (m *Membership) FullName() string {
	return m.FirstName + " " + m.LastName
}

// ============================================================
// Content Tables (events / news / leaders)
// ============================================================

// Event upcoming or past activity shown on the events page
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:200" json:"location"`
	StartsAt    time.Time      `gorm:"index;not null" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at"`
	ImageURL    string         `gorm:"size:255" json:"image_url"`
	IsPublished bool           `gorm:"default:true" json:"is_published"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// EventRegistration attendee sign-up for an event
type EventRegistration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}

// News article
type News struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	Author      string         `gorm:"size:100" json:"author"`
	ImageURL    string         `gorm:"size:255" json:"image_url"`
	PublishedAt time.Time      `gorm:"index" json:"published_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (News) TableName() string {
	return "news"
}

// Leader profile shown on the leadership page
type Leader struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Position  string         `gorm:"size:100;not null" json:"position"`
	Bio       string         `gorm:"type:text" json:"bio"`
	AvatarURL string         `gorm:"size:255" json:"avatar_url"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Leader) TableName() string {
	return "leaders"
}

// ============================================================
// Community Opportunities Directory
// ============================================================

// Opportunity volunteer/community opening in the directory
type Opportunity struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Organization string         `gorm:"size:100" json:"organization"`
	Category     string         `gorm:"size:50;index" json:"category"`
	County       string         `gorm:"size:100;index" json:"county"`
	Description  string         `gorm:"type:text" json:"description"`
	ContactEmail string         `gorm:"size:100" json:"contact_email"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

// NewsletterSubscriber e-mail list entry
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration against one database handle.
// Both the remote and the local fallback database get the same schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Membership{},
		&Event{},
		&EventRegistration{},
		&News{},
		&Leader{},
		&Opportunity{},
		&NewsletterSubscriber{},
	)
}
