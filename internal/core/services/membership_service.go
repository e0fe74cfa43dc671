package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"
	"ufa-alliance/internal/pkg/watch"

	"gorm.io/gorm"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MembershipService is the single entry point for membership records.
// It hides the two storage backends behind one contract: reads and
// writes go to the remote store while it is reachable, and silently
// fall back to the local store when it is not. A remote failure is
// logged and absorbed here; callers only see an error when the local
// store fails too, or when the request itself is invalid.
type MembershipService struct {
	remote   repositories.MembershipStore // nil when no remote database is configured
	local    repositories.MembershipStore
	remoteUp func() bool
	email    *EmailService
	hub      *watch.Hub[[]*models.Membership]
}

// NewMembershipService creates a new membership service
func NewMembershipService(
	remote repositories.MembershipStore,
	local repositories.MembershipStore,
	remoteUp func() bool,
	email *EmailService,
) *MembershipService {
	return &MembershipService{
		remote:   remote,
		local:    local,
		remoteUp: remoteUp,
		email:    email,
		hub:      watch.NewHub[[]*models.Membership](),
	}
}

// remoteAvailable reports whether the remote store should be tried
func (s *MembershipService) remoteAvailable() bool {
	return s.remote != nil && s.remoteUp != nil && s.remoteUp()
}

// CreateMembershipInput carries a new application
type CreateMembershipInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	DateOfBirth    time.Time
	Gender         string
	County         string
	Constituency   string
	Ward           string
	Occupation     string
	Organization   string
	Interests      []string
	Motivation     string
	HowDidYouHear  string
	IsVolunteer    bool
	VolunteerAreas []string
}

// UpdateMembershipInput is a partial patch; nil fields are untouched
type UpdateMembershipInput struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	County         *string
	Constituency   *string
	Ward           *string
	Occupation     *string
	Organization   *string
	Interests      []string
	Motivation     *string
	IsVolunteer    *bool
	VolunteerAreas []string
	Status         *string
	Notes          *string
}

// GetMemberships returns all membership records, newest submission first
func (s *MembershipService) GetMemberships(ctx context.Context) ([]*models.Membership, error) {
	// 1. Prefer the remote store while it is reachable
	if s.remoteAvailable() {
		memberships, err := s.remote.List(ctx)
		if err == nil {
			return memberships, nil
		}
		log.Printf("⚠️ Remote membership read failed, serving local store: %v", err)
	}

	// 2. Local fallback
	return s.local.List(ctx)
}

// GetMembershipsByStatus returns records with the given status, newest first
func (s *MembershipService) GetMembershipsByStatus(ctx context.Context, status string) ([]*models.Membership, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	if s.remoteAvailable() {
		memberships, err := s.remote.ListByStatus(ctx, status)
		if err == nil {
			return memberships, nil
		}
		log.Printf("⚠️ Remote membership read failed, serving local store: %v", err)
	}

	return s.local.ListByStatus(ctx, status)
}

// GetMembershipByID returns a single membership record. A record that
// exists in neither backend yields ErrMembershipNotFound.
func (s *MembershipService) GetMembershipByID(ctx context.Context, id string) (*models.Membership, error) {
	if s.remoteAvailable() {
		m, err := s.remote.GetByID(ctx, id)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Remote membership read failed, trying local store: %v", err)
		}
	}

	m, err := s.local.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMembership registers a new application. The registration id is
// assigned before any write, so a record always carries one regardless
// of which backend ends up persisting it.
func (s *MembershipService) CreateMembership(ctx context.Context, input CreateMembershipInput) (*models.Membership, error) {
	// 1. Validate before touching any backend
	if input.FirstName == "" || input.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !emailRx.MatchString(input.Email) {
		return nil, domain.ErrInvalidEmail
	}

	// 2. Assign the registration id up front
	m := &models.Membership{
		RegistrationID: s.nextRegistrationID(ctx),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		County:         input.County,
		Constituency:   input.Constituency,
		Ward:           input.Ward,
		Occupation:     input.Occupation,
		Organization:   input.Organization,
		Interests:      input.Interests,
		Motivation:     input.Motivation,
		HowDidYouHear:  input.HowDidYouHear,
		IsVolunteer:    input.IsVolunteer,
		VolunteerAreas: input.VolunteerAreas,
		Status:         domain.StatusPending,
		SubmittedAt:    time.Now(),
	}

	// 3. Remote first, local on failure. The id is cleared between
	// attempts so each backend applies its own id scheme.
	if s.remoteAvailable() {
		err := s.remote.Create(ctx, m)
		if err == nil {
			s.afterCreate(ctx, m)
			return m, nil
		}
		log.Printf("⚠️ Remote membership write failed, saving to local store: %v", err)
		m.ID = ""
	}

	if err := s.local.Create(ctx, m); err != nil {
		log.Printf("❌ Local membership write failed: %v", err)
		return nil, err
	}

	s.afterCreate(ctx, m)
	return m, nil
}

// afterCreate runs the post-persist side effects: the confirmation
// email (detached, best-effort) and the subscriber broadcast.
func (s *MembershipService) afterCreate(ctx context.Context, m *models.Membership) {
	if s.email != nil {
		copied := *m
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("⚠️ Membership confirmation email panicked: %v", r)
				}
			}()
			s.email.SendMembershipConfirmation(&copied)
		}()
	}

	s.broadcast(ctx)
}

// UpdateMembership applies a partial update. A status change away from
// pending is final: once a record is approved or rejected its status
// can never change again, and the review fields are stamped exactly once.
func (s *MembershipService) UpdateMembership(ctx context.Context, id string, input UpdateMembershipInput, reviewer string) (*models.Membership, error) {
	// 1. Load the current record so the transition rule can be checked
	current, err := s.GetMembershipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Build the patch
	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.County != nil {
		updates["county"] = *input.County
	}
	if input.Constituency != nil {
		updates["constituency"] = *input.Constituency
	}
	if input.Ward != nil {
		updates["ward"] = *input.Ward
	}
	if input.Occupation != nil {
		updates["occupation"] = *input.Occupation
	}
	if input.Organization != nil {
		updates["organization"] = *input.Organization
	}
	if input.Interests != nil {
		updates["interests"] = input.Interests
	}
	if input.Motivation != nil {
		updates["motivation"] = *input.Motivation
	}
	if input.IsVolunteer != nil {
		updates["is_volunteer"] = *input.IsVolunteer
	}
	if input.VolunteerAreas != nil {
		updates["volunteer_areas"] = input.VolunteerAreas
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	// 3. Status transition guard. Any status on a reviewed record is
	// rejected, including re-submitting the standing decision.
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, domain.ErrInvalidStatus
		}
		if current.Status != domain.StatusPending {
			return nil, domain.ErrStatusFinal
		}

		if *input.Status != domain.StatusPending {
			now := time.Now()
			updates["status"] = *input.Status
			updates["reviewed_at"] = now
			updates["reviewed_by"] = reviewer
		}
	}

	if len(updates) == 0 {
		return current, nil
	}

	// 4. Apply with the usual backend fallback
	if err := s.applyUpdate(ctx, id, updates); err != nil {
		return nil, err
	}

	// 5. Notify subscribers and return the fresh record
	s.broadcast(ctx)
	return s.GetMembershipByID(ctx, id)
}

// ApproveMembership marks a pending application approved
func (s *MembershipService) ApproveMembership(ctx context.Context, id, reviewer, notes string) (*models.Membership, error) {
	return s.review(ctx, id, domain.StatusApproved, reviewer, notes)
}

// RejectMembership marks a pending application rejected
func (s *MembershipService) RejectMembership(ctx context.Context, id, reviewer, notes string) (*models.Membership, error) {
	return s.review(ctx, id, domain.StatusRejected, reviewer, notes)
}

func (s *MembershipService) review(ctx context.Context, id, status, reviewer, notes string) (*models.Membership, error) {
	input := UpdateMembershipInput{Status: &status}
	if notes != "" {
		input.Notes = &notes
	}
	return s.UpdateMembership(ctx, id, input, reviewer)
}

// DeleteMembership removes a record from whichever backend holds it
func (s *MembershipService) DeleteMembership(ctx context.Context, id string) error {
	if _, err := s.GetMembershipByID(ctx, id); err != nil {
		return err
	}

	if s.remoteAvailable() {
		if err := s.remote.Delete(ctx, id); err != nil {
			log.Printf("⚠️ Remote membership delete failed: %v", err)
		}
	}
	// Delete on both stores: the record may exist on either side and a
	// missing row is not an error for GORM deletes.
	if err := s.local.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcast(ctx)
	return nil
}

// SubscribeToMemberships registers a callback that receives the full
// membership list: once immediately, then after every mutation. The
// returned function cancels the subscription and is safe to call twice.
func (s *MembershipService) SubscribeToMemberships(ctx context.Context, fn func([]*models.Membership)) func() {
	unsubscribe := s.hub.Subscribe(fn)
	fn(s.snapshot(ctx))
	return unsubscribe
}

// SubscriberCount returns the number of live subscriptions
func (s *MembershipService) SubscriberCount() int {
	return s.hub.Len()
}

// applyUpdate writes the patch with remote-then-local fallback
func (s *MembershipService) applyUpdate(ctx context.Context, id string, updates map[string]interface{}) error {
	if s.remoteAvailable() {
		err := s.remote.Update(ctx, id, updates)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Remote membership update failed, updating local store: %v", err)
		}
	}

	err := s.local.Update(ctx, id, updates)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrMembershipNotFound
	}
	return err
}

// broadcast pushes the current list to every subscriber
func (s *MembershipService) broadcast(ctx context.Context) {
	s.hub.Publish(s.snapshot(ctx))
}

// snapshot returns the current list, empty rather than nil on failure
// so subscribers never have to handle an error
func (s *MembershipService) snapshot(ctx context.Context) []*models.Membership {
	memberships, err := s.GetMemberships(ctx)
	if err != nil {
		log.Printf("⚠️ Membership snapshot failed: %v", err)
		return []*models.Membership{}
	}
	return memberships
}
