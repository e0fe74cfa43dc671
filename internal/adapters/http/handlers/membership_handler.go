package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/core/domain"
	"ufa-alliance/internal/core/services"
	"ufa-alliance/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MembershipHandler handles membership application endpoints
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// ApplyRequest represents a membership application body
type ApplyRequest struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	DateOfBirth    string   `json:"date_of_birth"` // YYYY-MM-DD
	Gender         string   `json:"gender"`
	County         string   `json:"county"`
	Constituency   string   `json:"constituency"`
	Ward           string   `json:"ward"`
	Occupation     string   `json:"occupation"`
	Organization   string   `json:"organization"`
	Interests      []string `json:"interests"`
	Motivation     string   `json:"motivation"`
	HowDidYouHear  string   `json:"how_did_you_hear"`
	IsVolunteer    bool     `json:"is_volunteer"`
	VolunteerAreas []string `json:"volunteer_areas"`
}

// UpdateMembershipRequest represents a partial membership update
type UpdateMembershipRequest struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	Phone          *string  `json:"phone"`
	County         *string  `json:"county"`
	Constituency   *string  `json:"constituency"`
	Ward           *string  `json:"ward"`
	Occupation     *string  `json:"occupation"`
	Organization   *string  `json:"organization"`
	Interests      []string `json:"interests"`
	Motivation     *string  `json:"motivation"`
	IsVolunteer    *bool    `json:"is_volunteer"`
	VolunteerAreas []string `json:"volunteer_areas"`
	Status         *string  `json:"status"`
	Notes          *string  `json:"notes"`
}

// ReviewRequest carries optional reviewer notes
type ReviewRequest struct {
	Notes string `json:"notes"`
}

// Apply handles a new membership application
// @Summary Submit membership application
// @Description Submit a new membership application (public)
// @Tags Memberships
// @Accept json
// @Produce json
// @Param body body ApplyRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /memberships/apply [post]
func (h *MembershipHandler) Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return response.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
		}
		dob = parsed
	}

	input := services.CreateMembershipInput{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		DateOfBirth:    dob,
		Gender:         req.Gender,
		County:         req.County,
		Constituency:   req.Constituency,
		Ward:           req.Ward,
		Occupation:     req.Occupation,
		Organization:   req.Organization,
		Interests:      req.Interests,
		Motivation:     req.Motivation,
		HowDidYouHear:  req.HowDidYouHear,
		IsVolunteer:    req.IsVolunteer,
		VolunteerAreas: req.VolunteerAreas,
	}

	m, err := h.membershipService.CreateMembership(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			return response.BadRequest(c, "Invalid email address")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "First and last name are required")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"id":              m.ID,
		"registration_id": m.RegistrationID,
		"status":          m.Status,
	})
}

// List returns membership records
// @Summary List memberships
// @Description List all membership applications, newest first (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending/approved/rejected)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/memberships [get]
func (h *MembershipHandler) List(c *fiber.Ctx) error {
	var (
		memberships []*models.Membership
		err         error
	)

	if status := c.Query("status"); status != "" {
		memberships, err = h.membershipService.GetMembershipsByStatus(c.Context(), status)
		if errors.Is(err, domain.ErrInvalidStatus) {
			return response.BadRequest(c, "Invalid status filter")
		}
	} else {
		memberships, err = h.membershipService.GetMemberships(c.Context())
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list memberships")
	}

	return response.Success(c, "Memberships retrieved successfully", fiber.Map{
		"memberships": toMembershipResponses(memberships),
		"count":       len(memberships),
	})
}

// Stream pushes the membership list over server-sent events.
// Each message is the full list, re-sent after every mutation.
// @Summary Stream memberships
// @Description Live membership list via server-sent events (admin)
// @Tags Memberships
// @Produce text/event-stream
// @Security BearerAuth
// @Router /admin/memberships/stream [get]
func (h *MembershipHandler) Stream(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ctx := c.Context()

	// Buffered so a slow client never blocks the publishing mutation;
	// a full buffer drops the oldest snapshot, the next one supersedes it.
	updates := make(chan []*models.Membership, 8)
	unsubscribe := h.membershipService.SubscribeToMemberships(ctx, func(snapshot []*models.Membership) {
		select {
		case updates <- snapshot:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- snapshot:
			default:
			}
		}
	})

	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		keepAlive := time.NewTicker(15 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case snapshot := <-updates:
				data, err := json.Marshal(toMembershipResponses(snapshot))
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: memberships\ndata: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})

	return nil
}

// Get returns a single membership record
// @Summary Get membership
// @Description Get one membership application by id (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/memberships/{id} [get]
func (h *MembershipHandler) Get(c *fiber.Ctx) error {
	m, err := h.membershipService.GetMembershipByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return response.NotFound(c, "Membership not found")
		}
		return response.InternalServerError(c, "Failed to get membership")
	}

	return response.Success(c, "Membership retrieved successfully", m.ToResponse())
}

// Update applies a partial update to a membership record
// @Summary Update membership
// @Description Update fields of a membership application (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param body body UpdateMembershipRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/memberships/{id} [put]
func (h *MembershipHandler) Update(c *fiber.Ctx) error {
	var req UpdateMembershipRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := services.UpdateMembershipInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		County:         req.County,
		Constituency:   req.Constituency,
		Ward:           req.Ward,
		Occupation:     req.Occupation,
		Organization:   req.Organization,
		Interests:      req.Interests,
		Motivation:     req.Motivation,
		IsVolunteer:    req.IsVolunteer,
		VolunteerAreas: req.VolunteerAreas,
		Status:         req.Status,
		Notes:          req.Notes,
	}

	m, err := h.membershipService.UpdateMembership(c.Context(), c.Params("id"), input, reviewerEmail(c))
	if err != nil {
		return membershipError(c, err, "Failed to update membership")
	}

	return response.Success(c, "Membership updated successfully", m.ToResponse())
}

// Approve marks a pending application approved
// @Summary Approve membership
// @Description Approve a pending membership application (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param body body ReviewRequest false "Reviewer notes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/memberships/{id}/approve [put]
func (h *MembershipHandler) Approve(c *fiber.Ctx) error {
	var req ReviewRequest
	_ = c.BodyParser(&req)

	m, err := h.membershipService.ApproveMembership(c.Context(), c.Params("id"), reviewerEmail(c), req.Notes)
	if err != nil {
		return membershipError(c, err, "Failed to approve membership")
	}

	return response.Success(c, "Membership approved", m.ToResponse())
}

// Reject marks a pending application rejected
// @Summary Reject membership
// @Description Reject a pending membership application (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param body body ReviewRequest false "Reviewer notes"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/memberships/{id}/reject [put]
func (h *MembershipHandler) Reject(c *fiber.Ctx) error {
	var req ReviewRequest
	_ = c.BodyParser(&req)

	m, err := h.membershipService.RejectMembership(c.Context(), c.Params("id"), reviewerEmail(c), req.Notes)
	if err != nil {
		return membershipError(c, err, "Failed to reject membership")
	}

	return response.Success(c, "Membership rejected", m.ToResponse())
}

// Delete removes a membership record
// @Summary Delete membership
// @Description Delete a membership application (admin)
// @Tags Memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/memberships/{id} [delete]
func (h *MembershipHandler) Delete(c *fiber.Ctx) error {
	if err := h.membershipService.DeleteMembership(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrMembershipNotFound) {
			return response.NotFound(c, "Membership not found")
		}
		return response.InternalServerError(c, "Failed to delete membership")
	}

	return response.Success(c, "Membership deleted successfully", nil)
}

// membershipError maps service errors to HTTP responses
func membershipError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMembershipNotFound):
		return response.NotFound(c, "Membership not found")
	case errors.Is(err, domain.ErrStatusFinal):
		return response.Conflict(c, "Membership has already been reviewed")
	case errors.Is(err, domain.ErrInvalidStatus):
		return response.BadRequest(c, "Invalid membership status")
	default:
		return response.InternalServerError(c, fallback)
	}
}

// reviewerEmail identifies the acting admin for the review stamp
func reviewerEmail(c *fiber.Ctx) string {
	if email, ok := c.Locals("email").(string); ok {
		return email
	}
	return ""
}

func toMembershipResponses(memberships []*models.Membership) []*models.MembershipResponse {
	responses := make([]*models.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		responses = append(responses, m.ToResponse())
	}
	return responses
}
