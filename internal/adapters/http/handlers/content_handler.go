package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/core/domain"
	"ufa-alliance/internal/core/services"
	"ufa-alliance/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles events, news, leaders and the newsletter
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// EventRequest represents an event create/update body
type EventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	ImageURL    string     `json:"image_url"`
	IsPublished *bool      `json:"is_published"`
}

// EventRegistrationRequest represents an attendee sign-up body
type EventRegistrationRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewsRequest represents an article create/update body
type NewsRequest struct {
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Author      string    `json:"author"`
	ImageURL    string    `json:"image_url"`
	PublishedAt time.Time `json:"published_at"`
}

// LeaderRequest represents a leader create/update body
type LeaderRequest struct {
	Name      string `json:"name"`
	Position  string `json:"position"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	SortOrder int    `json:"sort_order"`
}

// NewsletterRequest represents a newsletter subscription body
type NewsletterRequest struct {
	Email string `json:"email"`
}

// ============================================================
// Events
// ============================================================

// ListEvents returns published events
// @Summary List events
// @Description List published events, soonest first
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response
// @Router /events [get]
func (h *ContentHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.contentService.GetEvents(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}
	return response.Success(c, "Events retrieved successfully", fiber.Map{"events": events})
}

// ListAllEvents returns every event including unpublished
// @Summary List all events
// @Description List every event including unpublished (admin)
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/events [get]
func (h *ContentHandler) ListAllEvents(c *fiber.Ctx) error {
	events, err := h.contentService.GetAllEvents(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}
	return response.Success(c, "Events retrieved successfully", fiber.Map{"events": events})
}

// GetEvent returns a single event
// @Summary Get event
// @Description Get one event by id
// @Tags Content
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id} [get]
func (h *ContentHandler) GetEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event id")
	}

	event, err := h.contentService.GetEvent(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to get event")
	}
	return response.Success(c, "Event retrieved successfully", event)
}

// CreateEvent creates an event
// @Summary Create event
// @Description Create a new event (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/events [post]
func (h *ContentHandler) CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ImageURL:    req.ImageURL,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := h.contentService.CreateEvent(c.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title and start time are required")
		}
		return response.InternalServerError(c, "Failed to create event")
	}
	return response.Created(c, "Event created successfully", event)
}

// UpdateEvent updates an event
// @Summary Update event
// @Description Update an existing event (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id} [put]
func (h *ContentHandler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event id")
	}

	event, err := h.contentService.GetEvent(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to get event")
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if !req.StartsAt.IsZero() {
		event.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if req.ImageURL != "" {
		event.ImageURL = req.ImageURL
	}
	if req.IsPublished != nil {
		event.IsPublished = *req.IsPublished
	}

	if err := h.contentService.UpdateEvent(c.Context(), event); err != nil {
		return response.InternalServerError(c, "Failed to update event")
	}
	return response.Success(c, "Event updated successfully", event)
}

// DeleteEvent removes an event
// @Summary Delete event
// @Description Delete an event (admin)
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id} [delete]
func (h *ContentHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event id")
	}

	if err := h.contentService.DeleteEvent(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to delete event")
	}
	return response.Success(c, "Event deleted successfully", nil)
}

// RegisterForEvent records an attendee sign-up
// @Summary Register for event
// @Description Register an attendee for an event (public)
// @Tags Content
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param body body EventRegistrationRequest true "Attendee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /events/{id}/register [post]
func (h *ContentHandler) RegisterForEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event id")
	}

	var req EventRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	reg, err := h.contentService.RegisterForEvent(c.Context(), id,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Email))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return response.NotFound(c, "Event not found")
		case errors.Is(err, domain.ErrInvalidEmail):
			return response.BadRequest(c, "Invalid email address")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name is required")
		default:
			return response.InternalServerError(c, "Failed to register for event")
		}
	}
	return response.Created(c, "Registered for event successfully", reg)
}

// ListEventRegistrations returns sign-ups for an event
// @Summary List event registrations
// @Description List attendee sign-ups for an event (admin)
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/events/{id}/registrations [get]
func (h *ContentHandler) ListEventRegistrations(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid event id")
	}

	regs, err := h.contentService.GetEventRegistrations(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return response.NotFound(c, "Event not found")
		}
		return response.InternalServerError(c, "Failed to list registrations")
	}
	return response.Success(c, "Registrations retrieved successfully", fiber.Map{
		"registrations": regs,
		"count":         len(regs),
	})
}

// ============================================================
// News
// ============================================================

// ListNews returns articles, newest first
// @Summary List news
// @Description List news articles, newest first
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response
// @Router /news [get]
func (h *ContentHandler) ListNews(c *fiber.Ctx) error {
	articles, err := h.contentService.GetNews(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list news")
	}
	return response.Success(c, "News retrieved successfully", fiber.Map{"articles": articles})
}

// GetArticle returns a single article
// @Summary Get article
// @Description Get one news article by id
// @Tags Content
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /news/{id} [get]
func (h *ContentHandler) GetArticle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid article id")
	}

	article, err := h.contentService.GetArticle(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			return response.NotFound(c, "Article not found")
		}
		return response.InternalServerError(c, "Failed to get article")
	}
	return response.Success(c, "Article retrieved successfully", article)
}

// CreateArticle creates an article
// @Summary Create article
// @Description Create a news article (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NewsRequest true "Article data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/news [post]
func (h *ContentHandler) CreateArticle(c *fiber.Ctx) error {
	var req NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	article := &models.News{
		Title:       strings.TrimSpace(req.Title),
		Body:        req.Body,
		Author:      req.Author,
		ImageURL:    req.ImageURL,
		PublishedAt: req.PublishedAt,
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}

	if err := h.contentService.CreateArticle(c.Context(), article); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title is required")
		}
		return response.InternalServerError(c, "Failed to create article")
	}
	return response.Created(c, "Article created successfully", article)
}

// UpdateArticle updates an article
// @Summary Update article
// @Description Update a news article (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param body body NewsRequest true "Article data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/news/{id} [put]
func (h *ContentHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid article id")
	}

	article, err := h.contentService.GetArticle(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			return response.NotFound(c, "Article not found")
		}
		return response.InternalServerError(c, "Failed to get article")
	}

	var req NewsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Body != "" {
		article.Body = req.Body
	}
	if req.Author != "" {
		article.Author = req.Author
	}
	if req.ImageURL != "" {
		article.ImageURL = req.ImageURL
	}
	if !req.PublishedAt.IsZero() {
		article.PublishedAt = req.PublishedAt
	}

	if err := h.contentService.UpdateArticle(c.Context(), article); err != nil {
		return response.InternalServerError(c, "Failed to update article")
	}
	return response.Success(c, "Article updated successfully", article)
}

// DeleteArticle removes an article
// @Summary Delete article
// @Description Delete a news article (admin)
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/news/{id} [delete]
func (h *ContentHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid article id")
	}

	if err := h.contentService.DeleteArticle(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			return response.NotFound(c, "Article not found")
		}
		return response.InternalServerError(c, "Failed to delete article")
	}
	return response.Success(c, "Article deleted successfully", nil)
}

// ============================================================
// Leaders
// ============================================================

// ListLeaders returns leadership profiles
// @Summary List leaders
// @Description List leadership profiles in display order
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response
// @Router /leaders [get]
func (h *ContentHandler) ListLeaders(c *fiber.Ctx) error {
	leaders, err := h.contentService.GetLeaders(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list leaders")
	}
	return response.Success(c, "Leaders retrieved successfully", fiber.Map{"leaders": leaders})
}

// CreateLeader creates a leader profile
// @Summary Create leader
// @Description Create a leadership profile (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LeaderRequest true "Leader data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/leaders [post]
func (h *ContentHandler) CreateLeader(c *fiber.Ctx) error {
	var req LeaderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	leader := &models.Leader{
		Name:      strings.TrimSpace(req.Name),
		Position:  strings.TrimSpace(req.Position),
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		SortOrder: req.SortOrder,
	}

	if err := h.contentService.CreateLeader(c.Context(), leader); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Name and position are required")
		}
		return response.InternalServerError(c, "Failed to create leader")
	}
	return response.Created(c, "Leader created successfully", leader)
}

// UpdateLeader updates a leader profile
// @Summary Update leader
// @Description Update a leadership profile (admin)
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leader ID"
// @Param body body LeaderRequest true "Leader data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/leaders/{id} [put]
func (h *ContentHandler) UpdateLeader(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leader id")
	}

	leader, err := h.contentService.GetLeader(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrLeaderNotFound) {
			return response.NotFound(c, "Leader not found")
		}
		return response.InternalServerError(c, "Failed to get leader")
	}

	var req LeaderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != "" {
		leader.Name = req.Name
	}
	if req.Position != "" {
		leader.Position = req.Position
	}
	if req.Bio != "" {
		leader.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		leader.AvatarURL = req.AvatarURL
	}
	if req.SortOrder != 0 {
		leader.SortOrder = req.SortOrder
	}

	if err := h.contentService.UpdateLeader(c.Context(), leader); err != nil {
		return response.InternalServerError(c, "Failed to update leader")
	}
	return response.Success(c, "Leader updated successfully", leader)
}

// DeleteLeader removes a leader profile
// @Summary Delete leader
// @Description Delete a leadership profile (admin)
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Leader ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/leaders/{id} [delete]
func (h *ContentHandler) DeleteLeader(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid leader id")
	}

	if err := h.contentService.DeleteLeader(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrLeaderNotFound) {
			return response.NotFound(c, "Leader not found")
		}
		return response.InternalServerError(c, "Failed to delete leader")
	}
	return response.Success(c, "Leader deleted successfully", nil)
}

// ============================================================
// Newsletter
// ============================================================

// SubscribeNewsletter adds an email to the newsletter list
// @Summary Subscribe to newsletter
// @Description Subscribe an email address to the newsletter (public, idempotent)
// @Tags Content
// @Accept json
// @Produce json
// @Param body body NewsletterRequest true "Email"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /newsletter/subscribe [post]
func (h *ContentHandler) SubscribeNewsletter(c *fiber.Ctx) error {
	var req NewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.contentService.SubscribeNewsletter(c.Context(), strings.TrimSpace(req.Email)); err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return response.BadRequest(c, "Invalid email address")
		}
		return response.InternalServerError(c, "Failed to subscribe")
	}
	return response.Success(c, "Subscribed to newsletter", nil)
}

// parseID parses the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
