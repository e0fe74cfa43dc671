package handlers

import (
	"errors"
	"strings"

	"ufa-alliance/internal/adapters/persistence/models"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/core/domain"
	"ufa-alliance/internal/core/services"
	"ufa-alliance/internal/pkg/pagination"
	"ufa-alliance/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OpportunityHandler handles the community-opportunities directory
type OpportunityHandler struct {
	opportunityService *services.OpportunityService
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService}
}

// OpportunityRequest represents a directory entry create/update body
type OpportunityRequest struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Category     string `json:"category"`
	County       string `json:"county"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	IsActive     *bool  `json:"is_active"`
}

// Search returns directory entries matching the query
// @Summary Search opportunities
// @Description Search active community opportunities with optional filters
// @Tags Opportunities
// @Produce json
// @Param q query string false "Free-text query"
// @Param category query string false "Category filter"
// @Param county query string false "County filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /opportunities [get]
func (h *OpportunityHandler) Search(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.SearchFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: c.Query("category"),
		County:   c.Query("county"),
	}

	opportunities, total, err := h.opportunityService.SearchOpportunities(
		c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to search opportunities")
	}

	return response.Success(c, "Opportunities retrieved successfully",
		pagination.NewResponse(opportunities, params, total))
}

// Get returns a single directory entry
// @Summary Get opportunity
// @Description Get one community opportunity by id
// @Tags Opportunities
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid opportunity id")
	}

	opp, err := h.opportunityService.GetOpportunity(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOpportunityNotFound) {
			return response.NotFound(c, "Opportunity not found")
		}
		return response.InternalServerError(c, "Failed to get opportunity")
	}
	return response.Success(c, "Opportunity retrieved successfully", opp)
}

// Create creates a directory entry
// @Summary Create opportunity
// @Description Create a community opportunity (admin)
// @Tags Opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpportunityRequest true "Opportunity data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/opportunities [post]
func (h *OpportunityHandler) Create(c *fiber.Ctx) error {
	var req OpportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	opp := &models.Opportunity{
		Title:        strings.TrimSpace(req.Title),
		Organization: req.Organization,
		Category:     req.Category,
		County:       req.County,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		IsActive:     true,
	}
	if req.IsActive != nil {
		opp.IsActive = *req.IsActive
	}

	if err := h.opportunityService.CreateOpportunity(c.Context(), opp); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Title is required")
		}
		return response.InternalServerError(c, "Failed to create opportunity")
	}
	return response.Created(c, "Opportunity created successfully", opp)
}

// Update updates a directory entry
// @Summary Update opportunity
// @Description Update a community opportunity (admin)
// @Tags Opportunities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param body body OpportunityRequest true "Opportunity data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid opportunity id")
	}

	opp, err := h.opportunityService.GetOpportunity(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOpportunityNotFound) {
			return response.NotFound(c, "Opportunity not found")
		}
		return response.InternalServerError(c, "Failed to get opportunity")
	}

	var req OpportunityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		opp.Title = req.Title
	}
	if req.Organization != "" {
		opp.Organization = req.Organization
	}
	if req.Category != "" {
		opp.Category = req.Category
	}
	if req.County != "" {
		opp.County = req.County
	}
	if req.Description != "" {
		opp.Description = req.Description
	}
	if req.ContactEmail != "" {
		opp.ContactEmail = req.ContactEmail
	}
	if req.IsActive != nil {
		opp.IsActive = *req.IsActive
	}

	if err := h.opportunityService.UpdateOpportunity(c.Context(), opp); err != nil {
		return response.InternalServerError(c, "Failed to update opportunity")
	}
	return response.Success(c, "Opportunity updated successfully", opp)
}

// Delete removes a directory entry
// @Summary Delete opportunity
// @Description Delete a community opportunity (admin)
// @Tags Opportunities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid opportunity id")
	}

	if err := h.opportunityService.DeleteOpportunity(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrOpportunityNotFound) {
			return response.NotFound(c, "Opportunity not found")
		}
		return response.InternalServerError(c, "Failed to delete opportunity")
	}
	return response.Success(c, "Opportunity deleted successfully", nil)
}
