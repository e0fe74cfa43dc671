package handlers

import (
	"strings"

	"ufa-alliance/internal/core/services"
	"ufa-alliance/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmailHandler handles the admin email tool
type EmailHandler struct {
	emailService *services.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// SendEmailRequest represents a free-form email body
type SendEmailRequest struct {
	ToEmail string `json:"to_email"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send sends a free-form email
// @Summary Send email
// @Description Send a custom email to one recipient (admin)
// @Tags Email
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SendEmailRequest true "Email data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /admin/email/send [post]
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var req SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ToEmail == "" {
		return response.BadRequest(c, "Recipient email is required")
	}
	if req.Subject == "" {
		return response.BadRequest(c, "Subject is required")
	}

	toName := strings.TrimSpace(req.ToName)
	if toName == "" {
		toName = req.ToEmail
	}

	if err := h.emailService.SendCustom(req.ToEmail, toName, req.Subject, req.Body); err != nil {
		return response.Error(c, fiber.StatusBadGateway, "Failed to send email")
	}

	return response.Success(c, "Email sent successfully", fiber.Map{
		"simulated": !h.emailService.IsEnabled(),
	})
}
