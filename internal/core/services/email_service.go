package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"ufa-alliance/internal/adapters/persistence/models"
)

const emailEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrEmailSendFailed is returned by SendCustom when the provider rejects a send
var ErrEmailSendFailed = errors.New("email send failed")

// EmailService sends transactional email through the EmailJS REST API.
// When the provider variables are absent every send becomes a logged
// no-op that reports success, so the surrounding flow is never blocked
// by missing email configuration.
type EmailService struct {
	serviceID  string
	templateID string
	publicKey  string
	endpoint   string
	client     *http.Client
	enabled    bool
}

// NewEmailService creates a new email service from the environment
func NewEmailService() *EmailService {
	serviceID := os.Getenv("EMAILJS_SERVICE_ID")
	templateID := os.Getenv("EMAILJS_TEMPLATE_ID")
	publicKey := os.Getenv("EMAILJS_PUBLIC_KEY")

	return &EmailService{
		serviceID:  serviceID,
		templateID: templateID,
		publicKey:  publicKey,
		endpoint:   emailEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
		enabled:    serviceID != "" && templateID != "" && publicKey != "",
	}
}

// IsEnabled checks if the email provider is configured
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// send invokes the single named template with a parameter bag
func (s *EmailService) send(params map[string]string) error {
	if !s.enabled {
		log.Printf("📧 Email simulated (provider not configured): to=%s subject=%q",
			params["to_email"], params["subject"])
		return nil
	}

	payload := map[string]interface{}{
		"service_id":      s.serviceID,
		"template_id":     s.templateID,
		"user_id":         s.publicKey,
		"template_params": params,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned %d", ErrEmailSendFailed, resp.StatusCode)
	}

	return nil
}

// SendMembershipConfirmation confirms a received membership application.
// Best-effort: failures are logged, never surfaced.
func (s *EmailService) SendMembershipConfirmation(m *models.Membership) {
	err := s.send(map[string]string{
		"to_email": m.Email,
		"to_name":  m.FullName(),
		"subject":  "Your UFA membership application",
		"title":    "Application received",
		"body": fmt.Sprintf(
			"Dear %s, thank you for applying to join the United Future Alliance. "+
				"Your registration number is %s. Our team will review your application shortly.",
			m.FirstName, m.RegistrationID),
	})
	if err != nil {
		log.Printf("⚠️ Membership confirmation email failed for %s: %v", m.Email, err)
	}
}

// SendEventConfirmation confirms an event registration
func (s *EmailService) SendEventConfirmation(name, email string, event *models.Event) {
	err := s.send(map[string]string{
		"to_email": email,
		"to_name":  name,
		"subject":  "You're registered: " + event.Title,
		"title":    "Event registration confirmed",
		"body": fmt.Sprintf(
			"Hi %s, you are registered for %s on %s at %s. See you there!",
			name, event.Title, event.StartsAt.Format("Monday, 2 January 2006 15:04"), event.Location),
	})
	if err != nil {
		log.Printf("⚠️ Event confirmation email failed for %s: %v", email, err)
	}
}

// SendNewsletterWelcome welcomes a new newsletter subscriber
func (s *EmailService) SendNewsletterWelcome(email string) {
	err := s.send(map[string]string{
		"to_email": email,
		"to_name":  email,
		"subject":  "Welcome to the UFA newsletter",
		"title":    "Welcome aboard",
		"body":     "Thanks for subscribing. You'll receive updates on our events, campaigns and community programs.",
	})
	if err != nil {
		log.Printf("⚠️ Newsletter welcome email failed for %s: %v", email, err)
	}
}

// SendAccountWelcome welcomes a newly registered account
func (s *EmailService) SendAccountWelcome(name, email string) {
	err := s.send(map[string]string{
		"to_email": email,
		"to_name":  name,
		"subject":  "Welcome to United Future Alliance",
		"title":    "Account created",
		"body":     fmt.Sprintf("Hi %s, your UFA account is ready. Sign in to explore events, news and ways to get involved.", name),
	})
	if err != nil {
		log.Printf("⚠️ Account welcome email failed for %s: %v", email, err)
	}
}

// SendCustom sends a free-form email (admin email tool).
// Unlike the scenario helpers this one reports failure to the caller.
func (s *EmailService) SendCustom(toEmail, toName, subject, body string) error {
	return s.send(map[string]string{
		"to_email": toEmail,
		"to_name":  toName,
		"subject":  subject,
		"title":    subject,
		"body":     body,
	})
}
