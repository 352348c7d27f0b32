package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"clientdesk/internal/models"
)

// NotificationSender delivers invitation emails. Delivery failure is
// always non-fatal to the caller: the invitation saga reports it but
// never rolls back tenant records over a lost email.
type NotificationSender interface {
	SendInvitation(ctx context.Context, email models.InvitationEmail) error
}

// httpEmailSender posts transactional emails to the provider's REST API.
type httpEmailSender struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewHTTPEmailSender(baseURL, apiKey, from string, log zerolog.Logger) NotificationSender {
	return &httpEmailSender{
		baseURL:    baseURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

type emailPayload struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	TemplateName string         `json:"template"`
	TemplateData map[string]any `json:"data"`
}

func (s *httpEmailSender) SendInvitation(ctx context.Context, email models.InvitationEmail) error {
	payload := emailPayload{
		From:         s.from,
		To:           email.Recipient,
		TemplateName: "client-invitation",
		TemplateData: map[string]any{
			"contact_name":     email.ContactName,
			"company_name":     email.CompanyName,
			"temp_password":    email.TempPassword,
			"personal_message": email.PersonalMessage,
			"portal_url":       email.PortalURL,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	s.log.Info().Str("recipient", email.Recipient).Msg("invitation email sent")
	return nil
}

// logOnlySender is the development fallback when no email provider is
// configured; it logs what would have been sent.
type logOnlySender struct {
	log zerolog.Logger
}

func NewLogOnlySender(log zerolog.Logger) NotificationSender {
	return &logOnlySender{log: log}
}

func (s *logOnlySender) SendInvitation(ctx context.Context, email models.InvitationEmail) error {
	s.log.Info().
		Str("recipient", email.Recipient).
		Str("contact_name", email.ContactName).
		Msg("invitation email (log-only sender, not delivered)")
	return nil
}
