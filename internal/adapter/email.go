package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/akarimullin/tasktrack/internal/config"
	"github.com/akarimullin/tasktrack/internal/logger"
	"github.com/akarimullin/tasktrack/models"
	"github.com/go-resty/resty/v2"
)

// resendEmailSender is a Resend-compatible HTTP implementation of
// [EmailSender].
type resendEmailSender struct {
	client *resty.Client
	apiKey string
	from   string
	logger *logger.Logger
}

// sendEmailRequest is the provider's POST /emails body.
type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewResendEmailSender constructs an [EmailSender] talking to a
// Resend-compatible HTTP API. With an empty APIKey the sender is a no-op;
// every Send returns nil without touching the network.
func NewResendEmailSender(cfg config.Email, logger *logger.Logger) EmailSender {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	if cfg.APIKey == "" {
		logger.Info().Msg("email provider not configured, outbound mail disabled")
	}

	return &resendEmailSender{
		client: client,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		logger: logger,
	}
}

// Send implements [EmailSender]. It posts the message to the provider's
// /emails endpoint; a non-2xx response maps to [ErrSendFailed].
func (s *resendEmailSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if s.apiKey == "" {
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(sendEmailRequest{
			From:    s.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: provider responded %d", ErrSendFailed, resp.StatusCode())
	}

	return nil
}
