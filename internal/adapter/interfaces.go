// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Azat Karimullin

// Package adapter provides outbound transport clients.
//
// The primary abstraction is [EmailSender], which decouples the rest of the
// application from the e-mail provider. The package ships a Resend-compatible
// HTTP implementation ([NewResendEmailSender]).
package adapter

import (
	"context"

	"github.com/akarimullin/tasktrack/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/email_sender_mock.go -package=mock

// EmailSender delivers one outbound e-mail message.
//
// Implementations must treat a missing provider configuration as a silent
// no-op: notification rows are the durable record, e-mail is best-effort on
// top of them.
type EmailSender interface {
	// Send delivers msg. Returns nil when the provider is not configured.
	Send(ctx context.Context, msg models.EmailMessage) error
}
