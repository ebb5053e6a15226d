package contact

import (
	"context"
	"strings"

	"forms-backend/internal/shared/metrics"
	"forms-backend/internal/shared/telemetry"
	"forms-backend/internal/validation"
)

// Notifier sends contact emails and reports whether each was delivered.
type Notifier interface {
	SendContactNotificationToCompany(ctx context.Context, recipient, name, email, subject, message string) bool
	SendContactReply(ctx context.Context, recipient, name, subject string) bool
}

// Service relays contact submissions by email.
type Service struct {
	Notifier Notifier
	// CompanyInbox receives a copy of every submission. Empty disables it.
	CompanyInbox string
}

// Submit validates sub and sends the company notification and the sender
// confirmation. Email failures never fail the submission.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	sub = Submission{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: strings.TrimSpace(sub.Subject),
		Message: strings.TrimSpace(sub.Message),
	}
	if err := validation.Contact(sub.Name, sub.Email, sub.Subject, sub.Message); err != nil {
		metrics.IncContactSubmission(metrics.ResultInvalid)
		return Result{}, err
	}
	metrics.IncContactSubmission(metrics.ResultOK)

	res := Result{CompanyNotification: NotificationSkipped}
	if s.CompanyInbox == "" {
		telemetry.Info("contact.company_notification_skipped", map[string]any{
			"reason": "RECEIVER_EMAIL not configured",
		})
	} else if s.Notifier != nil && s.Notifier.SendContactNotificationToCompany(ctx, s.CompanyInbox, sub.Name, sub.Email, sub.Subject, sub.Message) {
		res.CompanyNotification = NotificationSent
	} else {
		res.CompanyNotification = NotificationFailed
	}

	if s.Notifier != nil {
		res.ConfirmationSent = s.Notifier.SendContactReply(ctx, sub.Email, sub.Name, sub.Subject)
	}

	telemetry.Info("contact.submitted", map[string]any{
		"company_notification": res.CompanyNotification,
		"confirmation_sent":    res.ConfirmationSent,
	})
	return res, nil
}
