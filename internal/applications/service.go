package applications

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"forms-backend/internal/shared/metrics"
	"forms-backend/internal/shared/telemetry"
	"forms-backend/internal/validation"
)

// ResumeSaver stores an uploaded resume and returns its location.
type ResumeSaver interface {
	Save(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// Notifier sends the applicant confirmation. It reports success and never
// fails the submission.
type Notifier interface {
	SendCareerReply(ctx context.Context, recipient, firstName, lastName, roleName string) bool
}

// Result is the outcome of a successful submission.
type Result struct {
	Record           Record
	ConfirmationSent bool
}

// Service validates, stores and acknowledges job applications.
type Service struct {
	Repo     Repo
	Resumes  ResumeSaver
	Notifier Notifier

	Now   func() time.Time
	NewID func() string
}

// Submit runs the application flow. Validation failures match
// validation.ErrInvalid; store failures are *StoreError.
func (s *Service) Submit(ctx context.Context, form Form, resume *multipart.FileHeader) (Result, error) {
	form = form.trimmed()

	if err := validateForm(form); err != nil {
		metrics.IncApplicationSubmission(metrics.ResultInvalid)
		return Result{}, err
	}

	location, err := s.Resumes.Save(ctx, resume)
	if err != nil {
		if errors.Is(err, validation.ErrInvalid) {
			metrics.IncApplicationSubmission(metrics.ResultInvalid)
		} else {
			metrics.IncApplicationSubmission(metrics.ResultStoreError)
		}
		return Result{}, err
	}

	rec := Record{
		ID:          s.newID(),
		Date:        s.now(),
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Phone:       form.Phone,
		WorkExp:     form.WorkExp,
		ApplyingFor: form.ApplyingFor,
		Github:      form.Github,
		Linkedin:    form.Linkedin,
		Intro:       form.Intro,
		ResumePath:  location,
	}

	if err := s.Repo.Append(ctx, rec); err != nil {
		metrics.IncApplicationSubmission(metrics.ResultStoreError)
		telemetry.Error("application.store_failed", map[string]any{
			"application_id": rec.ID,
			"resume_path":    location,
			"error":          err,
		})
		return Result{}, err
	}
	metrics.IncApplicationSubmission(metrics.ResultOK)
	telemetry.Info("application.stored", map[string]any{
		"application_id": rec.ID,
		"applying_for":   rec.ApplyingFor,
	})

	sent := false
	if s.Notifier != nil {
		sent = s.Notifier.SendCareerReply(ctx, rec.Email, rec.FirstName, rec.LastName, rec.ApplyingFor)
	}
	if !sent {
		telemetry.Warn("application.confirmation_not_sent", map[string]any{
			"application_id": rec.ID,
		})
	}

	return Result{Record: rec, ConfirmationSent: sent}, nil
}

func validateForm(form Form) error {
	if err := validation.ApplicationRequired(
		validation.Field{Name: "firstName", Value: form.FirstName},
		validation.Field{Name: "lastName", Value: form.LastName},
		validation.Field{Name: "email", Value: form.Email},
		validation.Field{Name: "phone", Value: form.Phone},
		validation.Field{Name: "workExp", Value: form.WorkExp},
		validation.Field{Name: "applyingFor", Value: form.ApplyingFor},
		validation.Field{Name: "github", Value: form.Github},
		validation.Field{Name: "linkedin", Value: form.Linkedin},
	); err != nil {
		return err
	}
	if err := validation.Email(form.Email); err != nil {
		return err
	}
	return validation.Phone(form.Phone)
}

func (f Form) trimmed() Form {
	return Form{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		WorkExp:     strings.TrimSpace(f.WorkExp),
		ApplyingFor: strings.TrimSpace(f.ApplyingFor),
		Github:      strings.TrimSpace(f.Github),
		Linkedin:    strings.TrimSpace(f.Linkedin),
		Intro:       strings.TrimSpace(f.Intro),
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
