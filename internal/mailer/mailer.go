// Package mailer composes the outbound form emails and hands them to a
// Transport. Every Send* method reports success as a bool and never fails
// the caller.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"

	"forms-backend/internal/shared/metrics"
	"forms-backend/internal/shared/telemetry"
	"forms-backend/internal/shared/util"
)

// Email kinds used in logs and metrics.
const (
	KindCareerReply         = "career_reply"
	KindContactReply        = "contact_reply"
	KindContactNotification = "contact_notification"
)

const (
	careerTemplateFile = "reply_email.html"
	logoFile           = "company_logo.png"
	logoContentID      = "<company_logo>"
)

var errNoSender = errors.New("sender address not configured")

// Transport delivers a fully composed RFC 5322 message.
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// Config holds what the mailer needs to compose messages.
type Config struct {
	CompanyName  string
	Sender       string
	TemplatesDir string
	AssetsDir    string
}

// Mailer sends the confirmation and notification emails.
type Mailer struct {
	cfg       Config
	transport Transport
	now       func() time.Time
}

// New constructs a Mailer.
func New(cfg Config, transport Transport) *Mailer {
	return &Mailer{cfg: cfg, transport: transport, now: time.Now}
}

// SendCareerReply sends the HTML application confirmation, with the company
// logo inline when it is available.
func (m *Mailer) SendCareerReply(ctx context.Context, recipient, firstName, lastName, roleName string) bool {
	tmplPath := filepath.Join(m.cfg.TemplatesDir, careerTemplateFile)
	raw, err := os.ReadFile(tmplPath)
	if err != nil {
		m.fail(KindCareerReply, recipient, fmt.Errorf("read template %s: %w", tmplPath, err))
		return false
	}
	html := strings.NewReplacer(
		"{first_name}", firstName,
		"{last_name}", lastName,
		"{role_name}", roleName,
	).Replace(string(raw))

	logoPath := filepath.Join(m.cfg.AssetsDir, logoFile)
	logo, err := os.ReadFile(logoPath)
	if err != nil || len(logo) == 0 {
		telemetry.Warn("mail.logo_missing", map[string]any{
			"path":  logoPath,
			"error": err,
		})
		logo = nil
	}

	subject := fmt.Sprintf("Application Received for %s - %s!", roleName, m.cfg.CompanyName)
	msg, err := m.composeHTML(recipient, subject, html, logo)
	if err != nil {
		m.fail(KindCareerReply, recipient, err)
		return false
	}
	return m.send(ctx, KindCareerReply, recipient, msg)
}

// SendContactReply sends the plain-text confirmation to a contact form sender.
func (m *Mailer) SendContactReply(ctx context.Context, recipient, name, subject string) bool {
	company := m.cfg.CompanyName
	body := fmt.Sprintf(`
Dear %s,

Thank you for contacting %s! We have successfully received your inquiry regarding: %s.

We appreciate you reaching out and will review your message promptly. Our team will contact you very soon, typically within 24-48 business hours.

In the meantime, feel free to explore more about our services on our website.

Best regards,

The Team at %s
`, name, company, subject, company)

	msg, err := m.composeText(recipient, fmt.Sprintf("Inquiry Received: %s - %s", subject, company), body)
	if err != nil {
		m.fail(KindContactReply, recipient, err)
		return false
	}
	return m.send(ctx, KindContactReply, recipient, msg)
}

// SendContactNotificationToCompany forwards a contact submission to the
// operator inbox.
func (m *Mailer) SendContactNotificationToCompany(ctx context.Context, recipient, name, email, subject, message string) bool {
	body := fmt.Sprintf(`
You have received a new message from your website contact form:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
This message was sent from your website.
`, name, email, subject, message)

	msg, err := m.composeText(recipient, "New Contact Form Submission: "+subject, body)
	if err != nil {
		m.fail(KindContactNotification, recipient, err)
		return false
	}
	return m.send(ctx, KindContactNotification, recipient, msg)
}

func (m *Mailer) send(ctx context.Context, kind, recipient string, msg []byte) bool {
	if err := m.transport.Send(ctx, m.cfg.Sender, []string{recipient}, msg); err != nil {
		m.fail(kind, recipient, err)
		return false
	}
	metrics.IncEmail(kind, true)
	telemetry.Info("mail.sent", map[string]any{
		"kind":    kind,
		"to_hash": util.Fingerprint(recipient),
	})
	return true
}

func (m *Mailer) fail(kind, recipient string, err error) {
	metrics.IncEmail(kind, false)
	telemetry.Error("mail.failed", map[string]any{
		"kind":    kind,
		"to_hash": util.Fingerprint(recipient),
		"error":   err,
	})
}

func (m *Mailer) header(recipient, subject string) (mail.Header, error) {
	if strings.TrimSpace(m.cfg.Sender) == "" {
		return mail.Header{}, errNoSender
	}

	var h mail.Header
	h.SetDate(m.now())
	h.SetAddressList("From", []*mail.Address{{Address: m.cfg.Sender}})
	h.SetAddressList("To", []*mail.Address{{Address: recipient}})
	h.SetSubject(subject)
	if err := h.GenerateMessageID(); err != nil {
		return mail.Header{}, fmt.Errorf("message id: %w", err)
	}
	h.Set("MIME-Version", "1.0")
	return h, nil
}

func (m *Mailer) composeText(recipient, subject, body string) ([]byte, error) {
	h, err := m.header(recipient, subject)
	if err != nil {
		return nil, err
	}
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	if err := writeEntity(&buf, h.Header, []byte(body)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// composeHTML builds a text/html message, or multipart/related with the logo
// as a cid-addressable inline part when logo is non-empty.
func (m *Mailer) composeHTML(recipient, subject, html string, logo []byte) ([]byte, error) {
	h, err := m.header(recipient, subject)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if len(logo) == 0 {
		h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
		h.Set("Content-Transfer-Encoding", "quoted-printable")
		if err := writeEntity(&buf, h.Header, []byte(html)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	h.SetContentType("multipart/related", map[string]string{"type": "text/html"})
	mw, err := message.CreateWriter(&buf, h.Header)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	var htmlHeader message.Header
	htmlHeader.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	htmlHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	if err := writePart(mw, htmlHeader, []byte(html)); err != nil {
		return nil, err
	}

	var logoHeader message.Header
	logoHeader.SetContentType("image/png", map[string]string{"name": logoFile})
	logoHeader.SetContentDisposition("inline", map[string]string{"filename": logoFile})
	logoHeader.Set("Content-ID", logoContentID)
	logoHeader.Set("Content-Transfer-Encoding", "base64")
	if err := writePart(mw, logoHeader, logo); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEntity(w io.Writer, h message.Header, body []byte) error {
	ew, err := message.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	if _, err := ew.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return ew.Close()
}

func writePart(mw *message.Writer, h message.Header, body []byte) error {
	pw, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	if _, err := pw.Write(body); err != nil {
		return fmt.Errorf("write part: %w", err)
	}
	return pw.Close()
}
