package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"forms-backend/internal/shared/telemetry"
)

const defaultSMTPTimeout = 15 * time.Second

// SMTPTransport delivers through an SMTP relay, upgrading with STARTTLS when
// UseTLS is set.
type SMTPTransport struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	Timeout  time.Duration
}

func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	addr := net.JoinHostPort(t.Host, strconv.Itoa(t.Port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(timeout))

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if t.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: t.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if t.Username != "" && t.Password != "" {
		auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

type sesAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESTransport delivers raw messages through Amazon SES.
type SESTransport struct {
	client sesAPI
}

// NewSESTransport loads the default AWS config for region.
func NewSESTransport(ctx context.Context, region string) (*SESTransport, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESTransport{client: ses.NewFromConfig(cfg)}, nil
}

func (t *SESTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	out, err := t.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from),
		Destinations: to,
		RawMessage:   &sestypes.RawMessage{Data: msg},
	})
	if err != nil {
		return fmt.Errorf("ses send raw email: %w", err)
	}
	telemetry.Info("mail.ses_accepted", map[string]any{
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}

// LogTransport only logs the envelope. It always succeeds.
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	telemetry.Info("mail.logged", map[string]any{
		"from":       from,
		"to":         to,
		"size_bytes": len(msg),
	})
	return nil
}

var (
	_ Transport = (*SMTPTransport)(nil)
	_ Transport = (*SESTransport)(nil)
	_ Transport = LogTransport{}
)
