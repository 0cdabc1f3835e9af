// Package mailer renders and delivers the planner's transactional e-mails:
// the owner's trip confirmation and the guests' invitations.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"text/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed templates
var templateFS embed.FS

// Template names, relative to the embedded templates directory.
const (
	TripConfirmation = "trip_confirmation.tmpl"
	TripInvitation   = "trip_invitation.tmpl"
)

// TripEmail is the data both trip templates are rendered with.
type TripEmail struct {
	Destination string
	// When is the human-readable date range, e.g. "12 a 18 de jun.".
	When            string
	OwnerName       string
	ConfirmationURL string
}

// Mailer sends one templated e-mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, recipient, templateFile string, data any) error
}

// message is a rendered template: every template file defines the
// "subject", "plainBody" and "htmlBody" blocks.
type message struct {
	subject   string
	plainBody string
	htmlBody  string
}

func render(templateFile string, data any) (message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return message{}, fmt.Errorf("parse %s: %w", templateFile, err)
	}

	var subject, plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return message{}, fmt.Errorf("render plain body: %w", err)
	}

	htmlTmpl, err := htmltemplate.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return message{}, fmt.Errorf("parse %s: %w", templateFile, err)
	}
	var htmlBody bytes.Buffer
	if err := htmlTmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return message{}, fmt.Errorf("render html body: %w", err)
	}

	return message{
		subject:   subject.String(),
		plainBody: plainBody.String(),
		htmlBody:  htmlBody.String(),
	}, nil
}

// SMTP delivers e-mail through an SMTP relay.
type SMTP struct {
	dialer   *mail.Dialer
	sender   string
	attempts int
	backoff  time.Duration
}

// NewSMTP returns an SMTP mailer. sender is the From header, e.g.
// "plann.er <no-reply@planner.example>".
func NewSMTP(host string, port int, username, password, sender string) *SMTP {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTP{dialer: dialer, sender: sender, attempts: 3, backoff: 500 * time.Millisecond}
}

// Send renders templateFile with data and delivers it to recipient, trying up
// to three times before giving up.
func (m *SMTP) Send(ctx context.Context, recipient, templateFile string, data any) error {
	rendered, err := render(templateFile, data)
	if err != nil {
		return fmt.Errorf("mailer.SMTP.Send: %w", err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", rendered.subject)
	msg.SetBody("text/plain", rendered.plainBody)
	msg.AddAlternative("text/html", rendered.htmlBody)

	for i := 1; i <= m.attempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if i == m.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("mailer.SMTP.Send: %w", ctx.Err())
		case <-time.After(m.backoff):
		}
	}
	return fmt.Errorf("mailer.SMTP.Send: %d attempts: %w", m.attempts, err)
}

// Log renders e-mails and writes them to a logger instead of sending them.
// It is used when no SMTP host is configured, e.g. in local development.
type Log struct {
	log *slog.Logger
}

// NewLog returns a Log mailer writing to log.
func NewLog(log *slog.Logger) *Log {
	return &Log{log: log}
}

// Send renders the template so broken templates still fail loudly, then logs it.
func (m *Log) Send(ctx context.Context, recipient, templateFile string, data any) error {
	rendered, err := render(templateFile, data)
	if err != nil {
		return fmt.Errorf("mailer.Log.Send: %w", err)
	}
	m.log.InfoContext(ctx, "email not sent (no SMTP host configured)",
		"to", recipient,
		"subject", rendered.subject,
		"body", rendered.plainBody,
	)
	return nil
}
