package email

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Mailer delivers sign-in links. Implementations must return an error when
// the delivery provider is unreachable so callers can surface a retryable
// condition instead of silently dropping the link.
type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}

const magicLinkSubject = "Sign in to The Syndicate Studio"

func magicLinkBody(link string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto;">
  <h2>Sign in to The Syndicate Studio</h2>
  <p>Click the button below to sign in. This link expires in 15 minutes.</p>
  <p><a href="%s">Sign In</a></p>
  <p>If you didn't request this email, you can safely ignore it.</p>
</div>`, link)
}

// SMTPMailer sends magic-link mail over SMTP.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) SendMagicLink(ctx context.Context, to, link string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(magicLinkSubject)
	msg.SetBodyString(mail.TypeTextHTML, magicLinkBody(link))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

// LogMailer writes the link to the log instead of sending mail. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	Logger *logrus.Logger
}

func (m *LogMailer) SendMagicLink(_ context.Context, to, link string) error {
	m.Logger.WithFields(logrus.Fields{
		"to":   to,
		"link": link,
	}).Info("magic link (mail delivery disabled)")
	return nil
}
