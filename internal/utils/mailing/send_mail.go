package mailing

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// SendTimeout bounds a single SendMail call.
const SendTimeout = 5 * time.Second

type (
	Mailer interface {
		SendMail(ctx context.Context, toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		cfg    MailConfig
		dialer *gomail.Dialer
	}

	noopMailer struct{}
)

// NewMailer returns an SMTP mailer, or one that drops every message when no
// SMTP host is configured.
func NewMailer(cfg MailConfig) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return noopMailer{}, nil
	}
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPEmail, cfg.SMTPPassword),
	}, nil
}

// SendMail returns once the message is delivered or ctx is done, whichever
// comes first. An abandoned delivery goroutine runs until its SMTP exchange
// ends.
func (m *smtpMailer) SendMail(ctx context.Context, toEmail string, subject string, body string) error {
	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.message(toEmail, subject, body)
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("sending mail to %s: %w", toEmail, ctx.Err())
	}
}

func (m *smtpMailer) message(toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if m.cfg.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.cfg.SMTPEmail, m.cfg.SMTPSender)
	} else {
		mailer.SetHeader("From", m.cfg.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

func (noopMailer) SendMail(context.Context, string, string, string) error { return nil }
