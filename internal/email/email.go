// Package email delivers the rendered digest over SMTP.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"dailybrief/internal/logger"
)

// SubjectForDate builds the date-stamped digest subject line.
func SubjectForDate(date string) string {
	return "📰 技术日报 - " + date
}

// Today returns the current date in the digest's display format.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Sender delivers digests via a configured SMTP account.
type Sender struct {
	host        string
	port        int
	username    string
	password    string
	fromAddress string
	fromName    string
}

// Options configures the SMTP sender.
type Options struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// NewSender creates an SMTP sender. The from address defaults to the
// username when unset.
func NewSender(opts Options) *Sender {
	if opts.FromAddress == "" {
		opts.FromAddress = opts.Username
	}
	return &Sender{
		host:        opts.Host,
		port:        opts.Port,
		username:    opts.Username,
		password:    opts.Password,
		fromAddress: opts.FromAddress,
		fromName:    opts.FromName,
	}
}

// Send delivers the digest body to the recipient with the given subject.
func (s *Sender) Send(ctx context.Context, recipient, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddress); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending digest email: %w", err)
	}

	logger.Info("digest email sent", "subject", subject, "recipient", recipient)
	return nil
}
