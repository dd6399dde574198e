package mail

import (
	"io"

	"gopkg.in/gomail.v2"

	"github.com/spec-kit/event-registration/internal/config"
	apperrors "github.com/spec-kit/event-registration/pkg/util"
)

// Attachment is an in-memory file attached to an outbound message.
type Attachment struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Message is a single outbound email.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Sender delivers email. Implementations are best-effort collaborators;
// callers log failures and never roll back on them.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender from mail configuration.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, apperrors.NewMisconfiguration("SMTP_HOST is not set")
	}
	if cfg.From == "" {
		return nil, apperrors.NewMisconfiguration("MAIL_FROM_ADDRESS is not set")
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.From,
	}, nil
}

// Send delivers a single message.
func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if att := msg.Attachment; att != nil {
		m.Attach(att.FileName,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.ContentType}}),
		)
	}

	return s.dialer.DialAndSend(m)
}
