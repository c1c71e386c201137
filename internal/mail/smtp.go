package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/personal-blog-api/internal/config"
)

type smtpService struct {
	host string
	port int
	ssl  bool
}

// wellKnownServices maps EMAIL_SERVICE shortcuts to their SMTP endpoints
var wellKnownServices = map[string]smtpService{
	"gmail":     {host: "smtp.gmail.com", port: 465, ssl: true},
	"outlook":   {host: "smtp-mail.outlook.com", port: 587},
	"hotmail":   {host: "smtp-mail.outlook.com", port: 587},
	"office365": {host: "smtp.office365.com", port: 587},
	"yahoo":     {host: "smtp.mail.yahoo.com", port: 465, ssl: true},
	"qq":        {host: "smtp.qq.com", port: 465, ssl: true},
	"163":       {host: "smtp.163.com", port: 465, ssl: true},
}

// SMTPSender delivers mail through an SMTP relay
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender builds a sender from a service shortcut or an explicit host
func NewSMTPSender(cfg *config.MailConfig) (*SMTPSender, error) {
	host, port, ssl := cfg.Host, cfg.Port, cfg.Secure

	if cfg.Service != "" {
		svc, ok := wellKnownServices[strings.ToLower(cfg.Service)]
		if !ok {
			return nil, fmt.Errorf("unknown EMAIL_SERVICE %q", cfg.Service)
		}
		host, port, ssl = svc.host, svc.port, svc.ssl
	}

	if host == "" {
		return &SMTPSender{}, nil
	}

	dialer := gomail.NewDialer(host, port, cfg.User, cfg.Password)
	dialer.SSL = ssl
	return &SMTPSender{dialer: dialer}, nil
}

// Send connects and authenticates before handing over the message,
// so an unreachable or misconfigured relay fails before any data is sent.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	if s.dialer == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conn, err := s.dialer.Dial()
	if err != nil {
		return "", classify(err)
	}
	defer conn.Close()

	messageID := newMessageID(msg.From)

	m := gomail.NewMessage()
	m.SetHeader("Message-Id", messageID)
	m.SetAddressHeader("From", msg.From, msg.FromName)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if err := conn.Send(msg.From, []string{msg.To}, m); err != nil {
		return "", classify(err)
	}

	return messageID, nil
}

// classify maps transport failures onto ErrAuth and ErrConnection, keeping the cause
func classify(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 454, 530, 534, 535:
			return fmt.Errorf("%w: %w", ErrAuth, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return err
}

func newMessageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
