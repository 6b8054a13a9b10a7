package inquiry

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier tells the shop about a new inquiry.
type Notifier interface {
	Notify(ctx context.Context, in Inquiry) error
}

// NopNotifier drops notifications. Used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Inquiry) error { return nil }

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Dialer sends composed messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// MailNotifier emails each inquiry to the shop address.
type MailNotifier struct {
	cfg    SMTPConfig
	dialer Dialer
	log    *zap.Logger
}

// NewMailNotifier builds a notifier that dials cfg.Host for every message.
func NewMailNotifier(cfg SMTPConfig, log *zap.Logger) *MailNotifier {
	return &MailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log,
	}
}

// WithDialer replaces the SMTP dialer.
func (n *MailNotifier) WithDialer(d Dialer) *MailNotifier {
	n.dialer = d
	return n
}

// Notify composes and sends the notification email.
func (n *MailNotifier) Notify(_ context.Context, in Inquiry) error {
	m := Message(n.cfg.From, n.cfg.To, in)
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("inquiry: send notification: %w", err)
	}
	n.log.Info("inquiry notification sent", zap.String("id", in.ID), zap.String("to", n.cfg.To))
	return nil
}

// Message builds the notification email for in.
func Message(from, to string, in Inquiry) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetAddressHeader("Reply-To", in.Email, in.Name)
	m.SetHeader("Subject", fmt.Sprintf("New inquiry: %s from %s", in.ServiceType, in.Name))

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", in.Name)
	fmt.Fprintf(&b, "Email: %s\n", in.Email)
	fmt.Fprintf(&b, "Phone: %s\n", in.Phone)
	fmt.Fprintf(&b, "Service: %s\n", in.ServiceType)
	fmt.Fprintf(&b, "Received: %s\n\n", in.CreatedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString(in.Details)
	m.SetBody("text/plain", b.String())
	return m
}
