package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPMailer dispatches over SMTP with STARTTLS and plain auth, the way
// the portal's notification account expects.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.Host == "" || m.From == "" {
		return errors.New("smtp host and sender are required")
	}

	mm := mail.NewMsg()
	if err := mm.From(m.From); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := mm.To(msg.To...); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	port := m.Port
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(m.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
