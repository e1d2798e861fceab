package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"catalant-monitor/internal/domain"
)

// Message is one rendered notification ready for dispatch.
type Message struct {
	Subject string
	HTML    string
	Text    string
	To      []string
}

// Mailer delivers a rendered message. Implemented over SMTP in this
// package; faked in tests.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier composes one digest email per cycle covering every new
// listing. One message, not one per listing, to bound email volume.
type Notifier struct {
	Mailer        Mailer
	Recipients    []string
	SubjectPrefix string
	DashboardURL  string
}

// Notify sends the digest for fresh listings. An empty batch sends
// nothing and is not an error; silence is the correct outcome for
// "nothing new". A dispatch failure is returned to the controller so the
// listings are not marked seen and get retried next cycle.
func (n *Notifier) Notify(ctx context.Context, fresh []domain.Listing) error {
	if len(fresh) == 0 {
		return nil
	}
	if len(n.Recipients) == 0 {
		return errors.New("no notification recipients configured")
	}

	prefix := n.SubjectPrefix
	if prefix == "" {
		prefix = "Catalant"
	}

	subject := fmt.Sprintf("%s: %d new project(s)", prefix, len(fresh))
	if len(fresh) == 1 {
		subject = fmt.Sprintf("%s: %s", prefix, fresh[0].Title)
	}

	html, err := renderHTML(fresh, n.DashboardURL)
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	msg := Message{
		Subject: subject,
		HTML:    html,
		Text:    renderText(fresh, n.DashboardURL),
		To:      n.Recipients,
	}

	if err := n.Mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	log.Printf("[notify] sent digest new=%d to=%d", len(fresh), len(n.Recipients))
	return nil
}
