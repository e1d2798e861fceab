package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"catalant-monitor/internal/domain"
)

type fakeMailer struct {
	sent []Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func testListing(id, title string) domain.Listing {
	return domain.Listing{
		ID:         id,
		Title:      title,
		DetectedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestNotifyEmptyBatchSendsNothing(t *testing.T) {
	fm := &fakeMailer{}
	n := &Notifier{Mailer: fm, Recipients: []string{"a@example.com"}}

	if err := n.Notify(context.Background(), nil); err != nil {
		t.Fatalf("empty batch should be silent success, got %v", err)
	}
	if len(fm.sent) != 0 {
		t.Fatalf("sent %d messages, want 0", len(fm.sent))
	}
}

func TestNotifyRequiresRecipients(t *testing.T) {
	fm := &fakeMailer{}
	n := &Notifier{Mailer: fm}

	err := n.Notify(context.Background(), []domain.Listing{testListing("P1", "Audit")})
	if err == nil {
		t.Fatal("expected error with no recipients")
	}
	if len(fm.sent) != 0 {
		t.Fatal("nothing should be dispatched without recipients")
	}
}

func TestNotifyDigestContent(t *testing.T) {
	fm := &fakeMailer{}
	n := &Notifier{
		Mailer:        fm,
		Recipients:    []string{"a@example.com", "b@example.com"},
		SubjectPrefix: "Catalant",
		DashboardURL:  "https://app.gocatalant.com/c/_/u/0/dashboard/",
	}

	l1 := testListing("P1", "Pricing Audit")
	l1.Location = domain.FieldOf("Boston")
	l1.Categories = []string{"Finance", "Strategy"}
	l2 := testListing("P2", "Ops Review") // location stays unknown

	if err := n.Notify(context.Background(), []domain.Listing{l1, l2}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(fm.sent) != 1 {
		t.Fatalf("sent %d messages, want exactly 1 digest", len(fm.sent))
	}

	msg := fm.sent[0]
	if !strings.Contains(msg.Subject, "2 new") {
		t.Errorf("subject %q should mention the count", msg.Subject)
	}
	if len(msg.To) != 2 {
		t.Errorf("recipients = %v", msg.To)
	}
	for _, want := range []string{"Pricing Audit", "Ops Review", "P1", "P2", "Boston", "Finance"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html digest missing %q", want)
		}
	}
	// unknown fields are spelled out, not dropped
	if !strings.Contains(msg.HTML, "unknown") {
		t.Error("html digest should render unknown fields as \"unknown\"")
	}
	if !strings.Contains(msg.Text, "Pricing Audit") || !strings.Contains(msg.Text, n.DashboardURL) {
		t.Error("text part incomplete")
	}
}

func TestNotifySingleListingSubject(t *testing.T) {
	fm := &fakeMailer{}
	n := &Notifier{Mailer: fm, Recipients: []string{"a@example.com"}, SubjectPrefix: "Catalant"}

	if err := n.Notify(context.Background(), []domain.Listing{testListing("P1", "Pricing Audit")}); err != nil {
		t.Fatal(err)
	}
	if got := fm.sent[0].Subject; got != "Catalant: Pricing Audit" {
		t.Fatalf("subject = %q", got)
	}
}

func TestNotifyDispatchFailure(t *testing.T) {
	fm := &fakeMailer{err: errors.New("smtp unreachable")}
	n := &Notifier{Mailer: fm, Recipients: []string{"a@example.com"}}

	err := n.Notify(context.Background(), []domain.Listing{testListing("P1", "Audit")})
	if err == nil {
		t.Fatal("dispatch failure must surface to the controller")
	}
}
