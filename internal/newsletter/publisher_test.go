package newsletter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/newsletter"
)

type fakeStore struct {
	emails []string
	err    error
}

func (s *fakeStore) ConfirmedEmails(context.Context) ([]string, error) {
	return s.emails, s.err
}

type fakeIssueMailer struct {
	failOn string // recipient that triggers a send failure
	sends  []string
}

func (m *fakeIssueMailer) SendIssue(_ context.Context, to domain.SubscriberEmail, _ newsletter.Issue) error {
	if to.String() == m.failOn {
		return errors.New("email API returned 500")
	}
	m.sends = append(m.sends, to.String())
	return nil
}

var issue = newsletter.Issue{
	Title: "Issue #1",
	HTML:  "<p>Newsletter body</p>",
	Text:  "Newsletter body",
}

func TestPublish_SendsToAllConfirmed(t *testing.T) {
	store := &fakeStore{emails: []string{"a@domain.com", "b@domain.com", "c@domain.com"}}
	mailer := &fakeIssueMailer{}
	pub := newsletter.NewPublisher(store, mailer)

	if err := pub.Publish(context.Background(), issue); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if len(mailer.sends) != 3 {
		t.Errorf("sends = %d, want 3", len(mailer.sends))
	}
}

func TestPublish_SkipsMalformedStoredEmail(t *testing.T) {
	store := &fakeStore{emails: []string{"a@domain.com", "corrupt-row", "c@domain.com"}}
	mailer := &fakeIssueMailer{}
	pub := newsletter.NewPublisher(store, mailer)

	if err := pub.Publish(context.Background(), issue); err != nil {
		t.Fatalf("a malformed stored email must not fail the publish: %v", err)
	}
	if len(mailer.sends) != 2 {
		t.Fatalf("sends = %d, want 2", len(mailer.sends))
	}
	for _, to := range mailer.sends {
		if to == "corrupt-row" {
			t.Error("malformed row must be excluded from the recipient set")
		}
	}
}

func TestPublish_FirstDispatchFailureAborts(t *testing.T) {
	store := &fakeStore{emails: []string{"a@domain.com", "b@domain.com", "c@domain.com"}}
	mailer := &fakeIssueMailer{failOn: "b@domain.com"}
	pub := newsletter.NewPublisher(store, mailer)

	err := pub.Publish(context.Background(), issue)

	var derr *domain.DispatchError
	if !errors.As(err, &derr) {
		t.Fatalf("err = %v, want DispatchError", err)
	}
	if derr.Message != "failed to send newsletter issue to b@domain.com" {
		t.Errorf("message = %q", derr.Message)
	}
	// a@ was already sent and stays sent; c@ must never be attempted.
	if len(mailer.sends) != 1 || mailer.sends[0] != "a@domain.com" {
		t.Errorf("sends = %v, want [a@domain.com]", mailer.sends)
	}
}

func TestPublish_StoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	pub := newsletter.NewPublisher(store, &fakeIssueMailer{})

	err := pub.Publish(context.Background(), issue)

	var perr *domain.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if !errors.Is(err, store.err) {
		t.Error("root cause must be preserved")
	}
}

func TestPublish_EmptyRecipientSet(t *testing.T) {
	pub := newsletter.NewPublisher(&fakeStore{}, &fakeIssueMailer{})
	if err := pub.Publish(context.Background(), issue); err != nil {
		t.Fatalf("Publish() with no recipients should succeed: %v", err)
	}
}
