// Package newsletter implements the issue fan-out publisher.
//
// Publishing is best-effort across recipients: rows whose stored email no
// longer parses are skipped with a warning, and sends already completed are
// never undone when a later send fails.
package newsletter

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/pkg/logger"
)

// Issue is one newsletter edition, with both body variants.
type Issue struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
}

// SubscriberStore reads the confirmed recipient set.
type SubscriberStore interface {
	// ConfirmedEmails returns the stored email strings of every confirmed
	// subscriber, unvalidated. Re-validation is the publisher's job.
	ConfirmedEmails(ctx context.Context) ([]string, error)
}

// IssueMailer sends one issue to one recipient.
type IssueMailer interface {
	SendIssue(ctx context.Context, to domain.SubscriberEmail, issue Issue) error
}

// Publisher fans one issue out to every confirmed subscriber, sequentially.
type Publisher struct {
	store  SubscriberStore
	mailer IssueMailer
}

// NewPublisher creates a newsletter publisher.
func NewPublisher(store SubscriberStore, mailer IssueMailer) *Publisher {
	return &Publisher{store: store, mailer: mailer}
}

// Publish sends the issue to all confirmed subscribers whose stored email
// still parses. A malformed stored email is a per-row defect, not a publish
// failure: the row is skipped and logged. The first dispatch failure aborts
// the run; recipients already emailed are not retried or rolled back.
func (p *Publisher) Publish(ctx context.Context, issue Issue) error {
	stored, err := p.store.ConfirmedEmails(ctx)
	if err != nil {
		return &domain.PersistenceError{
			Message: "could not load confirmed subscribers",
			Cause:   err,
		}
	}

	sent, skipped := 0, 0
	for _, raw := range stored {
		email, err := domain.ParseEmail(raw)
		if err != nil {
			skipped++
			logger.Warn("skipping a confirmed subscriber, stored contact details are invalid",
				"email", raw, "cause", err.Error())
			continue
		}
		if err := p.mailer.SendIssue(ctx, email, issue); err != nil {
			return &domain.DispatchError{
				Message: fmt.Sprintf("failed to send newsletter issue to %s", email),
				Cause:   err,
			}
		}
		sent++
	}

	logger.Info("newsletter issue published",
		"title", issue.Title, "sent", sent, "skipped", skipped)
	return nil
}
