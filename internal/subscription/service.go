package subscription

import (
	"context"
	"fmt"
	"strings"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/pkg/logger"
)

// ConfirmationMailer sends the confirmation email for a new subscriber.
// Satisfied by the email dispatch gateway.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, to domain.SubscriberEmail, confirmLink string) error
}

// Service implements the subscription intake workflow:
// validate → insert subscriber → store token → commit → send confirmation.
//
// The two writes happen inside one transaction, so a subscriber row is never
// durably visible without its token. The confirmation email is sent strictly
// after commit and is not transactional with the store: a send failure leaves
// a committed, token-bearing subscriber whose email never arrived. That
// window is accepted; the row can still be confirmed once the token reaches
// the subscriber by other means (e.g. a future resend endpoint).
type Service struct {
	repo    Repository
	mailer  ConfirmationMailer
	tokens  TokenSource
	baseURL string
}

// NewService creates the subscription workflow service. baseURL is the
// externally visible application URL embedded in confirmation links.
// A nil tokens falls back to the uniform random source.
func NewService(repo Repository, mailer ConfirmationMailer, tokens TokenSource, baseURL string) *Service {
	if tokens == nil {
		tokens = RandomTokenSource{}
	}
	return &Service{
		repo:    repo,
		mailer:  mailer,
		tokens:  tokens,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Subscribe runs the intake workflow for one raw (name, email) pair.
// It returns the first failure encountered; later steps are never attempted.
func (s *Service) Subscribe(ctx context.Context, name, email string) error {
	sub, err := domain.ParseNewSubscriber(name, email)
	if err != nil {
		return &domain.ValidationError{Message: err.Error(), Cause: err}
	}
	logger.Info("adding a new subscriber",
		"email", sub.Email.String(), "name", sub.Name.String())

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return &domain.PersistenceError{
			Message: "could not acquire a database connection",
			Cause:   err,
		}
	}
	// No-op once committed; unwinds the pair on every failure path.
	defer tx.Rollback()

	subscriberID, err := tx.InsertSubscriber(ctx, sub)
	if err != nil {
		return &domain.PersistenceError{
			Message: "could not insert new subscriber",
			Cause:   err,
		}
	}

	token := s.tokens.Token()
	if err := tx.StoreToken(ctx, subscriberID, token); err != nil {
		return &domain.PersistenceError{
			Message: "could not store confirmation token",
			Cause:   err,
		}
	}

	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{
			Message: "could not commit subscription transaction",
			Cause:   err,
		}
	}
	logger.Info("new subscriber stored", "subscriber_id", subscriberID)

	if err := s.mailer.SendConfirmation(ctx, sub.Email, s.confirmationLink(token)); err != nil {
		return &domain.DispatchError{
			Message: "failed to send confirmation email",
			Cause:   err,
		}
	}
	return nil
}

// Confirm redeems a confirmation token, flipping the subscriber's status to
// confirmed. Tokens do not expire and stay redeemable, so re-clicking a
// confirmation link succeeds.
func (s *Service) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return &domain.ValidationError{Message: "subscription_token is required"}
	}

	subscriberID, err := s.repo.SubscriberIDFromToken(ctx, token)
	if err == ErrTokenNotFound {
		return ErrTokenNotFound
	}
	if err != nil {
		return &domain.PersistenceError{
			Message: "could not look up subscription token",
			Cause:   err,
		}
	}

	if err := s.repo.MarkConfirmed(ctx, subscriberID); err != nil {
		return &domain.PersistenceError{
			Message: "could not confirm subscriber",
			Cause:   err,
		}
	}
	logger.Info("subscriber confirmed", "subscriber_id", subscriberID)
	return nil
}

func (s *Service) confirmationLink(token string) string {
	return fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, token)
}
