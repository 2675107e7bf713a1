package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/subscription"
)

// ErrDuplicateEmail reports a unique-constraint violation on
// subscriptions.email.
var ErrDuplicateEmail = errors.New("a subscription with this email already exists")

// SubscriptionRepo implements subscription.Repository and the publisher's
// confirmed-subscriber read against PostgreSQL.
type SubscriptionRepo struct{ db *sql.DB }

// NewSubscriptionRepo creates a Postgres-backed subscription repository.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// Begin opens the transaction for the atomic subscriber+token pair.
func (r *SubscriptionRepo) Begin(ctx context.Context) (subscription.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &subscriptionTx{tx: tx}, nil
}

// subscriptionTx wraps a *sql.Tx as the borrowed handle for the two
// dependent writes.
type subscriptionTx struct{ tx *sql.Tx }

func (t *subscriptionTx) InsertSubscriber(ctx context.Context, sub domain.NewSubscriber) (string, error) {
	id := uuid.New().String()
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, NOW(), $4)
	`, id, sub.Email.String(), sub.Name.String(), domain.StatusPendingConfirmation)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert subscriber: %w", ErrDuplicateEmail)
		}
		return "", fmt.Errorf("insert subscriber: %w", err)
	}
	return id, nil
}

func (t *subscriptionTx) StoreToken(ctx context.Context, subscriberID, token string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`, token, subscriberID)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (t *subscriptionTx) Commit() error { return t.tx.Commit() }

func (t *subscriptionTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}

// SubscriberIDFromToken resolves a confirmation token to a subscriber id.
func (r *SubscriptionRepo) SubscriberIDFromToken(ctx context.Context, token string) (string, error) {
	var subscriberID string
	err := r.db.QueryRowContext(ctx, `
		SELECT subscriber_id FROM subscription_tokens
		WHERE subscription_token = $1
	`, token).Scan(&subscriberID)
	if err == sql.ErrNoRows {
		return "", subscription.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("look up token: %w", err)
	}
	return subscriberID, nil
}

// MarkConfirmed transitions a subscriber to confirmed status.
func (r *SubscriptionRepo) MarkConfirmed(ctx context.Context, subscriberID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions SET status = $1 WHERE id = $2
	`, domain.StatusConfirmed, subscriberID)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("confirm subscriber: no row with id %s", subscriberID)
	}
	return nil
}

// ConfirmedEmails returns the stored email strings of all confirmed
// subscribers. Emails are returned unvalidated; the publisher re-validates
// each one.
func (r *SubscriptionRepo) ConfirmedEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email FROM subscriptions WHERE status = $1
	`, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("query confirmed subscribers: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan subscriber email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmed subscribers: %w", err)
	}
	return emails, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
