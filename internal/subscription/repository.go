package subscription

import (
	"context"
	"errors"

	"github.com/ignite/newsletter-api/internal/domain"
)

// ErrTokenNotFound is returned when a confirmation token has no matching row.
var ErrTokenNotFound = errors.New("subscription token not found")

// Repository defines the data access contract for subscriptions.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Begin opens the transaction scope for the atomic subscriber+token
	// pair. The returned handle must be committed or rolled back; rolling
	// back after a commit is a no-op.
	Begin(ctx context.Context) (Tx, error)

	// SubscriberIDFromToken resolves a confirmation token to a subscriber
	// id. Returns ErrTokenNotFound for unknown tokens.
	SubscriberIDFromToken(ctx context.Context, token string) (string, error)

	// MarkConfirmed transitions a subscriber from pending_confirmation to
	// confirmed.
	MarkConfirmed(ctx context.Context, subscriberID string) error
}

// Tx is the borrowed transaction handle passed through the two dependent
// writes. Neither write is durable until Commit returns nil.
type Tx interface {
	// InsertSubscriber inserts a pending_confirmation row and returns its id.
	InsertSubscriber(ctx context.Context, sub domain.NewSubscriber) (string, error)

	// StoreToken inserts the confirmation token row for the subscriber
	// inserted earlier in this transaction.
	StoreToken(ctx context.Context, subscriberID, token string) error

	Commit() error
	Rollback() error
}
