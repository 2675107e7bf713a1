package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// SubscriberStatus enumerates the states a subscription can be in.
type SubscriberStatus string

const (
	StatusPendingConfirmation SubscriberStatus = "pending_confirmation"
	StatusConfirmed           SubscriberStatus = "confirmed"
)

// emailPattern is the WHATWG HTML5 email pattern: a practical syntax check,
// deliberately stricter than RFC 5322. No DNS or deliverability checks.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// SubscriberEmail is a syntactically valid email address.
// The zero value is invalid; construct one via ParseEmail.
type SubscriberEmail struct {
	value string
}

// ParseEmail validates a raw string as an email address.
func ParseEmail(raw string) (SubscriberEmail, error) {
	if !emailPattern.MatchString(raw) {
		return SubscriberEmail{}, fmt.Errorf("%q is not a valid subscriber email", raw)
	}
	return SubscriberEmail{value: raw}, nil
}

// String returns the validated address.
func (e SubscriberEmail) String() string { return e.value }

// maxNameLength is measured in runes, not bytes.
const maxNameLength = 256

// forbiddenNameChars are characters with injection potential in email
// headers and HTML contexts.
const forbiddenNameChars = `/()"<>\{}`

// SubscriberName is a validated display name.
// The zero value is invalid; construct one via ParseName.
type SubscriberName struct {
	value string
}

// ParseName validates a raw string as a subscriber display name.
// It rejects empty or whitespace-only input, names longer than 256
// characters, and names containing forbidden characters.
func ParseName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, fmt.Errorf("subscriber name must not be empty")
	}
	if utf8.RuneCountInString(raw) > maxNameLength {
		return SubscriberName{}, fmt.Errorf("subscriber name must not exceed %d characters", maxNameLength)
	}
	if strings.ContainsAny(raw, forbiddenNameChars) {
		return SubscriberName{}, fmt.Errorf("subscriber name contains a forbidden character")
	}
	return SubscriberName{value: raw}, nil
}

// String returns the validated name.
func (n SubscriberName) String() string { return n.value }

// NewSubscriber is a validated subscription request. It can only be built
// from input that passed both parsers.
type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}

// ParseNewSubscriber validates both fields of a raw subscription request.
func ParseNewSubscriber(name, email string) (NewSubscriber, error) {
	n, err := ParseName(name)
	if err != nil {
		return NewSubscriber{}, err
	}
	e, err := ParseEmail(email)
	if err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: n, Email: e}, nil
}

// Subscription is a stored subscription row.
type Subscription struct {
	ID           string           `json:"id" db:"id"`
	Email        string           `json:"email" db:"email"`
	Name         string           `json:"name" db:"name"`
	Status       SubscriberStatus `json:"status" db:"status"`
	SubscribedAt time.Time        `json:"subscribed_at" db:"subscribed_at"`
}

// ConfirmedSubscriber is the projection used during newsletter publishing.
// Stored emails are re-validated on read: rows written before validation
// tightened may no longer parse, and the publisher skips those.
type ConfirmedSubscriber struct {
	Email SubscriberEmail
}
