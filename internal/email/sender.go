package email

import "context"

// Message is one outbound email with both body variants.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a single message through some email transport.
// Implementations: RESTClient (HTTP transmissions API) and SESClient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
