// Package email implements the outbound email dispatch gateway: template
// rendering plus a pluggable transport (HTTP transmissions API or SES).
package email

import (
	"context"
	"fmt"

	"github.com/ignite/newsletter-api/internal/domain"
	"github.com/ignite/newsletter-api/internal/newsletter"
)

// Gateway renders and dispatches the service's emails through a Sender.
// It satisfies subscription.ConfirmationMailer and newsletter.IssueMailer.
type Gateway struct {
	sender    Sender
	templates *Templates
}

// NewGateway creates the dispatch gateway.
func NewGateway(sender Sender, templates *Templates) *Gateway {
	return &Gateway{sender: sender, templates: templates}
}

// SendConfirmation sends the confirmation email carrying the token link.
func (g *Gateway) SendConfirmation(ctx context.Context, to domain.SubscriberEmail, confirmLink string) error {
	html, text, err := g.templates.RenderConfirmation(confirmLink)
	if err != nil {
		return fmt.Errorf("render confirmation email: %w", err)
	}
	return g.sender.Send(ctx, Message{
		To:      to.String(),
		Subject: confirmationSubject,
		HTML:    html,
		Text:    text,
	})
}

// SendIssue sends one newsletter issue to one recipient. Issue bodies are
// operator-authored and sent as-is.
func (g *Gateway) SendIssue(ctx context.Context, to domain.SubscriberEmail, issue newsletter.Issue) error {
	return g.sender.Send(ctx, Message{
		To:      to.String(),
		Subject: issue.Title,
		HTML:    issue.HTML,
		Text:    issue.Text,
	})
}
