package email

import (
	"fmt"

	"github.com/osteele/liquid"
)

// confirmationSubject is the subject line of every confirmation email.
const confirmationSubject = "Welcome to our newsletter!"

const confirmationHTMLTemplate = `<p>Welcome to our newsletter!</p>
<p>Click <a href="{{ confirmation_link }}">here</a> to confirm your subscription.</p>`

const confirmationTextTemplate = `Welcome to our newsletter!
Visit {{ confirmation_link }} to confirm your subscription.`

// Templates renders the service's email bodies with Liquid.
// Templates are parsed once at construction.
type Templates struct {
	html *liquid.Template
	text *liquid.Template
}

// NewTemplates parses the built-in email templates.
func NewTemplates() (*Templates, error) {
	engine := liquid.NewEngine()

	html, err := engine.ParseString(confirmationHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse confirmation html template: %w", err)
	}
	text, err := engine.ParseString(confirmationTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse confirmation text template: %w", err)
	}
	return &Templates{html: html, text: text}, nil
}

// RenderConfirmation produces both body variants of the confirmation email
// for the given token-bearing link.
func (t *Templates) RenderConfirmation(confirmationLink string) (html, text string, err error) {
	bindings := map[string]interface{}{"confirmation_link": confirmationLink}

	html, err = t.html.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render confirmation html: %w", err)
	}
	text, err = t.text.RenderString(bindings)
	if err != nil {
		return "", "", fmt.Errorf("render confirmation text: %w", err)
	}
	return html, text, nil
}
