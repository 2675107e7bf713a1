package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ignite/newsletter-api/internal/newsletter"
	"github.com/ignite/newsletter-api/internal/subscription"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	subscriptions *subscription.Service
	publisher     *newsletter.Publisher
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(subscriptions *subscription.Service, publisher *newsletter.Publisher) *Handlers {
	return &Handlers{
		subscriptions: subscriptions,
		publisher:     publisher,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Subscribe handles POST /subscriptions with a form-encoded name and email.
func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "could not parse form data")
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")

	if err := h.subscriptions.Subscribe(r.Context(), name, email); err != nil {
		respondWorkflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ConfirmSubscription handles GET /subscriptions/confirm, redeeming the
// token from the confirmation link.
func (h *Handlers) ConfirmSubscription(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")

	err := h.subscriptions.Confirm(r.Context(), token)
	if err == subscription.ErrTokenNotFound {
		respondError(w, http.StatusUnauthorized, "unknown subscription token")
		return
	}
	if err != nil {
		respondWorkflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// newsletterBody is the JSON request body for POST /newsletters.
type newsletterBody struct {
	Title   string `json:"title"`
	Content struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	} `json:"content"`
}

// PublishNewsletter handles POST /newsletters, fanning the issue out to all
// confirmed subscribers.
func (h *Handlers) PublishNewsletter(w http.ResponseWriter, r *http.Request) {
	var body newsletterBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "could not parse newsletter body")
		return
	}

	issue := newsletter.Issue{
		Title: body.Title,
		HTML:  body.Content.HTML,
		Text:  body.Content.Text,
	}
	if err := h.publisher.Publish(r.Context(), issue); err != nil {
		respondWorkflowError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
