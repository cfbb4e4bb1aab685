package handlers

import (
	"net/http"

	"github.com/fnitalia/community-hub/services"
)

type NewsletterHandler struct {
	newsletterService services.NewsletterService
}

func NewNewsletterHandler(newsletterService services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	subscriber, err := h.newsletterService.Subscribe(r.Context(), input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"subscriber": subscriber}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsletterHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.newsletterService.ListSubscribers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"subscribers": subscribers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "subscriberID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.newsletterService.Unsubscribe(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendBroadcast mails the given subject and body to every subscriber and
// reports how many sends succeeded.
func (h *NewsletterHandler) SendBroadcast(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sent, err := h.newsletterService.SendBroadcast(r.Context(), input.Subject, input.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sent": sent}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
