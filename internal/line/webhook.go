package line

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lojasmm/calbot/internal/logger"
)

const maxBodyBytes = 1 << 20

// EventHandler is called once for each event of a verified webhook delivery.
type EventHandler func(ctx context.Context, ev Event)

type WebhookHandler struct {
	verifier *Verifier
	onEvent  EventHandler
}

func NewWebhookHandler(verifier *Verifier, onEvent EventHandler) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		onEvent:  onEvent,
	}
}

// HandleCallback processes POST /callback.
// The signature is checked against the raw body before anything is parsed;
// a mismatch ends the request with 400 and nothing else happens.
// Reference: https://developers.line.biz/en/docs/messaging-api/receiving-messages/
func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", tooLarge.Limit).Msg("webhook: body too large")
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Err(err).Msg("webhook: failed to read body")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if !h.verifier.Verify(body, r.Header.Get(SignatureHeader)) {
		log.Warn().Msg("webhook: invalid signature")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Err(err).Msg("webhook: failed to decode payload")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// LINE sends an empty events list when the webhook URL is verified from the console.
	for _, ev := range payload.Events {
		h.onEvent(r.Context(), ev)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
