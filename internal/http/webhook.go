package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"shoprelay/internal/models"
	"shoprelay/internal/relay"
	"shoprelay/internal/shopify"
)

// Processor is the dispatch entry point; satisfied by *relay.Dispatcher.
type Processor interface {
	Process(ctx context.Context, ord models.OrderPayload) error
}

// Webhook handles Shopify order-event deliveries. With a secret configured
// the X-Shopify-Hmac-Sha256 header is enforced. A delivery whose Slack
// message cannot be resolved yet gets 202 so Shopify redelivers; reaction
// failures still return 200 to stop redelivery storms.
func Webhook(secret string, d Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webhooksCtr.Inc()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			webhooksRejectedCtr.WithLabelValues("bad_body").Inc()
			WriteError(w, http.StatusBadRequest, "bad_body", "cannot read body")
			return
		}

		if secret != "" && !shopify.VerifyWebhook(secret, body, r.Header.Get("X-Shopify-Hmac-Sha256")) {
			webhooksRejectedCtr.WithLabelValues("bad_hmac").Inc()
			WriteError(w, http.StatusUnauthorized, "bad_hmac", "hmac verification failed")
			return
		}

		ord, err := models.ParseOrder(body)
		if err != nil {
			webhooksRejectedCtr.WithLabelValues("bad_json").Inc()
			WriteError(w, http.StatusBadRequest, "bad_json", "cannot decode order")
			return
		}
		if ord.Number() == "" {
			webhooksRejectedCtr.WithLabelValues("no_order_number").Inc()
			WriteError(w, http.StatusBadRequest, "no_order_number", "order number missing")
			return
		}

		log.Info().Str("order", ord.Number()).Str("id", ord.ID.String()).Msg("webhook received")

		if err := d.Process(r.Context(), ord); err != nil {
			if errors.Is(err, relay.ErrMessageNotFound) {
				WriteJSON(w, http.StatusAccepted, map[string]any{"ok": false})
				return
			}
			log.Error().Err(err).Str("order", ord.Number()).Msg("dispatch")
			WriteError(w, http.StatusInternalServerError, "dispatch", "dispatch failed")
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
