package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shoprelay/internal/config"
	"shoprelay/internal/relay"
	"shoprelay/internal/stream"
	"shoprelay/internal/telemetry"
	jwtx "shoprelay/pkg/jwt"
)

func Router(cfg *config.Config, d Processor, tracker *relay.Tracker, hub *stream.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer, RequestID, SecureHeaders, Logger, Rate(300, time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	val := jwtx.New(cfg.JWTKeys, cfg.Skew)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "tracked_orders": tracker.Len()})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	r.Group(func(g chi.Router) {
		g.Use(BasicAuth(cfg.MetricsUser, cfg.MetricsPass))
		g.Method("GET", "/metrics", promhttp.Handler())
	})

	r.Group(func(g chi.Router) {
		g.Use(BodyLimit(256<<10), Rate(120, time.Minute))
		g.Post("/webhook/shopify", Webhook(cfg.ShopifyWebhookSecret, d))
	})

	r.Group(func(g chi.Router) {
		g.Use(Auth(false, val))
		g.Get("/api/orders", Orders(tracker))
		g.Get("/api/orders/{number}", Order(tracker))
		g.Get("/api/stream/reactions", stream.SSE(hub))
	})

	r.Get("/api/ws", WS(cfg.AllowedOrigins, hub))

	r.Group(func(g chi.Router) {
		g.Use(Auth(true, val), BodyLimit(64<<10), Rate(60, time.Minute))
		g.Post("/api/telemetry", telemetry.Handle)
	})

	return r
}
