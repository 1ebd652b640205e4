package httpx

import "github.com/prometheus/client_golang/prometheus"

var (
	webhooksCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhooks_received_total",
		Help: "shopify webhook deliveries received",
	})
	webhooksRejectedCtr = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhooks_rejected_total",
		Help: "shopify webhook deliveries rejected before dispatch",
	}, []string{"reason"})
)

func init() { prometheus.MustRegister(webhooksCtr, webhooksRejectedCtr) }
