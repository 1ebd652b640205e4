package relay

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_order_events_total",
		Help: "order events processed",
	})
	reactionsCtr = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_reactions_total",
		Help: "reactions dispatched to slack",
	}, []string{"kind"})
	slackErrCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_slack_errors_total",
		Help: "failed slack api calls",
	})
	shopifyErrCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_shopify_errors_total",
		Help: "failed shopify stock fetches",
	})
	lookupMissCtr = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relay_lookup_misses_total",
		Help: "order messages not found in slack history",
	})
	trackedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "relay_tracked_orders",
		Help: "orders with a resolved slack message",
	})
)

func init() {
	prometheus.MustRegister(eventsCtr, reactionsCtr, slackErrCtr, shopifyErrCtr, lookupMissCtr, trackedGauge)
}
