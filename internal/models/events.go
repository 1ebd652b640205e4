package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Event kinds relayed to Slack.
const (
	KindPayment     = "payment_status_changed"
	KindFulfillment = "fulfillment_status_changed"
	KindStock       = "stock_available"
)

// OrderPayload is the order object carried by Shopify webhook deliveries and
// broker messages. Broker events may carry StockStatus inline; webhook
// deliveries never do.
type OrderPayload struct {
	ID                json.Number `json:"id"`
	Name              string      `json:"name"`
	FinancialStatus   string      `json:"financial_status"`
	FulfillmentStatus string      `json:"fulfillment_status"`
	StockStatus       string      `json:"stock_status,omitempty"`
}

// Number returns the order number with any '#' stripped.
func (o OrderPayload) Number() string {
	return strings.TrimSpace(strings.ReplaceAll(o.Name, "#", ""))
}

// ParseOrder decodes a delivery body. Shopify sends the order object at the
// top level; some relays wrap it under an "order" key, so both shapes are
// accepted.
func ParseOrder(b []byte) (OrderPayload, error) {
	var wrap struct {
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(b, &wrap); err != nil {
		return OrderPayload{}, err
	}
	if len(wrap.Order) > 0 {
		b = wrap.Order
	}
	var o OrderPayload
	if err := json.Unmarshal(b, &o); err != nil {
		return OrderPayload{}, err
	}
	return o, nil
}

// OrderTrack is the per-order relay state: where the "New Order" Slack
// message lives and the last status seen per dimension.
type OrderTrack struct {
	Number      string    `json:"number"`
	Channel     string    `json:"channel"`
	MessageTS   string    `json:"messageTs"`
	Payment     string    `json:"payment,omitempty"`
	Fulfillment string    `json:"fulfillment,omitempty"`
	Stock       string    `json:"stock,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReactionEvent is published to the stream hub after every dispatched
// reaction.
type ReactionEvent struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	Emoji       string    `json:"emoji"`
	Channel     string    `json:"channel"`
	TS          time.Time `json:"ts"`
}
