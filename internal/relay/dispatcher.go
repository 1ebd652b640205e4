package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"shoprelay/internal/models"
	"shoprelay/internal/slack"
)

// ErrMessageNotFound means the order's announcement message is not (yet) in
// any searched channel. Webhook callers map it to 202 so Shopify redelivers.
var ErrMessageNotFound = errors.New("relay: order message not found")

type Slack interface {
	FindOrderMessage(ctx context.Context, number string) (slack.MessageRef, error)
	AddReaction(ctx context.Context, ref slack.MessageRef, emoji string) error
}

// StockFetcher resolves an order's stock status when the event does not carry
// one. May be nil when no Shopify credentials are configured.
type StockFetcher interface {
	StockStatus(ctx context.Context, orderID string) (string, error)
}

// Publisher receives a ReactionEvent after every dispatched reaction.
type Publisher interface {
	Publish(models.ReactionEvent)
}

// Dispatcher turns order events into Slack reactions. One reaction per status
// transition per dimension; repeats of the last seen status are suppressed.
type Dispatcher struct {
	slack   Slack
	stock   StockFetcher
	tracker *Tracker
	pub     Publisher

	lmu   sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDispatcher(s Slack, stock StockFetcher, t *Tracker, pub Publisher) *Dispatcher {
	return &Dispatcher{slack: s, stock: stock, tracker: t, pub: pub, locks: make(map[string]*sync.Mutex)}
}

// orderLock serializes concurrent deliveries for the same order so the
// tracker's read-modify-write cannot lose a last-seen status.
func (d *Dispatcher) orderLock(number string) *sync.Mutex {
	d.lmu.Lock()
	defer d.lmu.Unlock()
	m, ok := d.locks[number]
	if !ok {
		m = &sync.Mutex{}
		d.locks[number] = m
	}
	return m
}

// Process handles one order event end to end. It returns ErrMessageNotFound
// when the target Slack message cannot be resolved; individual reaction
// failures are logged and counted but do not fail the event.
func (d *Dispatcher) Process(ctx context.Context, ord models.OrderPayload) error {
	number := ord.Number()
	if number == "" {
		return errors.New("relay: order number missing")
	}
	eventsCtr.Inc()

	mu := d.orderLock(number)
	mu.Lock()
	defer mu.Unlock()

	track, ok := d.tracker.Get(number)
	if !ok {
		ref, err := d.slack.FindOrderMessage(ctx, number)
		if err != nil {
			if errors.Is(err, slack.ErrNotFound) {
				lookupMissCtr.Inc()
				return ErrMessageNotFound
			}
			return err
		}
		track = models.OrderTrack{Number: number, Channel: ref.Channel, MessageTS: ref.TS}
		log.Info().Str("order", number).Str("channel", ref.Channel).Msg("order message resolved")
	}

	changed := false
	if v := ord.FinancialStatus; v != "" && v != track.Payment {
		d.react(ctx, track, models.KindPayment, v, PaymentEmoji(v))
		track.Payment = v
		changed = true
	}
	if v := ord.FulfillmentStatus; v != "" && v != track.Fulfillment {
		d.react(ctx, track, models.KindFulfillment, v, FulfillmentEmoji(v))
		track.Fulfillment = v
		changed = true
	}
	if v := d.stockStatus(ctx, ord); v != "" && v != track.Stock {
		d.react(ctx, track, models.KindStock, v, StockEmoji(v))
		track.Stock = v
		changed = true
	}

	if changed || !ok {
		d.tracker.Put(track)
	}
	return nil
}

func (d *Dispatcher) stockStatus(ctx context.Context, ord models.OrderPayload) string {
	if ord.StockStatus != "" {
		return ord.StockStatus
	}
	if d.stock == nil || ord.ID.String() == "" {
		return ""
	}
	v, err := d.stock.StockStatus(ctx, ord.ID.String())
	if err != nil {
		shopifyErrCtr.Inc()
		log.Warn().Err(err).Str("order", ord.Number()).Msg("stock fetch")
		return ""
	}
	return v
}

func (d *Dispatcher) react(ctx context.Context, track models.OrderTrack, kind, status, emoji string) {
	if emoji == "" {
		return
	}
	ref := slack.MessageRef{Channel: track.Channel, TS: track.MessageTS}
	if err := d.slack.AddReaction(ctx, ref, emoji); err != nil {
		slackErrCtr.Inc()
		log.Error().Err(err).Str("order", track.Number).Str("emoji", emoji).Msg("add reaction")
		return
	}
	reactionsCtr.WithLabelValues(kind).Inc()
	log.Info().Str("order", track.Number).Str("kind", kind).Str("status", status).Str("emoji", emoji).Msg("reaction added")

	if d.pub != nil {
		d.pub.Publish(models.ReactionEvent{
			ID:          uuid.NewString(),
			OrderNumber: track.Number,
			Kind:        kind,
			Status:      status,
			Emoji:       emoji,
			Channel:     track.Channel,
			TS:          time.Now().UTC(),
		})
	}
}
