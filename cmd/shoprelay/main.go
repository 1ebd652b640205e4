package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shoprelay/internal/config"
	httpx "shoprelay/internal/http"
	"shoprelay/internal/input/kafka"
	"shoprelay/internal/input/rabbitmq"
	"shoprelay/internal/journal"
	"shoprelay/internal/relay"
	"shoprelay/internal/shopify"
	"shoprelay/internal/slack"
	"shoprelay/internal/stream"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	_ = godotenv.Load()
	cfg := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := journal.NewFileStore(cfg.JournalPath)
	if err != nil {
		log.Fatal().Err(err).Msg("journal")
	}

	tracker := relay.NewTracker(store)
	if err := store.Replay(tracker.Restore); err != nil {
		log.Fatal().Err(err).Msg("journal replay")
	}
	log.Info().Int("orders", tracker.Len()).Msg("tracker restored")

	slackClient := slack.New(cfg.SlackToken, cfg.SlackChannels, cfg.SlackTimeout)

	var stock relay.StockFetcher
	if cfg.ShopifyShop != "" && cfg.ShopifyToken != "" {
		stock = shopify.New(cfg.ShopifyShop, cfg.ShopifyToken, cfg.SlackTimeout)
	} else {
		log.Warn().Msg("shopify credentials missing, stock status disabled")
	}

	hub := stream.NewHub()
	dispatcher := relay.NewDispatcher(slackClient, stock, tracker, hub)

	if cfg.KafkaEnabled {
		c := kafka.New(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup, dispatcher)
		go func() {
			if err := c.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("kafka consumer")
			}
		}()
	}
	if cfg.AmqpEnabled {
		c := rabbitmq.New(cfg.AmqpURL, cfg.AmqpQueue, dispatcher)
		go func() {
			if err := c.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("amqp consumer")
			}
		}()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: httpx.Router(cfg, dispatcher, tracker, hub)}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("journal", cfg.JournalPath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdown)
}
