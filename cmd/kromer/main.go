package main

import (
	"context"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/adapters/events"
	"github.com/reconnectedcc/kromer/adapters/store"
	"github.com/reconnectedcc/kromer/adapters/wallets"
	"github.com/reconnectedcc/kromer/gateway"
	"github.com/reconnectedcc/kromer/ports"
	"github.com/reconnectedcc/kromer/transport/http"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	addr := envOr("KROMER_ADDR", ":8080")
	publicURL := envOr("KROMER_PUBLIC_URL", "http://localhost:8080")
	publicWsURL := envOr("KROMER_PUBLIC_WS_URL", "ws://localhost:8080")
	internalSecret := envOr("KROMER_INTERNAL_JWT_SECRET", "")
	if internalSecret == "" {
		log.Fatal().Msg("KROMER_INTERNAL_JWT_SECRET must be set")
	}

	wmLogger := watermill.NewStdLogger(false, false)

	// With REDIS_URL set, tokens and events are shared across instances;
	// without it everything runs in-process.
	var tokenStore ports.TokenStore
	var publisher message.Publisher
	var subscriber message.Subscriber

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse Redis URL")
		}
		redisClient := redis.NewClient(opts)

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			wmLogger,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Redis publisher")
		}

		subscriber, err = redisstream.NewSubscriber(
			redisstream.SubscriberConfig{Client: redisClient},
			wmLogger,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Redis subscriber")
		}

		tokenStore = store.NewRedisStore(redisClient)
	} else {
		bus := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		publisher = bus
		subscriber = bus
		tokenStore = store.NewMemoryStore()
	}

	// The wallet collaborator: swapped for the real persistence layer in
	// deployments that embed the gateway into the full node.
	walletService := wallets.NewMemoryWalletService()

	broker := gateway.NewTokenBroker(tokenStore, log)
	eventPub := events.NewWatermillPublisher(publisher)

	motd := gateway.MOTDConfig{
		MOTD:        envOr("KROMER_MOTD", "Message of the day"),
		PublicURL:   publicURL,
		PublicWsURL: publicWsURL,
		DebugMode:   os.Getenv("KROMER_DEBUG") != "",
	}

	server := gateway.NewServer(broker, walletService, eventPub, motd, log)

	relay := events.NewRelay(subscriber, log)
	go func() {
		if err := relay.Run(context.Background(), server.BroadcastEvent); err != nil {
			log.Error().Err(err).Msg("event relay stopped")
		}
	}()

	handlers := http.NewGatewayHandlers(server, walletService, publicWsURL, log)
	router := http.SetupRouter(handlers, internalSecret)

	log.Info().Str("addr", addr).Msg("starting kromer gateway")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
